package middleware

import (
	"strconv"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		utils.ActiveRequests.Inc()
		defer utils.ActiveRequests.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		utils.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		utils.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
