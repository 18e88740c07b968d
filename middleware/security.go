package middleware

import (
	"net/http"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter caps request body size so oversized payloads are cut
// off before JSON binding reads them. Journal entries and data-URL proof
// images are the largest expected bodies.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)

		if c.Request.ContentLength > maxSize {
			utils.TrackError("http", "request_too_large")
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}

		c.Next()
	}
}
