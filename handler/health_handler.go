package handler

import (
	"context"
	"net/http"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var startTime = time.Now()

func HealthHandler(c *gin.Context, client *mongo.Client, clock *services.TrustedClock) {
	dbStatus := "up"
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		dbStatus = "down"
	}

	status := http.StatusOK
	if dbStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":         dbStatus,
		"uptime_seconds": int64(time.Since(startTime).Seconds()),
		"cpu_percent":    utils.GetCPUUsage(),
		"clock_resolved": clock.Resolved(),
		"server_time":    clock.Now().UTC().Format(time.RFC3339),
		"server_date":    clock.Today(),
	})
}
