package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessionsHandler(c *gin.Context, sessionsService *usecase.SessionsService) {
	userID := c.GetString("user_id")

	deviceID := c.GetString("device_id")
	if deviceID == "" {
		deviceID = c.GetHeader("X-Device-ID")
	}
	sessions, err := sessionsService.GetActiveSessions(userID, deviceID)
	if err != nil {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, gin.H{"sessions": sessions})
}

func LogoutAllSessionsHandler(c *gin.Context, sessionsService *usecase.SessionsService) {
	userID := c.GetString("user_id")

	if err := sessionsService.LogoutAll(c.Request.Context(), userID); err != nil {
		utils.InternalError(c, "Failed to end sessions")
		return
	}

	utils.Success(c, gin.H{"message": "Logged out of all devices"})
}
