package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetNotificationsHandler(c *gin.Context, manager *usecase.SpaceManager) {
	userID := c.GetString("user_id")

	space, ok := manager.Get(userID)
	if !ok {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, gin.H{"notifications": space.Notifications.Recent()})
}
