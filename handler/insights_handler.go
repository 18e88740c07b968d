package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetInsightsHandler(c *gin.Context, insightsService *usecase.InsightsService) {
	userID := c.GetString("user_id")

	stats, err := insightsService.GetUserInsights(userID)
	if err != nil {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, stats)
}
