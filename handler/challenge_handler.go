package handler

import (
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetChallengesHandler(c *gin.Context, challengesService *usecase.ChallengesService) {
	userID := c.GetString("user_id")

	challenges, err := challengesService.GetUserChallenges(userID)
	if err != nil {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, gin.H{"challenges": challenges})
}

func CreateChallengeHandler(c *gin.Context, challengesService *usecase.ChallengesService) {
	userID := c.GetString("user_id")

	var challenge model.Challenge
	if err := c.ShouldBindJSON(&challenge); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	if err := challengesService.CreateChallenge(c.Request.Context(), userID, &challenge); err != nil {
		if err.Error() == "an active challenge with this title or linked task already exists" {
			utils.Conflict(c, "This quest is already active! Complete it first.")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, challenge)
}

func MarkChallengeTodayHandler(c *gin.Context, challengesService *usecase.ChallengesService) {
	userID := c.GetString("user_id")

	view, err := challengesService.MarkToday(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if err.Error() == "challenge not found" {
			utils.NotFound(c, "Challenge not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, view)
}

func UseChallengeRescueHandler(c *gin.Context, challengesService *usecase.ChallengesService) {
	userID := c.GetString("user_id")

	challenge, err := challengesService.UseRescue(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch err.Error() {
		case "challenge not found":
			utils.NotFound(c, "Challenge not found")
		case "rescue already used on this challenge":
			utils.Conflict(c, "Rescue already used on this challenge")
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	utils.Success(c, challenge)
}

func DeleteChallengeHandler(c *gin.Context, challengesService *usecase.ChallengesService) {
	userID := c.GetString("user_id")

	if err := challengesService.DeleteChallenge(c.Request.Context(), userID, c.Param("id")); err != nil {
		if err.Error() == "challenge not found" {
			utils.NotFound(c, "Challenge not found")
			return
		}
		utils.InternalError(c, "Failed to delete challenge")
		return
	}

	utils.Success(c, gin.H{"message": "Challenge removed"})
}
