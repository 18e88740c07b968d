package handler

import (
	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetProfileHandler(c *gin.Context, usersService *usecase.UsersService) {
	userID := c.GetString("user_id")

	user, err := usersService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, dto.ToUserResponse(user))
}

func UpdateProfileHandler(c *gin.Context, usersService *usecase.UsersService) {
	userID := c.GetString("user_id")

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	profile := model.Profile{
		Bio:       req.Bio,
		Gender:    req.Gender,
		DOB:       req.DOB,
		SecretKey: req.SecretKey,
	}

	if err := usersService.UpdateProfile(c.Request.Context(), userID, profile, req.NewPassword); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Profile updated successfully"})
}

func UpdateSettingsHandler(c *gin.Context, usersService *usecase.UsersService) {
	userID := c.GetString("user_id")

	var req model.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	user, err := usersService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	// Merge-patch: only flip the toggles the client sent.
	settings := user.Settings
	if req.SoundEnabled != nil {
		settings.SoundEnabled = *req.SoundEnabled
	}
	if req.DarkMode != nil {
		settings.DarkMode = *req.DarkMode
	}

	if err := usersService.UpdateSettings(c.Request.Context(), userID, settings); err != nil {
		utils.InternalError(c, "Failed to update settings")
		return
	}

	utils.Success(c, settings)
}

func DeleteAccountDataHandler(c *gin.Context, usersService *usecase.UsersService) {
	userID := c.GetString("user_id")

	var req model.DeleteDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Secret key is required")
		return
	}

	if err := usersService.DeleteAccountData(c.Request.Context(), userID, req.SecretKey); err != nil {
		utils.Forbidden(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "All account data deleted"})
}
