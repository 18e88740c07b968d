package handler

import (
	"log"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, usersService *usecase.UsersService) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("auth", "invalid_request")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	user, err := usersService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if err.Error() == "email already registered" {
			utils.TrackError("auth", "duplicate_email")
			utils.Conflict(c, "Email already registered")
			return
		}
		utils.TrackError("auth", "registration_failed")
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{
		"message": "Account created successfully",
		"user":    dto.ToUserResponse(user),
	})
}

func LoginHandler(c *gin.Context, usersService *usecase.UsersService, usersRepo *repository.UsersRepo, manager *usecase.SpaceManager) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("auth", "invalid_request")
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	user, err := usersService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	// Each browser/device gets a stable identifier so its session can be
	// listed and revoked individually.
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		deviceID = utils.GenerateID()
	}
	deviceName := utils.DeviceName(c.GetHeader("User-Agent"))

	if _, err := manager.Open(c.Request.Context(), user, deviceID, deviceName); err != nil {
		utils.TrackError("sync", "space_open_failed")
		utils.InternalError(c, "Failed to start data sync")
		return
	}

	accessToken, err := services.GenerateAccessToken(user.UserID, deviceID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID, deviceID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := usersRepo.UpdateRefreshToken(c.Request.Context(), user.UserID, refreshToken); err != nil {
		log.Printf("failed to store refresh token for user %s: %v", user.UserID, err)
	}

	utils.Success(c, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		DeviceID:     deviceID,
	})
}

func LogoutHandler(c *gin.Context, manager *usecase.SpaceManager) {
	userID := c.GetString("user_id")

	if token := c.GetString("access_token"); token != "" && services.TokenBlacklist != nil {
		if err := services.TokenBlacklist.BlacklistToken(token); err != nil {
			log.Printf("failed to blacklist token: %v", err)
		}
	}

	// The device id rides in the token claims, so logout works without any
	// client cooperation; the header remains as a fallback for tokens
	// issued before the claim existed.
	deviceID := c.GetString("device_id")
	if deviceID == "" {
		deviceID = c.GetHeader("X-Device-ID")
	}
	manager.CloseDevice(c.Request.Context(), userID, deviceID)

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}

func RefreshTokenHandler(c *gin.Context, usersRepo *repository.UsersRepo) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	if services.IsTokenBlacklisted(req.RefreshToken) {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Token has been invalidated")
		return
	}

	userID, deviceID, err := services.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	user, err := usersRepo.FindUserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}
	if user.RefreshToken != req.RefreshToken {
		utils.TrackError("security", "stale_refresh_token")
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Refresh token has been rotated")
		return
	}

	accessToken, err := services.GenerateAccessToken(userID, deviceID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(userID, deviceID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := usersRepo.UpdateRefreshToken(c.Request.Context(), userID, refreshToken); err != nil {
		log.Printf("failed to rotate refresh token for user %s: %v", userID, err)
	}
	if services.TokenBlacklist != nil {
		if err := services.TokenBlacklist.BlacklistToken(req.RefreshToken); err != nil {
			log.Printf("failed to blacklist old refresh token: %v", err)
		}
	}

	utils.TrackAuthAttempt("success", "refresh")
	utils.Success(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
