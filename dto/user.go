package dto

import "main/model"

type UserResponse struct {
	UserID       string         `json:"user_id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	Avatar       string         `json:"avatar,omitempty"`
	Bio          string         `json:"bio,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	DOB          string         `json:"dob,omitempty"`
	Settings     model.Settings `json:"settings"`
	HasSecretKey bool           `json:"has_secret_key"`
}

// ToUserResponse strips credentials and the secret key value itself; only
// its presence is exposed.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		Avatar:       user.Avatar,
		Bio:          user.Profile.Bio,
		Gender:       user.Profile.Gender,
		DOB:          user.Profile.DOB,
		Settings:     user.Settings,
		HasSecretKey: user.Profile.SecretKey != "",
	}
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	DeviceID     string       `json:"device_id"`
}
