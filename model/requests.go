package model

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Bio         string `json:"bio"`
	Gender      string `json:"gender"`
	DOB         string `json:"dob" binding:"omitempty,isodate"`
	SecretKey   string `json:"secret_key"`
	NewPassword string `json:"new_password"`
}

type UpdateSettingsRequest struct {
	SoundEnabled *bool `json:"sound_enabled"`
	DarkMode     *bool `json:"dark_mode"`
}

type DeleteDataRequest struct {
	SecretKey string `json:"secret_key" binding:"required"`
}

type MarkCompleteRequest struct {
	Remark   string `json:"remark"`
	ImageURL string `json:"image_url"`
}
