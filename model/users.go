package model

import "time"

type User struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	Email        string    `bson:"email" json:"email" validate:"required,email"`
	Name         string    `bson:"name" json:"name" validate:"required,min=2,max=50"`
	Password     string    `bson:"password" json:"-"`
	Avatar       string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Profile      Profile   `bson:"profile" json:"profile"`
	Settings     Settings  `bson:"settings" json:"settings"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	RefreshToken string    `bson:"refresh_token,omitempty" json:"-"`
}

// Profile holds the optional account details a user fills in later.
// SecretKey is a user-chosen passphrase gating destructive operations.
type Profile struct {
	Bio       string `bson:"bio,omitempty" json:"bio,omitempty"`
	Gender    string `bson:"gender,omitempty" json:"gender,omitempty"`
	DOB       string `bson:"dob,omitempty" json:"dob,omitempty"`
	SecretKey string `bson:"secret_key,omitempty" json:"secret_key,omitempty"`
}

// ProfileSensitiveFields lists the profile attributes encrypted at rest.
var ProfileSensitiveFields = []string{"Bio", "SecretKey"}
