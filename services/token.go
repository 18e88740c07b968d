package services

import (
	"errors"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken issues a short-lived access token bound to the user
// and the device the login came from.
func GenerateAccessToken(userID, deviceID string) (string, error) {
	return signToken(userID, deviceID, "access", time.Duration(utils.JWTExpirationTime)*time.Second)
}

// GenerateRefreshToken issues a long-lived refresh token. It carries the
// same device id so rotation keeps the binding.
func GenerateRefreshToken(userID, deviceID string) (string, error) {
	return signToken(userID, deviceID, "refresh", time.Duration(utils.RefreshTokenExpirationTime)*time.Second)
}

func signToken(userID, deviceID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"iss":     "lifesync",
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	if deviceID != "" {
		claims["device_id"] = deviceID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ParseRefreshToken validates a refresh token and returns the user and
// device ids it was issued to.
func ParseRefreshToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", "", errors.New("not a refresh token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", errors.New("missing user id claim")
	}
	deviceID, _ := claims["device_id"].(string)
	return userID, deviceID, nil
}
