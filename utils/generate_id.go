package utils

import "github.com/google/uuid"

// GenerateID returns a random unique id for a new record.
func GenerateID() string {
	return uuid.New().String()
}
