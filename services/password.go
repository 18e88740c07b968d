package services

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters
const (
	memory      = 64 * 1024
	iterations  = 3
	parallelism = 2
	keyLength   = 32
)

func HashPassword(password string) (string, error) {
	// Generate a random salt
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.New("failed to generate salt")
	}

	// Hash the password with Argon2
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	// Encode salt and hash separately, combined with $ separator
	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	return encodedSalt + "$" + encodedHash, nil
}

// VerifyPassword verifies if the provided password matches the stored hash
func VerifyPassword(storedPassword, providedPassword string) (bool, error) {
	parts := strings.Split(storedPassword, "$")
	if len(parts) != 2 {
		return false, errors.New("invalid stored password format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false, err
	}

	storedHash, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, err
	}

	computedHash := argon2.IDKey([]byte(providedPassword), salt, iterations, memory, parallelism, keyLength)

	return bytes.Equal(computedHash, storedHash), nil
}

// ComparePasswords compares a stored password hash with a plain-text password
func ComparePasswords(storedHash, plainPassword string) bool {
	match, err := VerifyPassword(storedHash, plainPassword)
	if err != nil {
		return false
	}
	return match
}
