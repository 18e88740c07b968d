package utils

import (
	"regexp"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("password", ValidatePasswordRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("password", ValidatePasswordRule)
		v.RegisterValidation("isodate", ValidateISODateRule)
	}
}

func ValidatePasswordRule(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String())
}

func ValidatePassword(password string) bool {
	// Password must:
	// - Be at least 6 characters long
	// - Contain at least one number
	// - Contain at least one special character
	hasNumber := false
	hasSpecial := false

	if len(password) < 6 {
		return false
	}

	for _, char := range password {
		switch {
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasNumber && hasSpecial
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func ValidateISODateRule(fl validator.FieldLevel) bool {
	return IsISODate(fl.Field().String())
}

// IsISODate reports whether the string is a real YYYY-MM-DD calendar date.
// The pattern check keeps the zero-padded shape; time.Parse rejects
// impossible months and days the pattern alone would accept.
func IsISODate(date string) bool {
	if !isoDatePattern.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
