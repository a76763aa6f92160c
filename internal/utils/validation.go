package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(strings.TrimSpace(phone), " ", ""))
}

// RequireFields collects "<field> is required" errors for every blank value.
// Mirrors the client-side required-field checks so a bad payload never costs
// a database round-trip.
func RequireFields(fields map[string]string) map[string]string {
	errors := make(map[string]string)
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			errors[name] = name + " is required"
		}
	}
	if len(errors) == 0 {
		return nil
	}
	return errors
}
