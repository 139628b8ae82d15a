package validation

import (
	"regexp"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsUUID reports whether s is a well-formed UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
