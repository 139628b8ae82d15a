package validation_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/agency-admin-api/internal/validation"
)

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@sub.example.com"}
	invalid := []string{"", "plain", "a@b", "a b@c.d", "@example.com"}

	for _, s := range valid {
		if !validation.IsEmail(s) {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if validation.IsEmail(s) {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}

func TestIsUUID(t *testing.T) {
	if !validation.IsUUID(uuid.NewString()) {
		t.Error("Generated UUID should validate")
	}
	if validation.IsUUID("not-a-uuid") {
		t.Error("Garbage should not validate")
	}
}
