package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agency-admin-api/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("user-42", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	userID, err := auth.ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("Expected user-42, got %s", userID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, _ := auth.GenerateToken("user-42", "secret", time.Hour)
	if _, err := auth.ParseToken(token, "other-secret"); err == nil {
		t.Error("Token signed with another secret must be rejected")
	}
}

func TestTokenExpired(t *testing.T) {
	token, _ := auth.GenerateToken("user-42", "secret", -time.Minute)
	if _, err := auth.ParseToken(token, "secret"); err == nil {
		t.Error("Expired token must be rejected")
	}
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := auth.ExtractToken(req); got != "" {
		t.Errorf("Expected empty for missing header, got %q", got)
	}

	req.Header.Set("Authorization", "Bearer abc123")
	if got := auth.ExtractToken(req); got != "abc123" {
		t.Errorf("Expected abc123, got %q", got)
	}

	req.Header.Set("Authorization", "Basic abc123")
	if got := auth.ExtractToken(req); got != "" {
		t.Errorf("Expected empty for non-bearer scheme, got %q", got)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("swordfish")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "swordfish" {
		t.Fatal("Hash must differ from plaintext")
	}
	if !auth.CheckPassword("swordfish", hash) {
		t.Error("Correct password rejected")
	}
	if auth.CheckPassword("not-it", hash) {
		t.Error("Wrong password accepted")
	}
}
