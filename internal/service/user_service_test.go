package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/auth"
	"github.com/agency-admin-api/internal/config"
	"github.com/agency-admin-api/internal/mocks"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/service"
)

func newUserService(repos *repository.Repositories) service.UserService {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	return service.NewUserService(repos, cfg, zerolog.Nop())
}

func TestSignupAndLogin(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := newUserService(repos)

	user, err := svc.Signup(context.Background(), &models.SignupRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.Role != "customer" {
		t.Errorf("Expected default role customer, got %s", user.Role)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Error("Password must be stored hashed")
	}

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email: "ada@example.com", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	userID, err := auth.ParseToken(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("Issued token does not parse: %v", err)
	}
	if userID != user.ID {
		t.Errorf("Token subject mismatch: %s vs %s", userID, user.ID)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := newUserService(repos)

	req := &models.SignupRequest{Username: "a", Email: "dup@example.com", Password: "pw"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("First signup failed: %v", err)
	}
	_, err := svc.Signup(context.Background(), req)
	if !apierr.IsCode(err, apierr.CodeConflict) {
		t.Errorf("Expected conflict, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := newUserService(repos)
	svc.Signup(context.Background(), &models.SignupRequest{
		Username: "a", Email: "a@example.com", Password: "right",
	})

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "a@example.com", Password: "wrong"})
	if !apierr.IsCode(err, apierr.CodeUnauthorized) {
		t.Errorf("Expected unauthorized, got %v", err)
	}

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "ghost@example.com", Password: "x"})
	if !apierr.IsCode(err, apierr.CodeUnauthorized) {
		t.Errorf("Expected unauthorized for unknown email, got %v", err)
	}
}

func TestUserSoftDelete(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := newUserService(repos)

	user, _ := svc.Signup(context.Background(), &models.SignupRequest{
		Username: "gone", Email: "gone@example.com", Password: "pw",
	})

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Reads exclude the deleted account, deleting twice is not_found
	if _, err := svc.Get(context.Background(), user.ID); !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Errorf("Expected not_found after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID); !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Errorf("Expected not_found on second delete, got %v", err)
	}

	users, _ := svc.List(context.Background())
	if len(users) != 0 {
		t.Errorf("Deleted user still listed, got %d", len(users))
	}
}

func TestUserUpdate_PasswordRehash(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := newUserService(repos)

	user, _ := svc.Signup(context.Background(), &models.SignupRequest{
		Username: "u", Email: "u@example.com", Password: "old-pw",
	})

	newPw := "new-pw"
	if _, err := svc.Update(context.Background(), user.ID, &models.UserUpdate{Password: &newPw}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &models.LoginRequest{Email: "u@example.com", Password: "new-pw"}); err != nil {
		t.Errorf("Login with the new password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), &models.LoginRequest{Email: "u@example.com", Password: "old-pw"}); err == nil {
		t.Error("Old password must stop working")
	}
}

func TestUserUpdate_InvalidRole(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := newUserService(repos)
	user, _ := svc.Signup(context.Background(), &models.SignupRequest{
		Username: "u", Email: "u@example.com", Password: "pw",
	})

	bad := "wizard"
	_, err := svc.Update(context.Background(), user.ID, &models.UserUpdate{Role: &bad})
	if !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request, got %v", err)
	}
}
