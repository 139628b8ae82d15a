package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/auth"
	"github.com/agency-admin-api/internal/config"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/validation"
)

// UserService manages user accounts. Accounts are soft-deleted only;
// every read excludes deleted rows.
type UserService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, upd *models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repos *repository.Repositories
	cfg   *config.Config
	log   zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) UserService {
	return &userService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// Signup creates a new account. Email must be unique among active users.
func (s *userService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apierr.BadRequest("username, email and password are required")
	}
	if !validation.IsEmail(req.Email) {
		return nil, apierr.BadRequest("invalid email address")
	}

	role := req.Role
	if role == "" {
		role = "customer"
	}
	if !models.ValidRoles[role] {
		return nil, apierr.BadRequest("unknown role: " + role)
	}

	existing, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.Conflict("email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            uuid.NewString(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Username:      req.Username,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		PasswordHash:  hash,
		Gender:        req.Gender,
		Address:       req.Address,
		Country:       req.Country,
		Role:          role,
		ZoomUsername:  req.ZoomUsername,
		SkypeUsername: req.SkypeUsername,
	}

	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("User created")
	return user, nil
}

// Login verifies credentials and issues a signed token. The same error is
// returned for unknown email and wrong password.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apierr.BadRequest("email and password are required")
	}

	user, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, apierr.Unauthorized("invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, s.cfg.Auth.JWTSecret, s.cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

// List returns all active users
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.repos.User.List(ctx)
}

// Get retrieves an active user by id
func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	if !validation.IsUUID(id) {
		return nil, apierr.NotFound("user not found")
	}
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user not found")
	}
	return user, nil
}

// Update applies a partial update; nil fields are left untouched
func (s *userService) Update(ctx context.Context, id string, upd *models.UserUpdate) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil && *upd.Email != user.Email {
		if !validation.IsEmail(*upd.Email) {
			return nil, apierr.BadRequest("invalid email address")
		}
		other, err := s.repos.User.GetByEmail(ctx, *upd.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, apierr.Conflict("email already registered")
		}
		user.Email = *upd.Email
	}
	if upd.Role != nil {
		if !models.ValidRoles[*upd.Role] {
			return nil, apierr.BadRequest("unknown role: " + *upd.Role)
		}
		user.Role = *upd.Role
	}
	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.PhoneNumber != nil {
		user.PhoneNumber = *upd.PhoneNumber
	}
	if upd.Gender != nil {
		user.Gender = *upd.Gender
	}
	if upd.Address != nil {
		user.Address = *upd.Address
	}
	if upd.Country != nil {
		user.Country = *upd.Country
	}
	if upd.ZoomUsername != nil {
		user.ZoomUsername = *upd.ZoomUsername
	}
	if upd.SkypeUsername != nil {
		user.SkypeUsername = *upd.SkypeUsername
	}

	if err := s.repos.User.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete marks the user deleted; the row is kept
func (s *userService) Delete(ctx context.Context, id string) error {
	if !validation.IsUUID(id) {
		return apierr.NotFound("user not found")
	}
	ok, err := s.repos.User.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("user not found")
	}
	s.log.Info().Str("user_id", id).Msg("User deleted")
	return nil
}
