package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/validation"
)

// ActivityService manages manually curated activity-feed entries
type ActivityService interface {
	Create(ctx context.Context, a *models.Activity) (*models.Activity, error)
	Get(ctx context.Context, id string) (*models.Activity, error)
	List(ctx context.Context) ([]*models.Activity, error)
	Update(ctx context.Context, id string, upd *models.ActivityUpdate) (*models.Activity, error)
	Delete(ctx context.Context, id string) error
}

type activityService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(repos *repository.Repositories, log zerolog.Logger) ActivityService {
	return &activityService{
		repos: repos,
		log:   log.With().Str("service", "activity").Logger(),
	}
}

// Create records an activity entry
func (s *activityService) Create(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	if a.Title == "" {
		return nil, apierr.BadRequest("title is required")
	}
	a.ID = uuid.NewString()
	if err := s.repos.Activity.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get retrieves an activity by id
func (s *activityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	if !validation.IsUUID(id) {
		return nil, apierr.NotFound("activity not found")
	}
	a, err := s.repos.Activity.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apierr.NotFound("activity not found")
	}
	return a, nil
}

// List returns all activities, newest first
func (s *activityService) List(ctx context.Context) ([]*models.Activity, error) {
	return s.repos.Activity.List(ctx)
}

// Update applies a partial update to an activity
func (s *activityService) Update(ctx context.Context, id string, upd *models.ActivityUpdate) (*models.Activity, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.CreatedBy != nil {
		a.CreatedBy = *upd.CreatedBy
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Category != nil {
		a.Category = *upd.Category
	}

	if err := s.repos.Activity.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an activity
func (s *activityService) Delete(ctx context.Context, id string) error {
	if !validation.IsUUID(id) {
		return apierr.NotFound("activity not found")
	}
	ok, err := s.repos.Activity.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("activity not found")
	}
	return nil
}
