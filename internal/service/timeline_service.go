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

// TimelineService manages append-only timeline comments on engagements
type TimelineService interface {
	Create(ctx context.Context, c *models.TimelineComment) (*models.TimelineComment, error)
	ListByEngagement(ctx context.Context, engagementID string) ([]*models.TimelineComment, error)
}

type timelineService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewTimelineService creates a new timeline service
func NewTimelineService(repos *repository.Repositories, log zerolog.Logger) TimelineService {
	return &timelineService{
		repos: repos,
		log:   log.With().Str("service", "timeline").Logger(),
	}
}

// Create appends a comment to an engagement's timeline. The engagement
// must exist; comments are never edited afterwards.
func (s *timelineService) Create(ctx context.Context, c *models.TimelineComment) (*models.TimelineComment, error) {
	if c.Title == "" || c.EngagementID == "" {
		return nil, apierr.BadRequest("title and project are required")
	}
	if !validation.IsUUID(c.EngagementID) {
		return nil, apierr.NotFound("project not found")
	}

	e, err := s.repos.Engagement.GetByID(ctx, c.EngagementID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apierr.NotFound("project not found")
	}

	c.ID = uuid.NewString()
	if err := s.repos.Timeline.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByEngagement returns an engagement's comments, newest first
func (s *timelineService) ListByEngagement(ctx context.Context, engagementID string) ([]*models.TimelineComment, error) {
	if !validation.IsUUID(engagementID) {
		return nil, apierr.NotFound("project not found")
	}
	e, err := s.repos.Engagement.GetByID(ctx, engagementID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apierr.NotFound("project not found")
	}
	return s.repos.Timeline.ListByEngagement(ctx, engagementID)
}
