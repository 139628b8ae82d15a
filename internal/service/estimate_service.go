package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/validation"
)

// EstimateService manages pre-sales estimate requests. Creation is
// public (landing-page form); everything else is staff-only.
type EstimateService interface {
	Create(ctx context.Context, est *models.Estimate) (*models.Estimate, error)
	Get(ctx context.Context, id string) (*models.Estimate, error)
	List(ctx context.Context) (*models.EstimateListing, error)
	Update(ctx context.Context, id string, upd *models.EstimateUpdate) (*models.Estimate, error)
}

type estimateService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewEstimateService creates a new estimate service
func NewEstimateService(repos *repository.Repositories, log zerolog.Logger) EstimateService {
	return &estimateService{
		repos: repos,
		log:   log.With().Str("service", "estimate").Logger(),
	}
}

// Create records a new estimate request
func (s *estimateService) Create(ctx context.Context, est *models.Estimate) (*models.Estimate, error) {
	if est.RequestDetails.Title == "" || est.RequestDetails.Service == "" {
		return nil, apierr.BadRequest("request title and service are required")
	}
	if est.Client.Email == "" || !validation.IsEmail(est.Client.Email) {
		return nil, apierr.BadRequest("a valid client email is required")
	}

	est.ID = uuid.NewString()
	if est.RequestDetails.RequestID == "" {
		est.RequestDetails.RequestID = "REQ-" + strings.ToUpper(est.ID[:8])
	}
	if est.Status == "" {
		est.Status = models.EstimateStatusPending
	}
	if !models.ValidEstimateStatuses[est.Status] {
		return nil, apierr.BadRequest("unknown status: " + string(est.Status))
	}
	if est.AdditionalServices == nil {
		est.AdditionalServices = []string{}
	}

	if err := s.repos.Estimate.Create(ctx, est); err != nil {
		return nil, err
	}

	s.log.Info().Str("estimate_id", est.ID).Str("request_id", est.RequestDetails.RequestID).
		Msg("Estimate request received")
	return est, nil
}

// Get retrieves an estimate by id
func (s *estimateService) Get(ctx context.Context, id string) (*models.Estimate, error) {
	if !validation.IsUUID(id) {
		return nil, apierr.NotFound("estimate not found")
	}
	est, err := s.repos.Estimate.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, apierr.NotFound("estimate not found")
	}
	return est, nil
}

// List returns the status rollup plus one row per request, newest first
func (s *estimateService) List(ctx context.Context) (*models.EstimateListing, error) {
	estimates, err := s.repos.Estimate.List(ctx)
	if err != nil {
		return nil, err
	}

	listing := &models.EstimateListing{
		Requests: make([]models.EstimateListItem, 0, len(estimates)),
	}
	for _, est := range estimates {
		listing.Summary.TotalRequests++
		switch est.Status {
		case models.EstimateStatusCompleted:
			listing.Summary.Completed++
		case models.EstimateStatusClosed:
			listing.Summary.Closed++
		case models.EstimateStatusInProgress:
			listing.Summary.InProgress++
		default:
			listing.Summary.Pending++
		}
		listing.Requests = append(listing.Requests, models.EstimateListItem{
			ID:               est.ID,
			Email:            est.Client.Email,
			Date:             est.CreatedAt,
			ServiceRequested: est.RequestDetails.Service,
			Status:           est.Status,
			RequestID:        est.RequestDetails.RequestID,
		})
	}
	return listing, nil
}

// Update applies a partial update to description, additional services
// or status
func (s *estimateService) Update(ctx context.Context, id string, upd *models.EstimateUpdate) (*models.Estimate, error) {
	est, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		if !models.ValidEstimateStatuses[*upd.Status] {
			return nil, apierr.BadRequest("unknown status: " + string(*upd.Status))
		}
		est.Status = *upd.Status
	}
	if upd.Description != nil {
		est.Description = *upd.Description
	}
	if upd.AdditionalServices != nil {
		est.AdditionalServices = upd.AdditionalServices
	}

	if err := s.repos.Estimate.Update(ctx, est); err != nil {
		return nil, err
	}
	return est, nil
}
