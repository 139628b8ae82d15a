package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/validation"
)

// EngagementService manages the engagement lifecycle: creation (with
// implicit customer accounts), conversion from estimates, staff
// assignment and the participant views.
type EngagementService interface {
	Create(ctx context.Context, req *models.CreateEngagementRequest) (*models.Engagement, error)
	Get(ctx context.Context, id string) (*models.Engagement, error)
	List(ctx context.Context, engagementType models.EngagementType) ([]*models.Engagement, error)
	Update(ctx context.Context, id string, upd *models.UpdateEngagementRequest) (*models.Engagement, error)
	Delete(ctx context.Context, id string) error
	AssignStaff(ctx context.Context, req *models.AssignStaffRequest) (*models.Engagement, error)
	UnassignStaff(ctx context.Context, req *models.UnassignStaffRequest) (*models.Engagement, error)
	ListByParticipant(ctx context.Context, userID string) ([]*models.Engagement, error)
	ConvertFromEstimate(ctx context.Context, estimateID string) (*models.Engagement, error)
}

type engagementService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(repos *repository.Repositories, log zerolog.Logger) EngagementService {
	return &engagementService{
		repos: repos,
		log:   log.With().Str("service", "engagement").Logger(),
	}
}

// Create creates an engagement, resolving or implicitly creating the
// owning customer account by email
func (s *engagementService) Create(ctx context.Context, req *models.CreateEngagementRequest) (*models.Engagement, error) {
	if req.Title == "" || req.Email == "" {
		return nil, apierr.BadRequest("title and email are required")
	}
	if !validation.IsEmail(req.Email) {
		return nil, apierr.BadRequest("invalid email address")
	}

	engagementType := req.Type
	if engagementType == "" {
		engagementType = models.EngagementTypeProject
	}
	if engagementType != models.EngagementTypeProject && engagementType != models.EngagementTypeMarketing {
		return nil, apierr.BadRequest("unknown engagement type: " + string(engagementType))
	}

	client, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if client == nil {
		username := req.Username
		if username == "" {
			username = strings.SplitN(req.Email, "@", 2)[0]
		}
		client = &models.User{
			ID:          uuid.NewString(),
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Username:    username,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Role:        "customer",
		}
		if err := s.repos.User.Create(ctx, client); err != nil {
			return nil, err
		}
		s.log.Info().Str("user_id", client.ID).Str("email", client.Email).
			Msg("Customer account created for new engagement")
	}

	e := &models.Engagement{
		ID:               uuid.NewString(),
		Title:            req.Title,
		ClientID:         client.ID,
		Type:             engagementType,
		Service:          req.Service,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Price:            req.Price,
		Country:          req.Country,
		BusinessSize:     req.BusinessSize,
		Description:      req.Description,
		Status:           models.EngagementStatusInProgress,
		StatusPercentage: 10,
		PaymentStatus:    models.PaymentStatusPending,
		HandledBy:        []models.StaffAssignment{},
	}
	if engagementType == models.EngagementTypeMarketing {
		e.Socials = req.Socials
	}

	if err := s.repos.Engagement.Create(ctx, e); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", e.ID).Str("client_id", client.ID).Msg("Engagement created")
	return e, nil
}

// Get retrieves an engagement with its staff assignments
func (s *engagementService) Get(ctx context.Context, id string) (*models.Engagement, error) {
	if !validation.IsUUID(id) {
		return nil, apierr.NotFound("project not found")
	}
	e, err := s.repos.Engagement.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apierr.NotFound("project not found")
	}
	return e, nil
}

// List retrieves engagements, optionally filtered by type
func (s *engagementService) List(ctx context.Context, engagementType models.EngagementType) ([]*models.Engagement, error) {
	return s.repos.Engagement.List(ctx, engagementType)
}

// Update applies a partial update. Client contact fields update the
// owning user record; switching type to project clears socials.
// Payment status is never writable here, only the payment bridge sets it.
func (s *engagementService) Update(ctx context.Context, id string, upd *models.UpdateEngagementRequest) (*models.Engagement, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		if !models.ValidEngagementStatuses[*upd.Status] {
			return nil, apierr.BadRequest("unknown status: " + string(*upd.Status))
		}
		e.Status = *upd.Status
	}
	if upd.StatusPercentage != nil {
		if *upd.StatusPercentage < 0 || *upd.StatusPercentage > 100 {
			return nil, apierr.BadRequest("status_percentage must be between 0 and 100")
		}
		e.StatusPercentage = *upd.StatusPercentage
	}
	if upd.Type != nil {
		if *upd.Type != models.EngagementTypeProject && *upd.Type != models.EngagementTypeMarketing {
			return nil, apierr.BadRequest("unknown engagement type: " + string(*upd.Type))
		}
		e.Type = *upd.Type
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Service != nil {
		e.Service = *upd.Service
	}
	if upd.StartDate != nil {
		e.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		e.EndDate = upd.EndDate
	}
	if upd.Price != nil {
		e.Price = *upd.Price
	}
	if upd.Country != nil {
		e.Country = *upd.Country
	}
	if upd.BusinessSize != nil {
		e.BusinessSize = *upd.BusinessSize
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Socials != nil {
		e.Socials = upd.Socials
	}
	if e.Type == models.EngagementTypeProject {
		e.Socials = nil
	}

	if upd.Email != nil || upd.FirstName != nil || upd.LastName != nil || upd.PhoneNumber != nil {
		if err := s.updateClientContact(ctx, e.ClientID, upd); err != nil {
			return nil, err
		}
	}

	if err := s.repos.Engagement.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *engagementService) updateClientContact(ctx context.Context, clientID string, upd *models.UpdateEngagementRequest) error {
	client, err := s.repos.User.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return apierr.NotFound("client account not found")
	}
	if upd.Email != nil {
		if !validation.IsEmail(*upd.Email) {
			return apierr.BadRequest("invalid email address")
		}
		client.Email = *upd.Email
	}
	if upd.FirstName != nil {
		client.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		client.LastName = *upd.LastName
	}
	if upd.PhoneNumber != nil {
		client.PhoneNumber = *upd.PhoneNumber
	}
	return s.repos.User.Update(ctx, client)
}

// Delete removes an engagement and its staff assignments
func (s *engagementService) Delete(ctx context.Context, id string) error {
	if !validation.IsUUID(id) {
		return apierr.NotFound("project not found")
	}
	ok, err := s.repos.Engagement.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("project not found")
	}
	s.log.Info().Str("project_id", id).Msg("Engagement deleted")
	return nil
}

// AssignStaff appends a staff member to handled_by. The store enforces
// uniqueness per (engagement, user); a duplicate is reported as a
// conflict and leaves the membership unchanged.
func (s *engagementService) AssignStaff(ctx context.Context, req *models.AssignStaffRequest) (*models.Engagement, error) {
	if req.EngagementID == "" || req.UserID == "" {
		return nil, apierr.BadRequest("project_id and user_id are required")
	}
	e, err := s.Get(ctx, req.EngagementID)
	if err != nil {
		return nil, err
	}

	if !validation.IsUUID(req.UserID) {
		return nil, apierr.NotFound("user not found")
	}
	staff, err := s.repos.User.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apierr.NotFound("user not found")
	}

	userName := req.UserName
	if userName == "" {
		userName = staff.Username
	}

	added, err := s.repos.Engagement.AddStaff(ctx, e.ID, models.StaffAssignment{
		UserID:       staff.ID,
		UserName:     userName,
		AssignedDate: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, apierr.Conflict("user is already assigned to this project")
	}

	s.log.Info().Str("project_id", e.ID).Str("user_id", staff.ID).Msg("Staff assigned")
	return s.Get(ctx, e.ID)
}

// UnassignStaff removes a staff member from handled_by
func (s *engagementService) UnassignStaff(ctx context.Context, req *models.UnassignStaffRequest) (*models.Engagement, error) {
	if req.EngagementID == "" || req.UserID == "" {
		return nil, apierr.BadRequest("project_id and user_id are required")
	}
	e, err := s.Get(ctx, req.EngagementID)
	if err != nil {
		return nil, err
	}

	removed, err := s.repos.Engagement.RemoveStaff(ctx, e.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apierr.NotFound("user is not assigned to this project")
	}

	s.log.Info().Str("project_id", e.ID).Str("user_id", req.UserID).Msg("Staff unassigned")
	return s.Get(ctx, e.ID)
}

// ListByParticipant returns engagements where the user is the client,
// followed by engagements where the user is assigned staff. A user who
// is both sees the engagement twice; callers rely on that shape.
func (s *engagementService) ListByParticipant(ctx context.Context, userID string) ([]*models.Engagement, error) {
	if !validation.IsUUID(userID) {
		return nil, apierr.NotFound("user not found")
	}
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user not found")
	}

	asClient, err := s.repos.Engagement.ListByClient(ctx, userID)
	if err != nil {
		return nil, err
	}
	asStaff, err := s.repos.Engagement.ListByStaff(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Engagement, 0, len(asClient)+len(asStaff))
	out = append(out, asClient...)
	out = append(out, asStaff...)
	return out, nil
}

// ConvertFromEstimate turns an accepted estimate into an engagement and
// deletes the estimate. The client account must already exist; unlike
// Create, conversion never creates one implicitly.
func (s *engagementService) ConvertFromEstimate(ctx context.Context, estimateID string) (*models.Engagement, error) {
	if !validation.IsUUID(estimateID) {
		return nil, apierr.NotFound("estimate not found")
	}
	est, err := s.repos.Estimate.GetByID(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, apierr.NotFound("estimate not found")
	}

	client, err := s.repos.User.GetByEmail(ctx, est.Client.Email)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apierr.BadRequest("no user account matches the estimate client email")
	}

	title := est.RequestDetails.Title
	if title == "" {
		title = "Untitled Project"
	}
	description := est.Description
	if description == "" {
		description = "No description provided"
	}

	now := time.Now()
	e := &models.Engagement{
		ID:               uuid.NewString(),
		Title:            title,
		ClientID:         client.ID,
		Type:             models.EngagementTypeProject,
		Service:          est.RequestDetails.Service,
		StartDate:        &now,
		EndDate:          parseProposedDate(est.RequestDetails.ProposedEndDate),
		Price:            est.RequestDetails.Budget,
		Country:          est.RequestDetails.Country,
		BusinessSize:     est.RequestDetails.BusinessSize,
		Description:      description,
		Status:           models.EngagementStatusInProgress,
		StatusPercentage: 10,
		PaymentStatus:    models.PaymentStatusPending,
		HandledBy:        []models.StaffAssignment{},
	}

	if err := s.repos.Engagement.Create(ctx, e); err != nil {
		return nil, err
	}

	if _, err := s.repos.Estimate.Delete(ctx, est.ID); err != nil {
		s.log.Error().Err(err).Str("estimate_id", est.ID).Str("project_id", e.ID).
			Msg("Estimate cleanup after conversion failed")
		return nil, err
	}

	s.log.Info().Str("estimate_id", est.ID).Str("project_id", e.ID).Msg("Estimate converted")
	return e, nil
}

// parseProposedDate parses the free-form proposed date carried on
// estimates; returns nil when it is empty or unparseable
func parseProposedDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
