package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/config"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/payment"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/validation"
)

// PaymentService bridges engagements to the hosted payment processor.
// Engagements are resolved from processor events only by the stored
// checkout session id; business ids carried in event payloads are never
// trusted for correlation.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, engagementID string) (*models.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	CompleteCheckout(ctx context.Context, sessionID string) error
	GetStatus(ctx context.Context, engagementID string) (*models.PaymentStatusResponse, error)
}

type paymentService struct {
	repos    *repository.Repositories
	provider payment.Provider
	cfg      *config.Config
	log      zerolog.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(repos *repository.Repositories, provider payment.Provider, cfg *config.Config, log zerolog.Logger) PaymentService {
	return &paymentService{
		repos:    repos,
		provider: provider,
		cfg:      cfg,
		log:      log.With().Str("service", "payment").Logger(),
	}
}

// CreateCheckoutSession opens a hosted checkout session for the
// engagement's price and stores the session id for later correlation.
// Opening a new session resets payment_status to pending.
func (s *paymentService) CreateCheckoutSession(ctx context.Context, engagementID string) (*models.CheckoutResponse, error) {
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
	if e.Price <= 0 {
		return nil, apierr.BadRequest("project has no payable price")
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		EngagementID: e.ID,
		ProductName:  e.Title,
		AmountMinor:  e.Price * 100,
		Currency:     "usd",
		SuccessURL:   s.cfg.Server.BaseURL + "/api/stripe/complete?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:    s.cfg.Server.BaseURL + "/api/stripe/cancel",
	})
	if err != nil {
		return nil, apierr.Upstream("failed to create checkout session", err)
	}

	if err := s.repos.Engagement.SetCheckoutSession(ctx, e.ID, session.ID, session.ClientSecret); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", e.ID).Str("session_id", session.ID).Msg("Checkout session created")
	return &models.CheckoutResponse{URL: session.URL}, nil
}

// HandleWebhook verifies and applies a processor event. A signature
// mismatch changes no state. Events for unknown session ids and event
// types outside the mapping are acknowledged and ignored; replays apply
// the same transition again and converge on the same row state.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		s.log.Warn().Err(err).Msg("Webhook signature verification failed")
		return apierr.BadRequest("invalid webhook signature")
	}

	switch event.Type {
	case payment.EventPaymentSucceeded:
		return s.applyTransition(ctx, event.SessionID,
			models.PaymentStatusPaid, models.EngagementStatusInProgress, 10)
	case payment.EventPaymentFailed:
		return s.applyTransition(ctx, event.SessionID,
			models.PaymentStatusFailed, models.EngagementStatusCanceled, -1)
	default:
		s.log.Debug().Str("session_id", event.SessionID).Msg("Ignoring unhandled webhook event")
		return nil
	}
}

func (s *paymentService) applyTransition(ctx context.Context, sessionID string, paymentStatus models.PaymentStatus, status models.EngagementStatus, statusPercentage int) error {
	matched, err := s.repos.Engagement.UpdatePaymentBySession(ctx, sessionID, paymentStatus, status, statusPercentage)
	if err != nil {
		return err
	}
	if !matched {
		s.log.Warn().Str("session_id", sessionID).Msg("No engagement matches webhook session")
		return nil
	}
	s.log.Info().Str("session_id", sessionID).Str("payment_status", string(paymentStatus)).
		Msg("Payment transition applied")
	return nil
}

// CompleteCheckout is the redirect-landing fallback: it asks the
// processor for the session's status and applies the paid transition
// only if the processor confirms payment
func (s *paymentService) CompleteCheckout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apierr.BadRequest("session_id is required")
	}

	status, err := s.provider.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return apierr.Upstream("failed to retrieve checkout session", err)
	}
	if status != "paid" {
		return apierr.BadRequest("payment has not completed")
	}

	matched, err := s.repos.Engagement.UpdatePaymentBySession(ctx, sessionID,
		models.PaymentStatusPaid, models.EngagementStatusInProgress, 10)
	if err != nil {
		return err
	}
	if !matched {
		return apierr.NotFound("no project matches this session")
	}
	return nil
}

// GetStatus returns the stored payment status plus the processor's live
// status when a session exists. Without a stored session id the
// processor is not consulted.
func (s *paymentService) GetStatus(ctx context.Context, engagementID string) (*models.PaymentStatusResponse, error) {
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

	resp := &models.PaymentStatusResponse{PaymentStatus: e.PaymentStatus}
	if e.CheckoutSessionID == "" {
		return resp, nil
	}

	live, err := s.provider.GetSessionStatus(ctx, e.CheckoutSessionID)
	if err != nil {
		return nil, apierr.Upstream("failed to retrieve checkout session", err)
	}
	resp.ProcessorStatus = live
	return resp, nil
}
