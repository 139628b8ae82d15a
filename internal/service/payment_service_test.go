package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/config"
	"github.com/agency-admin-api/internal/mocks"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/payment"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/service"
)

func newPaymentService(repos *repository.Repositories, provider payment.Provider) service.PaymentService {
	cfg := &config.Config{}
	cfg.Server.BaseURL = "https://admin.example.com"
	return service.NewPaymentService(repos, provider, cfg, zerolog.Nop())
}

func TestCheckout_CreatesAndStoresSession(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)
	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)

	resp, err := svc.CreateCheckoutSession(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("CreateCheckoutSession failed: %v", err)
	}
	if resp.URL == "" {
		t.Error("Expected a hosted checkout URL")
	}

	if len(provider.CreatedParams) != 1 {
		t.Fatalf("Expected 1 provider call, got %d", len(provider.CreatedParams))
	}
	params := provider.CreatedParams[0]
	if params.AmountMinor != e.Price*100 {
		t.Errorf("Expected minor units %d, got %d", e.Price*100, params.AmountMinor)
	}
	if params.Currency != "usd" {
		t.Errorf("Expected usd, got %s", params.Currency)
	}
	if params.SuccessURL != "https://admin.example.com/api/stripe/complete?session_id={CHECKOUT_SESSION_ID}" {
		t.Errorf("Unexpected success URL %s", params.SuccessURL)
	}

	stored, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	if stored.CheckoutSessionID == "" {
		t.Error("Session id should be stored for correlation")
	}
	if stored.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("New session should reset payment to pending, got %s", stored.PaymentStatus)
	}
}

func TestCheckout_Errors(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)

	_, err := svc.CreateCheckoutSession(context.Background(), uuid.NewString())
	if !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Errorf("Expected not_found, got %v", err)
	}

	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)
	e.Price = 0
	repos.Engagement.Update(context.Background(), e)

	_, err = svc.CreateCheckoutSession(context.Background(), e.ID)
	if !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request for zero price, got %v", err)
	}

	e.Price = 100
	repos.Engagement.Update(context.Background(), e)
	provider.CreateFunc = func(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error) {
		return nil, errors.New("processor down")
	}
	_, err = svc.CreateCheckoutSession(context.Background(), e.ID)
	if !apierr.IsCode(err, apierr.CodeUpstream) {
		t.Errorf("Expected upstream_error, got %v", err)
	}
}

func TestWebhook_InvalidSignature(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)
	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)
	repos.Engagement.SetCheckoutSession(context.Background(), e.ID, "cs_1", "")

	provider.ParseFunc = func(payload []byte, signature string) (*payment.Event, error) {
		return nil, errors.New("signature mismatch")
	}

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "bad")
	if !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Fatalf("Expected bad_request, got %v", err)
	}

	// No state may change on a rejected signature
	stored, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	if stored.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("Payment status changed on invalid signature: %s", stored.PaymentStatus)
	}
}

func TestWebhook_SucceededTransition(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)
	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)
	e.Status = models.EngagementStatusPending
	e.StatusPercentage = 0
	repos.Engagement.Update(context.Background(), e)
	repos.Engagement.SetCheckoutSession(context.Background(), e.ID, "cs_1", "")

	provider.ParseFunc = func(payload []byte, signature string) (*payment.Event, error) {
		return &payment.Event{Type: payment.EventPaymentSucceeded, SessionID: "cs_1"}, nil
	}

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook failed: %v", err)
	}

	stored, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	if stored.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("Expected paid, got %s", stored.PaymentStatus)
	}
	if stored.Status != models.EngagementStatusInProgress || stored.StatusPercentage != 10 {
		t.Errorf("Expected in_progress/10, got %s/%d", stored.Status, stored.StatusPercentage)
	}

	// Replay converges on the same state
	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	replayed, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	if replayed.PaymentStatus != models.PaymentStatusPaid || replayed.StatusPercentage != 10 {
		t.Errorf("Replay diverged: %s/%d", replayed.PaymentStatus, replayed.StatusPercentage)
	}
}

func TestWebhook_FailedTransition(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)
	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)
	e.StatusPercentage = 40
	repos.Engagement.Update(context.Background(), e)
	repos.Engagement.SetCheckoutSession(context.Background(), e.ID, "cs_1", "")

	provider.ParseFunc = func(payload []byte, signature string) (*payment.Event, error) {
		return &payment.Event{Type: payment.EventPaymentFailed, SessionID: "cs_1"}, nil
	}

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook failed: %v", err)
	}

	stored, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	if stored.PaymentStatus != models.PaymentStatusFailed {
		t.Errorf("Expected failed, got %s", stored.PaymentStatus)
	}
	if stored.Status != models.EngagementStatusCanceled {
		t.Errorf("Expected canceled, got %s", stored.Status)
	}
	if stored.StatusPercentage != 40 {
		t.Errorf("Failure should not touch progress, got %d", stored.StatusPercentage)
	}
}

func TestWebhook_UnknownSessionIsNoop(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)
	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)

	provider.ParseFunc = func(payload []byte, signature string) (*payment.Event, error) {
		return &payment.Event{Type: payment.EventPaymentSucceeded, SessionID: "cs_unknown"}, nil
	}

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("Expected 200-style no-op, got %v", err)
	}

	stored, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	if stored.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("Unknown session must not mutate state, got %s", stored.PaymentStatus)
	}
}

func TestWebhook_UnknownEventIgnored(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)

	provider.ParseFunc = func(payload []byte, signature string) (*payment.Event, error) {
		return &payment.Event{Type: payment.EventUnknown, SessionID: "cs_1"}, nil
	}
	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Errorf("Unknown events should be acknowledged, got %v", err)
	}
}

func TestGetStatus_WithoutSessionSkipsProcessor(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)
	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)

	resp, err := svc.GetStatus(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if resp.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("Expected pending, got %s", resp.PaymentStatus)
	}
	if resp.ProcessorStatus != "" {
		t.Errorf("Expected no processor status, got %s", resp.ProcessorStatus)
	}
	if provider.StatusCalls != 0 {
		t.Errorf("Processor must not be consulted without a session, got %d calls", provider.StatusCalls)
	}
}

func TestGetStatus_WithSession(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)
	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)
	repos.Engagement.SetCheckoutSession(context.Background(), e.ID, "cs_1", "")

	resp, err := svc.GetStatus(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if resp.ProcessorStatus != "paid" {
		t.Errorf("Expected live status paid, got %s", resp.ProcessorStatus)
	}
	if provider.StatusCalls != 1 {
		t.Errorf("Expected 1 processor call, got %d", provider.StatusCalls)
	}
}

func TestCompleteCheckout(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	svc := newPaymentService(repos, provider)
	client := seedUser(t, repos, "payer@example.com", "customer")
	e := seedEngagement(t, repos, client.ID)
	repos.Engagement.SetCheckoutSession(context.Background(), e.ID, "cs_1", "")

	if err := svc.CompleteCheckout(context.Background(), ""); !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request for empty session, got %v", err)
	}

	provider.StatusFunc = func(ctx context.Context, sessionID string) (string, error) {
		return "unpaid", nil
	}
	if err := svc.CompleteCheckout(context.Background(), "cs_1"); !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request for unpaid session, got %v", err)
	}

	provider.StatusFunc = nil
	if err := svc.CompleteCheckout(context.Background(), "cs_1"); err != nil {
		t.Fatalf("CompleteCheckout failed: %v", err)
	}
	stored, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	if stored.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("Expected paid, got %s", stored.PaymentStatus)
	}
}

func TestCheckoutScenario_EndToEnd(t *testing.T) {
	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	paySvc := newPaymentService(repos, provider)
	engSvc := service.NewEngagementService(repos, zerolog.Nop())

	e, err := engSvc.Create(context.Background(), &models.CreateEngagementRequest{
		Title: "Launch site",
		Email: "founder@example.com",
		Price: 900,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := paySvc.CreateCheckoutSession(context.Background(), e.ID); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	stored, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	sessionID := stored.CheckoutSessionID

	provider.ParseFunc = func(payload []byte, signature string) (*payment.Event, error) {
		return &payment.Event{Type: payment.EventPaymentSucceeded, SessionID: sessionID}, nil
	}
	if err := paySvc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("Webhook failed: %v", err)
	}

	final, _ := repos.Engagement.GetByID(context.Background(), e.ID)
	if final.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("Expected paid after webhook, got %s", final.PaymentStatus)
	}
	if final.UpdatedAt.Before(final.CreatedAt.Add(-time.Second)) {
		t.Error("UpdatedAt should move forward")
	}
}
