package payment

import (
	"context"
)

// EventType classifies processor webhook events
type EventType string

const (
	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
	EventUnknown          EventType = "unknown"
)

// Event is a verified, normalized webhook event. SessionID is the
// processor-side correlation id; engagements are resolved by it, never
// by ids carried in the event's business payload.
type Event struct {
	Type      EventType
	SessionID string
}

// CheckoutParams describes the hosted checkout session to create
type CheckoutParams struct {
	EngagementID string
	ProductName  string
	AmountMinor  int64
	Currency     string
	SuccessURL   string
	CancelURL    string
}

// CheckoutSession is the processor's handle for a created session
type CheckoutSession struct {
	ID           string
	URL          string
	ClientSecret string
}

// Provider abstracts the hosted payment processor so services can be
// tested against a fake.
type Provider interface {
	// CreateCheckoutSession requests a hosted checkout session
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)

	// GetSessionStatus returns the processor's own payment status for a session
	GetSessionStatus(ctx context.Context, sessionID string) (string, error)

	// ParseWebhook verifies the signature and normalizes the event.
	// A signature mismatch returns an error and no event.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
