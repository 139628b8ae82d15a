package mocks

import (
	"context"

	"github.com/agency-admin-api/internal/payment"
)

// MockPaymentProvider is a fake payment.Provider. The Func fields
// override the defaults per test; calls are recorded for assertions.
type MockPaymentProvider struct {
	CreateFunc func(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error)
	StatusFunc func(ctx context.Context, sessionID string) (string, error)
	ParseFunc  func(payload []byte, signature string) (*payment.Event, error)

	CreatedParams []payment.CheckoutParams
	StatusCalls   int
}

// Verify interface compliance
var _ payment.Provider = (*MockPaymentProvider)(nil)

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error) {
	m.CreatedParams = append(m.CreatedParams, params)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &payment.CheckoutSession{
		ID:  "cs_test_" + params.EngagementID,
		URL: "https://checkout.test/cs_test_" + params.EngagementID,
	}, nil
}

func (m *MockPaymentProvider) GetSessionStatus(ctx context.Context, sessionID string) (string, error) {
	m.StatusCalls++
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, sessionID)
	}
	return "paid", nil
}

func (m *MockPaymentProvider) ParseWebhook(payload []byte, signature string) (*payment.Event, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(payload, signature)
	}
	return &payment.Event{Type: payment.EventUnknown}, nil
}
