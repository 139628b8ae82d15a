package models

// PaymentStatusResponse pairs the locally stored payment status with the
// processor's live status for the stored session, when one exists
type PaymentStatusResponse struct {
	PaymentStatus   PaymentStatus `json:"payment_status"`
	ProcessorStatus string        `json:"stripe_status,omitempty"`
}

// CheckoutResponse carries the hosted checkout redirect URL
type CheckoutResponse struct {
	URL string `json:"url"`
}
