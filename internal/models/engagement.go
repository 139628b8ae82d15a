package models

import (
	"time"
)

// EngagementType distinguishes project work from marketing engagements
type EngagementType string

const (
	EngagementTypeProject   EngagementType = "project"
	EngagementTypeMarketing EngagementType = "marketing"
)

// EngagementStatus is the delivery lifecycle status
type EngagementStatus string

const (
	EngagementStatusPending    EngagementStatus = "pending"
	EngagementStatusInProgress EngagementStatus = "in_progress"
	EngagementStatusCompleted  EngagementStatus = "completed"
	EngagementStatusCanceled   EngagementStatus = "canceled"
)

// PaymentStatus tracks the current payment attempt.
// pending -> processing -> {paid, failed}; paid and failed are terminal
// for the attempt, a new checkout session resets to pending.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Socials holds marketing-engagement social handles
type Socials struct {
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// StaffAssignment is one handled_by entry on an engagement
type StaffAssignment struct {
	UserID       string    `json:"user_id" db:"user_id"`
	UserName     string    `json:"user_name" db:"user_name"`
	AssignedDate time.Time `json:"assigned_date" db:"assigned_date"`
}

// Engagement is the central aggregate: a paid piece of work for a client
type Engagement struct {
	ID                string            `json:"project_id" db:"id"`
	Title             string            `json:"title" db:"title"`
	ClientID          string            `json:"client_id" db:"client_id"`
	Type              EngagementType    `json:"type" db:"type"`
	Service           string            `json:"service" db:"service"`
	StartDate         *time.Time        `json:"start_date,omitempty" db:"start_date"`
	EndDate           *time.Time        `json:"end_date,omitempty" db:"end_date"`
	Price             int64             `json:"price" db:"price"`
	Country           string            `json:"country" db:"country"`
	BusinessSize      string            `json:"business_size" db:"business_size"`
	Description       string            `json:"description" db:"description"`
	Socials           *Socials          `json:"socials,omitempty" db:"-"`
	Status            EngagementStatus  `json:"status" db:"status"`
	StatusPercentage  int               `json:"status_percentage" db:"status_percentage"`
	PaymentStatus     PaymentStatus     `json:"payment_status" db:"payment_status"`
	CheckoutSessionID string            `json:"-" db:"checkout_session_id"`
	ClientSecret      string            `json:"-" db:"client_secret"`
	HandledBy         []StaffAssignment `json:"handled_by" db:"-"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// ValidEngagementStatuses defines allowed lifecycle states
var ValidEngagementStatuses = map[EngagementStatus]bool{
	EngagementStatusPending:    true,
	EngagementStatusInProgress: true,
	EngagementStatusCompleted:  true,
	EngagementStatusCanceled:   true,
}

// CreateEngagementRequest creates an engagement, implicitly creating
// the owning user when the email is unknown
type CreateEngagementRequest struct {
	Title        string         `json:"title"`
	Email        string         `json:"email"`
	Username     string         `json:"username"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	PhoneNumber  string         `json:"phone_number"`
	Type         EngagementType `json:"type"`
	Service      string         `json:"service"`
	StartDate    *time.Time     `json:"start_date"`
	EndDate      *time.Time     `json:"end_date"`
	Price        int64          `json:"price"`
	Country      string         `json:"country"`
	BusinessSize string         `json:"business_size"`
	Description  string         `json:"description"`
	Socials      *Socials       `json:"socials"`
}

// UpdateEngagementRequest is a partial update; nil fields are untouched.
// Client contact fields update the owning user record.
type UpdateEngagementRequest struct {
	Title            *string          `json:"title"`
	Email            *string          `json:"email"`
	FirstName        *string          `json:"first_name"`
	LastName         *string          `json:"last_name"`
	PhoneNumber      *string          `json:"phone_number"`
	Type             *EngagementType  `json:"type"`
	Service          *string          `json:"service"`
	StartDate        *time.Time       `json:"start_date"`
	EndDate          *time.Time       `json:"end_date"`
	Price            *int64           `json:"price"`
	Country          *string          `json:"country"`
	BusinessSize     *string          `json:"business_size"`
	Description      *string          `json:"description"`
	Status           *EngagementStatus `json:"status"`
	StatusPercentage *int             `json:"status_percentage"`
	Socials          *Socials         `json:"socials"`
}

// AssignStaffRequest adds a staff member to handled_by
type AssignStaffRequest struct {
	EngagementID string `json:"project_id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
}

// UnassignStaffRequest removes a staff member from handled_by
type UnassignStaffRequest struct {
	EngagementID string `json:"project_id"`
	UserID       string `json:"user_id"`
}
