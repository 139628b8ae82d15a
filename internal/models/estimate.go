package models

import (
	"time"
)

// EstimateStatus is the pre-sales request status
type EstimateStatus string

const (
	EstimateStatusPending    EstimateStatus = "pending"
	EstimateStatusInProgress EstimateStatus = "in_progress"
	EstimateStatusCompleted  EstimateStatus = "completed"
	EstimateStatusClosed     EstimateStatus = "closed"
)

// ValidEstimateStatuses defines allowed estimate states
var ValidEstimateStatuses = map[EstimateStatus]bool{
	EstimateStatusPending:    true,
	EstimateStatusInProgress: true,
	EstimateStatusCompleted:  true,
	EstimateStatusClosed:     true,
}

// EstimateRequestDetails is the nested request block of an estimate
type EstimateRequestDetails struct {
	Title             string `json:"title"`
	Service           string `json:"service"`
	ProposedStartDate string `json:"proposed_start_date"`
	ProposedEndDate   string `json:"proposed_end_date"`
	BusinessSize      string `json:"business_size"`
	Budget            int64  `json:"budget"`
	Country           string `json:"country"`
	RequestID         string `json:"request_id"`
}

// EstimateClient identifies the prospective customer
type EstimateClient struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Estimate is a prospective customer's request for work
type Estimate struct {
	ID                 string                 `json:"id"`
	RequestDetails     EstimateRequestDetails `json:"request_details"`
	Client             EstimateClient         `json:"client"`
	Description        string                 `json:"description"`
	AdditionalServices []string               `json:"additional_services"`
	Status             EstimateStatus         `json:"status"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// EstimateUpdate is a partial update of an estimate
type EstimateUpdate struct {
	Description        *string         `json:"description"`
	AdditionalServices []string        `json:"additional_services"`
	Status             *EstimateStatus `json:"status"`
}

// EstimateSummary is the status rollup returned with the listing
type EstimateSummary struct {
	TotalRequests int `json:"total_requests"`
	Completed     int `json:"completed"`
	Closed        int `json:"closed"`
	InProgress    int `json:"in_progress"`
	Pending       int `json:"pending"`
}

// EstimateListing is the full listing response: rollup plus rows
type EstimateListing struct {
	Summary  EstimateSummary    `json:"summary"`
	Requests []EstimateListItem `json:"requests"`
}

// EstimateListItem is one row of the estimate listing
type EstimateListItem struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	Date             time.Time      `json:"date"`
	ServiceRequested string         `json:"service_requested"`
	Status           EstimateStatus `json:"status"`
	RequestID        string         `json:"request_id"`
}
