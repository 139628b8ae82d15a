package models

import (
	"time"
)

// LandingVisit is one immutable landing-page visit record
type LandingVisit struct {
	ID        string    `json:"id" db:"id"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	VisitedAt time.Time `json:"visited_at" db:"visited_at"`
}

// UserVisit is one immutable authenticated-area visit record
type UserVisit struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Area      string    `json:"area" db:"area"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	VisitedAt time.Time `json:"visited_at" db:"visited_at"`
}

// DailyVisitCount is unique landing-page visitors for one day
type DailyVisitCount struct {
	Date           string `json:"date"`
	UniqueVisitors int    `json:"unique_visitors"`
}

// MonthlyUserCount is unique active users for one month
type MonthlyUserCount struct {
	Month       string `json:"month"`
	UniqueUsers int    `json:"unique_users"`
}

// VisitFilter narrows visit detail listings
type VisitFilter struct {
	Start  time.Time
	End    time.Time
	UserID string
	Area   string
	Page   int
	Limit  int
}

// Pagination describes one page of a detail listing
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}
