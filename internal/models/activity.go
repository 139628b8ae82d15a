package models

import (
	"time"
)

// Activity is one entry in the dashboard activity feed
type Activity struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ActivityUpdate is a partial update of an activity entry
type ActivityUpdate struct {
	Title       *string `json:"title"`
	CreatedBy   *string `json:"created_by"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}
