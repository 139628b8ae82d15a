package models

import (
	"time"
)

// TimelineComment is an append-only note on an engagement.
// Comments are created and listed, never edited.
type TimelineComment struct {
	ID           string    `json:"id" db:"id"`
	EngagementID string    `json:"project" db:"engagement_id"`
	TimeLabel    string    `json:"time" db:"time_label"`
	Title        string    `json:"title" db:"title"`
	CreatedBy    string    `json:"created_by" db:"created_by"`
	Description  string    `json:"description,omitempty" db:"description"`
	File         string    `json:"file,omitempty" db:"file"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
