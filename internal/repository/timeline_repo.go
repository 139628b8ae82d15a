package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agency-admin-api/internal/database"
	"github.com/agency-admin-api/internal/models"
)

// timelineRepo is the concrete implementation of TimelineRepository
type timelineRepo struct {
	db *database.DB
}

// NewTimelineRepo creates a new timeline repository
func NewTimelineRepo(db *database.DB) TimelineRepository {
	return &timelineRepo{db: db}
}

// Create appends a comment to an engagement's timeline
func (r *timelineRepo) Create(ctx context.Context, c *models.TimelineComment) error {
	query := `
		INSERT INTO timeline_comments (id, engagement_id, time_label, title, created_by,
			description, file, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	c.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.EngagementID, c.TimeLabel, c.Title, c.CreatedBy,
		nullable(c.Description), nullable(c.File), c.CreatedAt,
	)
	return err
}

// ListByEngagement retrieves an engagement's comments, newest first
func (r *timelineRepo) ListByEngagement(ctx context.Context, engagementID string) ([]*models.TimelineComment, error) {
	query := `
		SELECT id, engagement_id, time_label, title, created_by, description, file, created_at
		FROM timeline_comments
		WHERE engagement_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, engagementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TimelineComment
	for rows.Next() {
		var c models.TimelineComment
		var description, file sql.NullString
		if err := rows.Scan(&c.ID, &c.EngagementID, &c.TimeLabel, &c.Title,
			&c.CreatedBy, &description, &file, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Description = description.String
		c.File = file.String
		out = append(out, &c)
	}
	return out, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
