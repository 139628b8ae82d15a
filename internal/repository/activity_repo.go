package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agency-admin-api/internal/database"
	"github.com/agency-admin-api/internal/models"
)

// activityRepo is the concrete implementation of ActivityRepository
type activityRepo struct {
	db *database.DB
}

// NewActivityRepo creates a new activity repository
func NewActivityRepo(db *database.DB) ActivityRepository {
	return &activityRepo{db: db}
}

// Create inserts a new activity entry
func (r *activityRepo) Create(ctx context.Context, a *models.Activity) error {
	query := `
		INSERT INTO activities (id, title, created_by, description, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	a.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Title, a.CreatedBy, a.Description, a.Category, a.CreatedAt,
	)
	return err
}

// GetByID retrieves an activity by ID
func (r *activityRepo) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	query := `SELECT id, title, created_by, description, category, created_at
		FROM activities WHERE id = $1`
	var a models.Activity
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.CreatedBy, &a.Description, &a.Category, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List retrieves all activities, newest first
func (r *activityRepo) List(ctx context.Context) ([]*models.Activity, error) {
	query := `SELECT id, title, created_by, description, category, created_at
		FROM activities ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.CreatedBy, &a.Description,
			&a.Category, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Update persists activity fields
func (r *activityRepo) Update(ctx context.Context, a *models.Activity) error {
	query := `UPDATE activities SET title = $2, created_by = $3, description = $4, category = $5
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Title, a.CreatedBy, a.Description, a.Category)
	return err
}

// Delete removes an activity entry
func (r *activityRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
