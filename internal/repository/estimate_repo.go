package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agency-admin-api/internal/database"
	"github.com/agency-admin-api/internal/models"
	"github.com/lib/pq"
)

// estimateRepo is the concrete implementation of EstimateRepository
type estimateRepo struct {
	db *database.DB
}

// NewEstimateRepo creates a new estimate repository
func NewEstimateRepo(db *database.DB) EstimateRepository {
	return &estimateRepo{db: db}
}

const estimateColumns = `id, request_title, request_service, proposed_start_date, proposed_end_date,
	business_size, budget, country, request_id, client_first_name, client_last_name,
	client_email, client_phone, description, additional_services, status, created_at, updated_at`

func scanEstimate(row interface{ Scan(...interface{}) error }) (*models.Estimate, error) {
	var e models.Estimate
	err := row.Scan(
		&e.ID,
		&e.RequestDetails.Title, &e.RequestDetails.Service,
		&e.RequestDetails.ProposedStartDate, &e.RequestDetails.ProposedEndDate,
		&e.RequestDetails.BusinessSize, &e.RequestDetails.Budget,
		&e.RequestDetails.Country, &e.RequestDetails.RequestID,
		&e.Client.FirstName, &e.Client.LastName, &e.Client.Email, &e.Client.PhoneNumber,
		&e.Description, pq.Array(&e.AdditionalServices), &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new estimate
func (r *estimateRepo) Create(ctx context.Context, e *models.Estimate) error {
	query := `
		INSERT INTO estimates (id, request_title, request_service, proposed_start_date,
			proposed_end_date, business_size, budget, country, request_id,
			client_first_name, client_last_name, client_email, client_phone,
			description, additional_services, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.RequestDetails.Title, e.RequestDetails.Service,
		e.RequestDetails.ProposedStartDate, e.RequestDetails.ProposedEndDate,
		e.RequestDetails.BusinessSize, e.RequestDetails.Budget,
		e.RequestDetails.Country, e.RequestDetails.RequestID,
		e.Client.FirstName, e.Client.LastName, e.Client.Email, e.Client.PhoneNumber,
		e.Description, pq.Array(e.AdditionalServices), e.Status,
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID retrieves an estimate by ID
func (r *estimateRepo) GetByID(ctx context.Context, id string) (*models.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = $1`
	return scanEstimate(r.db.QueryRowContext(ctx, query, id))
}

// List retrieves all estimates, newest first
func (r *estimateRepo) List(ctx context.Context) ([]*models.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates ORDER BY created_at DESC`
	return r.queryEstimates(ctx, query)
}

// Update persists mutable estimate fields
func (r *estimateRepo) Update(ctx context.Context, e *models.Estimate) error {
	query := `
		UPDATE estimates SET
			description = $2, additional_services = $3, status = $4, updated_at = $5
		WHERE id = $1
	`
	e.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Description, pq.Array(e.AdditionalServices), e.Status, e.UpdatedAt,
	)
	return err
}

// Delete removes an estimate (used on conversion)
func (r *estimateRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Count returns the total number of estimates
func (r *estimateRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM estimates`).Scan(&count)
	return count, err
}

// Latest returns the newest estimates for the activity feed
func (r *estimateRepo) Latest(ctx context.Context, limit int) ([]*models.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates ORDER BY created_at DESC LIMIT $1`
	return r.queryEstimates(ctx, query, limit)
}

func (r *estimateRepo) queryEstimates(ctx context.Context, query string, args ...interface{}) ([]*models.Estimate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Estimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
