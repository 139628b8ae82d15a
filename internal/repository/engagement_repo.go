package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/agency-admin-api/internal/database"
	"github.com/agency-admin-api/internal/models"
)

// engagementRepo is the concrete implementation of EngagementRepository
type engagementRepo struct {
	db *database.DB
}

// NewEngagementRepo creates a new engagement repository
func NewEngagementRepo(db *database.DB) EngagementRepository {
	return &engagementRepo{db: db}
}

const engagementColumns = `id, title, client_id, type, service, start_date, end_date, price,
	country, business_size, description, socials, status, status_percentage,
	payment_status, checkout_session_id, client_secret, created_at, updated_at`

func scanEngagement(row interface{ Scan(...interface{}) error }) (*models.Engagement, error) {
	var e models.Engagement
	var socials []byte
	err := row.Scan(
		&e.ID, &e.Title, &e.ClientID, &e.Type, &e.Service, &e.StartDate, &e.EndDate,
		&e.Price, &e.Country, &e.BusinessSize, &e.Description, &socials,
		&e.Status, &e.StatusPercentage, &e.PaymentStatus,
		&e.CheckoutSessionID, &e.ClientSecret, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(socials) > 0 {
		var s models.Socials
		if err := json.Unmarshal(socials, &s); err == nil {
			e.Socials = &s
		}
	}
	return &e, nil
}

func marshalSocials(s *models.Socials) (interface{}, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Create inserts a new engagement
func (r *engagementRepo) Create(ctx context.Context, e *models.Engagement) error {
	socials, err := marshalSocials(e.Socials)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO engagements (id, title, client_id, type, service, start_date, end_date,
			price, country, business_size, description, socials, status, status_percentage,
			payment_status, checkout_session_id, client_secret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.ClientID, e.Type, e.Service, e.StartDate, e.EndDate,
		e.Price, e.Country, e.BusinessSize, e.Description, socials,
		e.Status, e.StatusPercentage, e.PaymentStatus,
		e.CheckoutSessionID, e.ClientSecret, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID retrieves an engagement with its staff assignments
func (r *engagementRepo) GetByID(ctx context.Context, id string) (*models.Engagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements WHERE id = $1`
	e, err := scanEngagement(r.db.QueryRowContext(ctx, query, id))
	if err != nil || e == nil {
		return e, err
	}
	if err := r.loadStaff(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetBySessionID resolves an engagement by its stored payment correlation id
func (r *engagementRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Engagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements WHERE checkout_session_id = $1`
	e, err := scanEngagement(r.db.QueryRowContext(ctx, query, sessionID))
	if err != nil || e == nil {
		return e, err
	}
	if err := r.loadStaff(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List retrieves engagements, optionally filtered by type
func (r *engagementRepo) List(ctx context.Context, engagementType models.EngagementType) ([]*models.Engagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements`
	args := []interface{}{}
	if engagementType != "" {
		query += ` WHERE type = $1`
		args = append(args, engagementType)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryEngagements(ctx, query, args...)
}

// Update persists all mutable engagement fields
func (r *engagementRepo) Update(ctx context.Context, e *models.Engagement) error {
	socials, err := marshalSocials(e.Socials)
	if err != nil {
		return err
	}

	query := `
		UPDATE engagements SET
			title = $2, type = $3, service = $4, start_date = $5, end_date = $6,
			price = $7, country = $8, business_size = $9, description = $10,
			socials = $11, status = $12, status_percentage = $13, payment_status = $14,
			checkout_session_id = $15, client_secret = $16, updated_at = $17
		WHERE id = $1
	`
	e.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Type, e.Service, e.StartDate, e.EndDate,
		e.Price, e.Country, e.BusinessSize, e.Description, socials,
		e.Status, e.StatusPercentage, e.PaymentStatus,
		e.CheckoutSessionID, e.ClientSecret, e.UpdatedAt,
	)
	return err
}

// Delete removes an engagement; staff rows cascade
func (r *engagementRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM engagements WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// AddStaff appends an assignment using the store's conflict handling so
// concurrent assigns cannot produce duplicates. Returns false when the
// user is already assigned.
func (r *engagementRepo) AddStaff(ctx context.Context, engagementID string, a models.StaffAssignment) (bool, error) {
	query := `
		INSERT INTO engagement_staff (engagement_id, user_id, user_name, assigned_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (engagement_id, user_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, engagementID, a.UserID, a.UserName, a.AssignedDate)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RemoveStaff deletes an assignment; returns false when it was absent
func (r *engagementRepo) RemoveStaff(ctx context.Context, engagementID, userID string) (bool, error) {
	query := `DELETE FROM engagement_staff WHERE engagement_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, engagementID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListByClient retrieves engagements owned by the user
func (r *engagementRepo) ListByClient(ctx context.Context, userID string) ([]*models.Engagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements WHERE client_id = $1 ORDER BY created_at DESC`
	return r.queryEngagements(ctx, query, userID)
}

// ListByStaff retrieves engagements the user is assigned to
func (r *engagementRepo) ListByStaff(ctx context.Context, userID string) ([]*models.Engagement, error) {
	query := `
		SELECT ` + engagementColumns + ` FROM engagements e
		WHERE EXISTS (
			SELECT 1 FROM engagement_staff s
			WHERE s.engagement_id = e.id AND s.user_id = $1
		)
		ORDER BY created_at DESC
	`
	return r.queryEngagements(ctx, query, userID)
}

// SetCheckoutSession stores the correlation ids for a new payment attempt
// and resets payment_status to pending
func (r *engagementRepo) SetCheckoutSession(ctx context.Context, id, sessionID, clientSecret string) error {
	query := `
		UPDATE engagements SET
			checkout_session_id = $2, client_secret = $3,
			payment_status = $4, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, sessionID, clientSecret, models.PaymentStatusPending)
	return err
}

// UpdatePaymentBySession applies a payment transition to the engagement
// matching the stored correlation id. Returns false when no row matches;
// replays of the same event write the same values and converge. A negative
// statusPercentage leaves the stored value unchanged.
func (r *engagementRepo) UpdatePaymentBySession(ctx context.Context, sessionID string, payment models.PaymentStatus, status models.EngagementStatus, statusPercentage int) (bool, error) {
	query := `
		UPDATE engagements SET
			payment_status = $2, status = $3,
			status_percentage = CASE WHEN $4 >= 0 THEN $4 ELSE status_percentage END,
			updated_at = now()
		WHERE checkout_session_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, sessionID, payment, status, statusPercentage)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Count returns the total number of engagements
func (r *engagementRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM engagements`).Scan(&count)
	return count, err
}

// CountByStatus returns the per-status breakdown
func (r *engagementRepo) CountByStatus(ctx context.Context) (*models.EngagementBreakdown, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'canceled')
		FROM engagements
	`
	var b models.EngagementBreakdown
	err := r.db.QueryRowContext(ctx, query).Scan(
		&b.Total, &b.Completed, &b.InProgress, &b.Pending, &b.Canceled,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// PaidRevenueTotal sums price across paid engagements
func (r *engagementRepo) PaidRevenueTotal(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(price), 0) FROM engagements WHERE payment_status = 'paid'`
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	return total, err
}

// MonthlyRevenue returns a 12-element vector of paid revenue grouped by the
// month of end_date for the given year
func (r *engagementRepo) MonthlyRevenue(ctx context.Context, year int) ([]int64, error) {
	query := `
		SELECT EXTRACT(MONTH FROM end_date)::int, COALESCE(SUM(price), 0)
		FROM engagements
		WHERE payment_status = 'paid'
		  AND status IN ('in_progress', 'completed')
		  AND end_date IS NOT NULL
		  AND EXTRACT(YEAR FROM end_date)::int = $1
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	monthly := make([]int64, 12)
	for rows.Next() {
		var month int
		var total int64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, err
		}
		if month >= 1 && month <= 12 {
			monthly[month-1] = total
		}
	}
	return monthly, rows.Err()
}

// ClientRevenue returns the per-client payment rollup for the year,
// highest total first
func (r *engagementRepo) ClientRevenue(ctx context.Context, year int) ([]models.ClientRevenue, error) {
	query := `
		SELECT u.id, u.email, u.username, COUNT(e.id), COALESCE(SUM(e.price), 0)
		FROM engagements e
		JOIN users u ON u.id = e.client_id
		WHERE e.payment_status = 'paid'
		  AND e.status IN ('in_progress', 'completed')
		  AND e.end_date IS NOT NULL
		  AND EXTRACT(YEAR FROM e.end_date)::int = $1
		GROUP BY u.id, u.email, u.username
		ORDER BY 5 DESC
	`
	rows, err := r.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ClientRevenue
	for rows.Next() {
		var c models.ClientRevenue
		if err := rows.Scan(&c.ClientID, &c.Email, &c.Username, &c.NumberOfProjects, &c.TotalAmount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Latest returns the newest engagements for the activity feed
func (r *engagementRepo) Latest(ctx context.Context, limit int) ([]*models.Engagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements ORDER BY created_at DESC LIMIT $1`
	return r.queryEngagements(ctx, query, limit)
}

func (r *engagementRepo) queryEngagements(ctx context.Context, query string, args ...interface{}) ([]*models.Engagement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Engagement
	for rows.Next() {
		e, err := scanEngagement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *engagementRepo) loadStaff(ctx context.Context, e *models.Engagement) error {
	query := `
		SELECT user_id, user_name, assigned_date
		FROM engagement_staff
		WHERE engagement_id = $1
		ORDER BY assigned_date
	`
	rows, err := r.db.QueryContext(ctx, query, e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	e.HandledBy = []models.StaffAssignment{}
	for rows.Next() {
		var a models.StaffAssignment
		if err := rows.Scan(&a.UserID, &a.UserName, &a.AssignedDate); err != nil {
			return err
		}
		e.HandledBy = append(e.HandledBy, a)
	}
	return rows.Err()
}
