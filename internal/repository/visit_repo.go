package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/agency-admin-api/internal/database"
	"github.com/agency-admin-api/internal/models"
)

// visitRepo is the concrete implementation of VisitRepository
type visitRepo struct {
	db *database.DB
}

// NewVisitRepo creates a new visit repository
func NewVisitRepo(db *database.DB) VisitRepository {
	return &visitRepo{db: db}
}

// CreateLanding inserts one landing-page visit record
func (r *visitRepo) CreateLanding(ctx context.Context, v *models.LandingVisit) error {
	query := `INSERT INTO landing_visits (id, ip_address, user_agent, visited_at)
		VALUES ($1, $2, $3, $4)`
	v.VisitedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, v.ID, v.IPAddress, v.UserAgent, v.VisitedAt)
	return err
}

// CreateUser inserts one authenticated-area visit record
func (r *visitRepo) CreateUser(ctx context.Context, v *models.UserVisit) error {
	query := `INSERT INTO user_visits (id, user_id, area, ip_address, user_agent, visited_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	v.VisitedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, v.ID, v.UserID, v.Area, v.IPAddress, v.UserAgent, v.VisitedAt)
	return err
}

// DailyUniqueIPs counts unique landing-page visitor IPs per day
func (r *visitRepo) DailyUniqueIPs(ctx context.Context, start, end time.Time) ([]models.DailyVisitCount, error) {
	query := `
		SELECT to_char(visited_at, 'YYYY-MM-DD') AS day, COUNT(DISTINCT ip_address)
		FROM landing_visits
		WHERE visited_at >= $1 AND visited_at <= $2
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DailyVisitCount
	for rows.Next() {
		var c models.DailyVisitCount
		if err := rows.Scan(&c.Date, &c.UniqueVisitors); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// MonthlyUniqueUsers counts unique authenticated visitors per month
func (r *visitRepo) MonthlyUniqueUsers(ctx context.Context, start, end time.Time) ([]models.MonthlyUserCount, error) {
	query := `
		SELECT to_char(visited_at, 'YYYY-MM') AS month, COUNT(DISTINCT user_id)
		FROM user_visits
		WHERE visited_at >= $1 AND visited_at <= $2
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MonthlyUserCount
	for rows.Next() {
		var c models.MonthlyUserCount
		if err := rows.Scan(&c.Month, &c.UniqueUsers); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListLanding retrieves a page of landing visits in the range, newest first
func (r *visitRepo) ListLanding(ctx context.Context, f models.VisitFilter) ([]*models.LandingVisit, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM landing_visits WHERE visited_at >= $1 AND visited_at <= $2`
	if err := r.db.QueryRowContext(ctx, countQuery, f.Start, f.End).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, ip_address, user_agent, visited_at
		FROM landing_visits
		WHERE visited_at >= $1 AND visited_at <= $2
		ORDER BY visited_at DESC
		LIMIT $3 OFFSET $4
	`
	offset := (f.Page - 1) * f.Limit
	rows, err := r.db.QueryContext(ctx, query, f.Start, f.End, f.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.LandingVisit
	for rows.Next() {
		var v models.LandingVisit
		if err := rows.Scan(&v.ID, &v.IPAddress, &v.UserAgent, &v.VisitedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &v)
	}
	return out, total, rows.Err()
}

// ListUser retrieves a page of user visits, optionally filtered by user and area
func (r *visitRepo) ListUser(ctx context.Context, f models.VisitFilter) ([]*models.UserVisit, int, error) {
	where := `visited_at >= $1 AND visited_at <= $2`
	args := []interface{}{f.Start, f.End}
	if f.UserID != "" {
		args = append(args, f.UserID)
		where += ` AND user_id = $3`
	}
	if f.Area != "" {
		args = append(args, f.Area)
		if f.UserID != "" {
			where += ` AND area = $4`
		} else {
			where += ` AND area = $3`
		}
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_visits WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, area, ip_address, user_agent, visited_at
		FROM user_visits WHERE ` + where + `
		ORDER BY visited_at DESC`

	limitArgs := append(args, f.Limit, (f.Page-1)*f.Limit)
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, limitArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.UserVisit
	for rows.Next() {
		var v models.UserVisit
		if err := rows.Scan(&v.ID, &v.UserID, &v.Area, &v.IPAddress, &v.UserAgent, &v.VisitedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &v)
	}
	return out, total, rows.Err()
}
