package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agency-admin-api/internal/database"
	"github.com/agency-admin-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, first_name, last_name, username, email, phone_number, password_hash,
	gender, address, country, role, zoom_username, skype_username, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.PhoneNumber,
		&u.PasswordHash, &u.Gender, &u.Address, &u.Country, &u.Role,
		&u.ZoomUsername, &u.SkypeUsername, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, username, email, phone_number,
			password_hash, gender, address, country, role, zoom_username, skype_username,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Username, user.Email, user.PhoneNumber,
		user.PasswordHash, user.Gender, user.Address, user.Country, user.Role,
		user.ZoomUsername, user.SkypeUsername, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

// GetByID retrieves an active user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND NOT deleted`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves an active user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND NOT deleted`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// List retrieves all active users
func (r *userRepo) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE NOT deleted ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update persists all mutable user fields
func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			first_name = $2, last_name = $3, username = $4, email = $5,
			phone_number = $6, password_hash = $7, gender = $8, address = $9,
			country = $10, role = $11, zoom_username = $12, skype_username = $13,
			updated_at = $14
		WHERE id = $1 AND NOT deleted
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Username, user.Email,
		user.PhoneNumber, user.PasswordHash, user.Gender, user.Address,
		user.Country, user.Role, user.ZoomUsername, user.SkypeUsername,
		user.UpdatedAt,
	)
	return err
}

// SoftDelete marks a user deleted; the row is kept
func (r *userRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `UPDATE users SET deleted = TRUE, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND NOT deleted`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Count returns the number of active users
func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE NOT deleted`).Scan(&count)
	return count, err
}
