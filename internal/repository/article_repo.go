package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agency-admin-api/internal/database"
	"github.com/agency-admin-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `id, image, title, heading, body, category, tags, keywords,
	status, top_article, created_at, updated_at`

func scanArticle(row interface{ Scan(...interface{}) error }) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID, &a.Image, &a.Title, &a.Heading, &a.Body, &a.Category,
		&a.Tags, &a.Keywords, &a.Status, &a.TopArticle, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, a *models.Article) error {
	query := `
		INSERT INTO articles (id, image, title, heading, body, category, tags, keywords,
			status, top_article, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Image, a.Title, a.Heading, a.Body, a.Category, a.Tags,
		a.Keywords, a.Status, a.TopArticle, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return scanArticle(r.db.QueryRowContext(ctx, query, id))
}

// List retrieves all articles, newest first
func (r *articleRepo) List(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`
	return r.queryArticles(ctx, query)
}

// Update persists all mutable article fields
func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	query := `
		UPDATE articles SET
			image = $2, title = $3, heading = $4, body = $5, category = $6,
			tags = $7, keywords = $8, status = $9, top_article = $10, updated_at = $11
		WHERE id = $1
	`
	a.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Image, a.Title, a.Heading, a.Body, a.Category,
		a.Tags, a.Keywords, a.Status, a.TopArticle, a.UpdatedAt,
	)
	return err
}

// Delete permanently removes an article
func (r *articleRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	return count, err
}

// Latest returns the newest articles for the activity feed
func (r *articleRepo) Latest(ctx context.Context, limit int) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC LIMIT $1`
	return r.queryArticles(ctx, query, limit)
}

func (r *articleRepo) queryArticles(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
