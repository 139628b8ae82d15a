package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/validation"
)

// ArticleService manages content articles
type ArticleService interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
	Update(ctx context.Context, id string, upd *models.ArticleUpdate) (*models.Article, error)
	Delete(ctx context.Context, id string) error
}

type articleService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewArticleService creates a new article service
func NewArticleService(repos *repository.Repositories, log zerolog.Logger) ArticleService {
	return &articleService{
		repos: repos,
		log:   log.With().Str("service", "article").Logger(),
	}
}

// Create publishes a new article record, defaulting to draft
func (s *articleService) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	if a.Title == "" || a.Body == "" {
		return nil, apierr.BadRequest("title and body are required")
	}
	if a.Status == "" {
		a.Status = "draft"
	}
	if !models.ValidArticleStatuses[a.Status] {
		return nil, apierr.BadRequest("unknown status: " + a.Status)
	}

	a.ID = uuid.NewString()
	if err := s.repos.Article.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", a.ID).Str("status", a.Status).Msg("Article created")
	return a, nil
}

// Get retrieves an article by id
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	if !validation.IsUUID(id) {
		return nil, apierr.NotFound("article not found")
	}
	a, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apierr.NotFound("article not found")
	}
	return a, nil
}

// List returns all articles, newest first
func (s *articleService) List(ctx context.Context) ([]*models.Article, error) {
	return s.repos.Article.List(ctx)
}

// Update applies a partial update to an article
func (s *articleService) Update(ctx context.Context, id string, upd *models.ArticleUpdate) (*models.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		if !models.ValidArticleStatuses[*upd.Status] {
			return nil, apierr.BadRequest("unknown status: " + *upd.Status)
		}
		a.Status = *upd.Status
	}
	if upd.Image != nil {
		a.Image = *upd.Image
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Heading != nil {
		a.Heading = *upd.Heading
	}
	if upd.Body != nil {
		a.Body = *upd.Body
	}
	if upd.Category != nil {
		a.Category = *upd.Category
	}
	if upd.Tags != nil {
		a.Tags = *upd.Tags
	}
	if upd.Keywords != nil {
		a.Keywords = *upd.Keywords
	}
	if upd.TopArticle != nil {
		a.TopArticle = *upd.TopArticle
	}

	if err := s.repos.Article.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an article
func (s *articleService) Delete(ctx context.Context, id string) error {
	if !validation.IsUUID(id) {
		return apierr.NotFound("article not found")
	}
	ok, err := s.repos.Article.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("article not found")
	}
	return nil
}
