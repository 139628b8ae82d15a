package models

import (
	"time"
)

// Article represents a content entry (blog post)
type Article struct {
	ID         string    `json:"id" db:"id"`
	Image      string    `json:"image,omitempty" db:"image"`
	Title      string    `json:"title" db:"title"`
	Heading    string    `json:"heading" db:"heading"`
	Body       string    `json:"body" db:"body"`
	Category   string    `json:"category,omitempty" db:"category"`
	Tags       string    `json:"tags,omitempty" db:"tags"`
	Keywords   string    `json:"keywords,omitempty" db:"keywords"`
	Status     string    `json:"status" db:"status"`
	TopArticle bool      `json:"top_article" db:"top_article"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ValidArticleStatuses defines allowed article statuses
var ValidArticleStatuses = map[string]bool{
	"draft":     true,
	"published": true,
}

// ArticleUpdate is a partial update of an article
type ArticleUpdate struct {
	Image      *string `json:"image"`
	Title      *string `json:"title"`
	Heading    *string `json:"heading"`
	Body       *string `json:"body"`
	Category   *string `json:"category"`
	Tags       *string `json:"tags"`
	Keywords   *string `json:"keywords"`
	Status     *string `json:"status"`
	TopArticle *bool   `json:"top_article"`
}
