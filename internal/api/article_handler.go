package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/service"
)

// ArticleHandler handles content article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var a models.Article
	if err := c.ShouldBindJSON(&a); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	created, err := h.services.Article.Create(c.Request.Context(), &a)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/articles (public)
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.services.Article.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/articles/:id (public)
func (h *ArticleHandler) Get(c *gin.Context) {
	a, err := h.services.Article.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Update handles PATCH /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var upd models.ArticleUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	a, err := h.services.Article.Update(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}
