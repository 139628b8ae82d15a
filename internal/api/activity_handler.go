package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/service"
)

// ActivityHandler handles activity-feed endpoints
type ActivityHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(services *service.Services, log zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		services: services,
		log:      log.With().Str("handler", "activity").Logger(),
	}
}

// Create handles POST /api/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	var a models.Activity
	if err := c.ShouldBindJSON(&a); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	created, err := h.services.Activity.Create(c.Request.Context(), &a)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/activities
func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.services.Activity.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// Get handles GET /api/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	a, err := h.services.Activity.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Update handles PATCH /api/activities/:id
func (h *ActivityHandler) Update(c *gin.Context) {
	var upd models.ActivityUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	a, err := h.services.Activity.Update(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /api/activities/:id
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.services.Activity.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}
