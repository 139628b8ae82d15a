package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/service"
)

// EstimateHandler handles estimate-request endpoints
type EstimateHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEstimateHandler creates a new EstimateHandler
func NewEstimateHandler(services *service.Services, log zerolog.Logger) *EstimateHandler {
	return &EstimateHandler{
		services: services,
		log:      log.With().Str("handler", "estimate").Logger(),
	}
}

// Create handles POST /api/estimates (public landing-page form)
func (h *EstimateHandler) Create(c *gin.Context) {
	var est models.Estimate
	if err := c.ShouldBindJSON(&est); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	created, err := h.services.Estimate.Create(c.Request.Context(), &est)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/estimates
func (h *EstimateHandler) List(c *gin.Context) {
	listing, err := h.services.Estimate.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// Get handles GET /api/estimates/:id
func (h *EstimateHandler) Get(c *gin.Context) {
	est, err := h.services.Estimate.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// Update handles PATCH /api/estimates/:id
func (h *EstimateHandler) Update(c *gin.Context) {
	var upd models.EstimateUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	est, err := h.services.Estimate.Update(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, est)
}
