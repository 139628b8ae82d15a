package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/service"
)

// TimelineHandler handles engagement timeline endpoints
type TimelineHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTimelineHandler creates a new TimelineHandler
func NewTimelineHandler(services *service.Services, log zerolog.Logger) *TimelineHandler {
	return &TimelineHandler{
		services: services,
		log:      log.With().Str("handler", "timeline").Logger(),
	}
}

// Create handles POST /api/timeline
func (h *TimelineHandler) Create(c *gin.Context) {
	var comment models.TimelineComment
	if err := c.ShouldBindJSON(&comment); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	created, err := h.services.Timeline.Create(c.Request.Context(), &comment)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListByEngagement handles GET /api/timeline/:projectId
func (h *TimelineHandler) ListByEngagement(c *gin.Context) {
	comments, err := h.services.Timeline.ListByEngagement(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
