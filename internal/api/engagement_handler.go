package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/service"
)

// EngagementHandler handles project and marketing engagement endpoints
type EngagementHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(services *service.Services, log zerolog.Logger) *EngagementHandler {
	return &EngagementHandler{
		services: services,
		log:      log.With().Str("handler", "engagement").Logger(),
	}
}

// Create handles POST /api/projects
func (h *EngagementHandler) Create(c *gin.Context) {
	var req models.CreateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	e, err := h.services.Engagement.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// List handles GET /api/projects
func (h *EngagementHandler) List(c *gin.Context) {
	engagements, err := h.services.Engagement.List(c.Request.Context(), "")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, engagements)
}

// ListMarketing handles GET /api/marketing
func (h *EngagementHandler) ListMarketing(c *gin.Context) {
	engagements, err := h.services.Engagement.List(c.Request.Context(), models.EngagementTypeMarketing)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, engagements)
}

// Get handles GET /api/projects/:id
func (h *EngagementHandler) Get(c *gin.Context) {
	e, err := h.services.Engagement.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// Update handles PATCH /api/projects/:id
func (h *EngagementHandler) Update(c *gin.Context) {
	var upd models.UpdateEngagementRequest
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	e, err := h.services.Engagement.Update(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /api/projects/:id
func (h *EngagementHandler) Delete(c *gin.Context) {
	if err := h.services.Engagement.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// AssignStaff handles POST /api/projects/assign-staff
func (h *EngagementHandler) AssignStaff(c *gin.Context) {
	var req models.AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	e, err := h.services.Engagement.AssignStaff(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// UnassignStaff handles POST /api/projects/unassign-staff
func (h *EngagementHandler) UnassignStaff(c *gin.Context) {
	var req models.UnassignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	e, err := h.services.Engagement.UnassignStaff(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// ListByParticipant handles GET /api/projects/participant/:userId
func (h *EngagementHandler) ListByParticipant(c *gin.Context) {
	engagements, err := h.services.Engagement.ListByParticipant(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, engagements)
}

// Convert handles POST /api/estimates/:id/convert
func (h *EngagementHandler) Convert(c *gin.Context) {
	e, err := h.services.Engagement.ConvertFromEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
