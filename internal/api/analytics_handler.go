package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/service"
)

// AnalyticsHandler handles dashboard and visit-analytics endpoints
type AnalyticsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(services *service.Services, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		services: services,
		log:      log.With().Str("handler", "analytics").Logger(),
	}
}

// Dashboard handles GET /api/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	cards, err := h.services.Analytics.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Revenue handles GET /api/revenue/:year
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respondError(c, h.log, apierr.BadRequest("year must be a number"))
		return
	}

	report, err := h.services.Analytics.RevenueByYear(c.Request.Context(), year)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Breakdown handles GET /api/project-analytics
func (h *AnalyticsHandler) Breakdown(c *gin.Context) {
	breakdown, err := h.services.Analytics.EngagementBreakdown(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// EstimateSummary handles GET /api/estimate-summary
func (h *AnalyticsHandler) EstimateSummary(c *gin.Context) {
	listing, err := h.services.Estimate.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, listing.Summary)
}

// Latest handles GET /api/latest
func (h *AnalyticsHandler) Latest(c *gin.Context) {
	feed, err := h.services.Analytics.LatestFeed(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// TrackLanding handles POST /api/analytics/visits/landing (public)
func (h *AnalyticsHandler) TrackLanding(c *gin.Context) {
	err := h.services.Analytics.TrackLandingVisit(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "recorded"})
}

// TrackUser handles POST /api/analytics/visits/user (public)
func (h *AnalyticsHandler) TrackUser(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		Area   string `json:"area"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	err := h.services.Analytics.TrackUserVisit(c.Request.Context(),
		req.UserID, req.Area, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "recorded"})
}

// DailyLanding handles GET /api/analytics/visits/landing/daily
func (h *AnalyticsHandler) DailyLanding(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	counts, err := h.services.Analytics.DailyLandingVisits(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// MonthlyUsers handles GET /api/analytics/visits/user/monthly
func (h *AnalyticsHandler) MonthlyUsers(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	counts, err := h.services.Analytics.MonthlyUserVisits(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// LandingDetails handles GET /api/analytics/visits/landing
func (h *AnalyticsHandler) LandingDetails(c *gin.Context) {
	f, err := visitFilter(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	visits, page, err := h.services.Analytics.LandingVisitDetails(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visits, "pagination": page})
}

// UserDetails handles GET /api/analytics/visits/user
func (h *AnalyticsHandler) UserDetails(c *gin.Context) {
	f, err := visitFilter(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	f.UserID = c.Query("user_id")
	f.Area = c.Query("area")

	visits, page, err := h.services.Analytics.UserVisitDetails(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visits, "pagination": page})
}

// dateRange parses optional start/end query params (YYYY-MM-DD)
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if s := c.Query("start"); s != "" {
		start, err = time.Parse("2006-01-02", s)
		if err != nil {
			return start, end, apierr.BadRequest("start must be YYYY-MM-DD")
		}
	} else {
		start = time.Now().AddDate(0, -1, 0)
	}

	if s := c.Query("end"); s != "" {
		end, err = time.Parse("2006-01-02", s)
		if err != nil {
			return start, end, apierr.BadRequest("end must be YYYY-MM-DD")
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
	} else {
		end = time.Now()
	}

	return start, end, nil
}

func visitFilter(c *gin.Context) (models.VisitFilter, error) {
	var f models.VisitFilter

	start, end, err := dateRange(c)
	if err != nil {
		return f, err
	}
	f.Start = start
	f.End = end

	if s := c.Query("page"); s != "" {
		if f.Page, err = strconv.Atoi(s); err != nil {
			return f, apierr.BadRequest("page must be a number")
		}
	}
	if s := c.Query("limit"); s != "" {
		if f.Limit, err = strconv.Atoi(s); err != nil {
			return f, apierr.BadRequest("limit must be a number")
		}
	}
	return f, nil
}
