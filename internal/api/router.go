package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/config"
	"github.com/agency-admin-api/internal/service"
)

// NewRouter creates and configures the Gin router. Routes split into a
// public group (signup, login, landing-page surfaces, processor
// callbacks) and a protected group behind the auth middleware; handlers
// never enforce authorization themselves.
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware())

	// Handlers
	userHandler := NewUserHandler(services, cfg, log)
	engagementHandler := NewEngagementHandler(services, log)
	estimateHandler := NewEstimateHandler(services, log)
	paymentHandler := NewPaymentHandler(services, log)
	analyticsHandler := NewAnalyticsHandler(services, log)
	articleHandler := NewArticleHandler(services, log)
	timelineHandler := NewTimelineHandler(services, log)
	activityHandler := NewActivityHandler(services, log)

	// Health check and metrics
	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	{
		public.POST("/users", userHandler.Signup)
		public.POST("/users/login", userHandler.Login)
		public.GET("/users/logout", userHandler.Logout)

		public.POST("/estimates", estimateHandler.Create)

		public.GET("/articles", articleHandler.List)
		public.GET("/articles/:id", articleHandler.Get)

		public.POST("/stripe/webhook", paymentHandler.Webhook)
		public.GET("/stripe/complete", paymentHandler.Complete)
		public.GET("/stripe/cancel", paymentHandler.Cancel)

		public.POST("/analytics/visits/landing", analyticsHandler.TrackLanding)
		public.POST("/analytics/visits/user", analyticsHandler.TrackUser)
	}

	protected := router.Group("/api")
	protected.Use(authMiddleware(services, cfg, log))
	{
		// Users
		protected.GET("/users", userHandler.List)
		protected.GET("/users/:id", userHandler.Get)
		protected.PATCH("/users/:id", userHandler.Update)
		protected.DELETE("/users/:id", userHandler.Delete)

		// Engagements
		protected.POST("/projects", engagementHandler.Create)
		protected.GET("/projects", engagementHandler.List)
		protected.GET("/projects/:id", engagementHandler.Get)
		protected.PATCH("/projects/:id", engagementHandler.Update)
		protected.DELETE("/projects/:id", engagementHandler.Delete)
		protected.POST("/projects/assign-staff", engagementHandler.AssignStaff)
		protected.POST("/projects/unassign-staff", engagementHandler.UnassignStaff)
		protected.GET("/projects/participant/:userId", engagementHandler.ListByParticipant)
		protected.GET("/marketing", engagementHandler.ListMarketing)

		// Estimates
		protected.GET("/estimates", estimateHandler.List)
		protected.GET("/estimates/:id", estimateHandler.Get)
		protected.PATCH("/estimates/:id", estimateHandler.Update)
		protected.POST("/estimates/:id/convert", engagementHandler.Convert)

		// Payments
		protected.POST("/stripe/checkout", paymentHandler.Checkout)
		protected.GET("/stripe/payment-status/:projectId", paymentHandler.Status)

		// Dashboard and analytics
		protected.GET("/dashboard", analyticsHandler.Dashboard)
		protected.GET("/revenue/:year", analyticsHandler.Revenue)
		protected.GET("/project-analytics", analyticsHandler.Breakdown)
		protected.GET("/estimate-summary", analyticsHandler.EstimateSummary)
		protected.GET("/latest", analyticsHandler.Latest)
		protected.GET("/analytics/visits/landing", analyticsHandler.LandingDetails)
		protected.GET("/analytics/visits/landing/daily", analyticsHandler.DailyLanding)
		protected.GET("/analytics/visits/user", analyticsHandler.UserDetails)
		protected.GET("/analytics/visits/user/monthly", analyticsHandler.MonthlyUsers)

		// Content
		protected.POST("/articles", articleHandler.Create)
		protected.PATCH("/articles/:id", articleHandler.Update)
		protected.DELETE("/articles/:id", articleHandler.Delete)

		// Timeline
		protected.POST("/timeline", timelineHandler.Create)
		protected.GET("/timeline/:projectId", timelineHandler.ListByEngagement)

		// Activities
		protected.POST("/activities", activityHandler.Create)
		protected.GET("/activities", activityHandler.List)
		protected.GET("/activities/:id", activityHandler.Get)
		protected.PATCH("/activities/:id", activityHandler.Update)
		protected.DELETE("/activities/:id", activityHandler.Delete)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "agency-admin-api",
	})
}
