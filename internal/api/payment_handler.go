package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/service"
)

// PaymentHandler handles the payment bridge endpoints
type PaymentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(services *service.Services, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		services: services,
		log:      log.With().Str("handler", "payment").Logger(),
	}
}

// Checkout handles POST /api/stripe/checkout
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req struct {
		ProjectID string `json:"project_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apierr.BadRequest("invalid request body"))
		return
	}

	resp, err := h.services.Payment.CreateCheckoutSession(c.Request.Context(), req.ProjectID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook handles POST /api/stripe/webhook. The raw body is needed for
// signature verification, so it is read before any JSON decoding.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, h.log, apierr.BadRequest("unreadable payload"))
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.services.Payment.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Complete handles GET /api/stripe/complete, the checkout success
// redirect. The processor is consulted before any state changes.
func (h *PaymentHandler) Complete(c *gin.Context) {
	sessionID := c.Query("session_id")
	if err := h.services.Payment.CompleteCheckout(c.Request.Context(), sessionID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment completed"})
}

// Cancel handles GET /api/stripe/cancel, the checkout cancel redirect
func (h *PaymentHandler) Cancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "payment canceled"})
}

// Status handles GET /api/stripe/payment-status/:projectId
func (h *PaymentHandler) Status(c *gin.Context) {
	resp, err := h.services.Payment.GetStatus(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
