package handlers

import (
	"net/http"

	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePreference godoc
// @Summary      Start a premium checkout
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/payments/create-preference [post]
func (h *PaymentHandler) CreatePreference(c *gin.Context) {
	if !h.paymentService.Configured() {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "payment gateway is not configured (missing MP_ACCESS_TOKEN)"})
		return
	}

	pref, err := h.paymentService.CreatePreference(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preference_id": pref.ID,
		"init_point":    pref.InitPoint,
	})
}

// Webhook godoc
// @Summary      Payment notification webhook
// @Description  Receives asynchronous notifications from the payment gateway
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /api/v1/payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var notification services.WebhookNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.paymentService.HandleWebhook(c.Request.Context(), notification); err != nil {
		// The gateway retries on non-2xx; a missing user is terminal.
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
