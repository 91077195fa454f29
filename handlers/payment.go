package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentIntentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreatePaymentIntentHandler starts a card payment and hands the client
// secret back to the app. It is independent of order creation.
func (h *Handler) CreatePaymentIntentHandler(c *gin.Context) {
	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	secret, err := h.Payments.CreatePaymentIntent(c.Request.Context(), req.Amount)
	if err != nil {
		h.respondError(c, err, "Failed to create payment intent")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
