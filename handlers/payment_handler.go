package handlers

import (
	"io"
	"net/http"

	"grandstay/middleware"
	"grandstay/models"
	paymentSvc "grandstay/services/payment"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves checkout and payment-state endpoints.
type PaymentHandler struct {
	Payments paymentSvc.PaymentService
}

func NewPaymentHandler(payments paymentSvc.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// CreateCheckoutSession handles POST /payments/create-checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var in struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	session, err := h.Payments.CreateCheckoutSession(c.Request.Context(), in.BookingID, middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Checkout session created", session)
}

// ConfirmSession handles POST /payments/confirm: the client-side settlement
// path after the gateway redirects back.
func (h *PaymentHandler) ConfirmSession(c *gin.Context) {
	var in struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	b, err := h.Payments.ConfirmSession(c.Request.Context(), in.SessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Payment confirmed", b)
}

// Webhook handles POST /payments/webhook. The raw body is needed for
// signature verification, so no JSON binding happens here.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "failed to read webhook body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.Payments.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		// 400 tells the gateway to retry later.
		utils.JSONError(c, http.StatusBadRequest, "Webhook rejected", err.Error())
		return
	}
	c.Status(http.StatusOK)
}

// SetPaymentStatus handles PUT /bookings/:id/payment-status.
func (h *PaymentHandler) SetPaymentStatus(c *gin.Context) {
	var in struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	b, err := h.Payments.SetPaymentStatus(c.Request.Context(), c.Param("id"), in.PaymentStatus, middleware.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Payment status updated", b)
}
