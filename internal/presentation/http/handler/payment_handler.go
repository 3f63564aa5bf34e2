package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/golden283219/blipp-backend/internal/application/service"
	"github.com/golden283219/blipp-backend/internal/domain/event"
	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/request"
	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment HTTP requests.
type PaymentHandler struct {
	paymentService *service.PaymentService
	notifier       event.Notifier
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService, notifier event.Notifier) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		notifier:       notifier,
	}
}

// Initiate handles PATCH /orders/payment
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req request.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	initiation, err := h.paymentService.InitiatePayment(c.Request.Context(), req.OrderID, req.PaymentType, req.PhoneNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	if initiation == nil {
		response.ErrorWithCode(c, 502, "Payment gateway unavailable")
		return
	}

	response.OK(c, "Payment created", initiation)
}

// ConfirmStatus handles PATCH /orders/:id/payment-status
func (h *PaymentHandler) ConfirmStatus(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	confirmation, events, err := h.paymentService.ConfirmPayment(c.Request.Context(), orderID, req.PaymentType)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.Publish(events...)
	response.OK(c, "Payment status", confirmation)
}

// Callback handles POST /orders/payment-callback. The gateway's webhook is
// acknowledged and recorded; confirmation stays poll-driven.
func (h *PaymentHandler) Callback(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Unreadable payload")
		return
	}

	h.paymentService.HandleCallback(json.RawMessage(payload))
	response.OK(c, "Callback received", nil)
}
