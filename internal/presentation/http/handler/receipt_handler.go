package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/golden283219/blipp-backend/internal/application/service"
	"github.com/golden283219/blipp-backend/internal/domain/event"
	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/request"
	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/response"
	"github.com/golden283219/blipp-backend/pkg/pagination"
)

// ReceiptHandler handles fiscal receipt HTTP requests.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	paymentService *service.PaymentService
	notifier       event.Notifier
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, paymentService *service.PaymentService, notifier event.Notifier) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		paymentService: paymentService,
		notifier:       notifier,
	}
}

// Get handles GET /receipts/:id
func (h *ReceiptHandler) Get(c *gin.Context) {
	receiptID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved", receipt)
}

// List handles GET /restaurants/:id/receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	restaurantID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	receipts, total, err := h.receiptService.ListReceipts(c.Request.Context(), restaurantID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(receipts, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Receipts retrieved", result)
}

// Return handles PATCH /receipts/:id/return
func (h *ReceiptHandler) Return(c *gin.Context) {
	receiptID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	clone, events, err := h.paymentService.ReverseReceipt(c.Request.Context(), receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if clone == nil {
		// Already returned, a return receipt, or the gateway declined.
		response.OK(c, "Receipt not reversed", nil)
		return
	}

	h.notifier.Publish(events...)
	response.OK(c, "Receipt reversed", clone)
}

// Email handles PATCH /receipts/:id/email
func (h *ReceiptHandler) Email(c *gin.Context) {
	receiptID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.EmailReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.receiptService.EmailReceiptCopy(c.Request.Context(), receiptID, req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt copy sent", gin.H{"receipt_id": receiptID})
}
