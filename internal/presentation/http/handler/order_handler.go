package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/golden283219/blipp-backend/internal/application/service"
	"github.com/golden283219/blipp-backend/internal/domain/event"
	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/request"
	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/response"
)

// OrderHandler handles order and order-item HTTP requests.
type OrderHandler struct {
	statusService *service.OrderStatusService
	notifier      event.Notifier
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(statusService *service.OrderStatusService, notifier event.Notifier) *OrderHandler {
	return &OrderHandler{
		statusService: statusService,
		notifier:      notifier,
	}
}

// ReplaceItems handles PUT /orders/:id/ordered-items
func (h *OrderHandler) ReplaceItems(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.ReplaceOrderedItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, events, err := h.statusService.ReplaceOrderedItems(c.Request.Context(), orderID, toItemInputs(req.Items))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.Publish(events...)
	response.OK(c, "Order items replaced", order)
}

// AppendItem handles POST /orders/:id/ordered-item
func (h *OrderHandler) AppendItem(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.OrderedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, events, err := h.statusService.AppendOrderedItem(c.Request.Context(), orderID, toItemInputs([]request.OrderedItemRequest{req})[0])
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.Publish(events...)
	response.Created(c, "Order item added", order)
}

// SetSubcategoryDone handles PATCH /orders/:id/subcategories/:subcategoryId/:isDone
func (h *OrderHandler) SetSubcategoryDone(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	subcategoryID, ok := parseUUIDParam(c, "subcategoryId")
	if !ok {
		return
	}
	done, err := strconv.ParseBool(c.Param("isDone"))
	if err != nil {
		response.BadRequest(c, "Invalid isDone")
		return
	}

	order, events, err := h.statusService.SetSubcategoryDone(c.Request.Context(), orderID, subcategoryID, done)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.Publish(events...)
	response.OK(c, "Subcategory updated", order)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.statusService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

func toItemInputs(items []request.OrderedItemRequest) []service.OrderedItemInput {
	inputs := make([]service.OrderedItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.OrderedItemInput{
			ItemID:           item.ItemID,
			Quantity:         item.Quantity,
			VariantOptionIDs: item.VariantOptionIDs,
			AllergyIDs:       item.AllergyIDs,
			SpecialRequest:   item.SpecialRequest,
		}
	}
	return inputs
}
