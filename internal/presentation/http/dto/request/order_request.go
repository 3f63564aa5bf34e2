package request

import (
	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/enum"
)

// OrderedItemRequest is one requested order line.
type OrderedItemRequest struct {
	ItemID           uuid.UUID   `json:"item_id" binding:"required"`
	Quantity         int         `json:"quantity" binding:"required,gt=0"`
	VariantOptionIDs []uuid.UUID `json:"variant_option_ids"`
	AllergyIDs       []uuid.UUID `json:"allergy_ids"`
	SpecialRequest   string      `json:"special_request"`
}

// ReplaceOrderedItemsRequest replaces an order's full item set.
type ReplaceOrderedItemsRequest struct {
	Items []OrderedItemRequest `json:"items" binding:"required,min=1,dive"`
}

// InitiatePaymentRequest starts a gateway payment for an order.
type InitiatePaymentRequest struct {
	OrderID     uuid.UUID        `json:"order_id" binding:"required"`
	PaymentType enum.PaymentType `json:"payment_type" binding:"required"`
	PhoneNumber string           `json:"phone_number"`
}

// ConfirmPaymentRequest polls the gateway for the order's payment state.
type ConfirmPaymentRequest struct {
	PaymentType enum.PaymentType `json:"payment_type" binding:"required"`
}
