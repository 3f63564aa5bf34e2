package entity

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/enum"
)

// Order is the live ordering aggregate. Food and drink progress through
// their own status fields derived from the order's items; IsPaid flips to
// true exactly once when payment capture completes.
type Order struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	CustomerID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id"`
	TableID        *uuid.UUID        `gorm:"type:uuid;index" json:"table_id,omitempty"`
	CashRegisterID uuid.UUID         `gorm:"type:uuid;not null" json:"cash_register_id"`
	DeliveryType   enum.DeliveryType `gorm:"size:20;default:'RESERVATION'" json:"delivery_type"`
	FoodStatus     enum.OrderStatus  `gorm:"size:20;default:'NOT_ORDERED'" json:"food_status"`
	DrinkStatus    enum.OrderStatus  `gorm:"size:20;default:'NOT_ORDERED'" json:"drink_status"`
	PaymentMethod  enum.PaymentType  `gorm:"size:20" json:"payment_method"`
	IsPaid         bool              `gorm:"default:false" json:"is_paid"`
	Open           bool              `gorm:"default:false" json:"open"`
	ExpectedAt     *time.Time        `json:"expected_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relationships
	Customer     *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Table        *Table        `gorm:"foreignKey:TableID" json:"table,omitempty"`
	OrderedItems []OrderedItem `gorm:"foreignKey:OrderID" json:"ordered_items,omitempty"`
	PaymentInfo  *PaymentInfo  `gorm:"foreignKey:OrderID" json:"payment_info,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// IsActive reports whether the kitchen or the bar still has work on this
// order.
func (o *Order) IsActive() bool {
	return o.FoodStatus.IsActive() || o.DrinkStatus.IsActive()
}

// UUIDList is a jsonb-persisted list of identifiers.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *UUIDList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// OrderedItem is one item on an order. ProductGroupID starts as the item's
// own group and may be reassigned to the synthetic takeaway or delivery
// group when the order is routed that way.
type OrderedItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID           uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	ProductGroupID   uuid.UUID `gorm:"type:uuid;not null" json:"product_group_id"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	IsDone           bool      `gorm:"default:false" json:"is_done"`
	VariantOptionIDs UUIDList  `gorm:"type:jsonb" json:"variant_option_ids,omitempty"`
	AllergyIDs       UUIDList  `gorm:"type:jsonb" json:"allergy_ids,omitempty"`
	SpecialRequest   string    `gorm:"size:512" json:"special_request,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relationships
	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (i *OrderedItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (OrderedItem) TableName() string {
	return "ordered_items"
}
