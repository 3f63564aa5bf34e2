package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptCounter is the explicit per-(restaurant, register) serial counter.
// LastSerial holds the most recently issued fiscal serial; issuing the next
// one is an atomic increment under a row lock, so two concurrent payment
// confirmations can never read the same value.
type ReceiptCounter struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID   uuid.UUID `gorm:"type:uuid;not null;index:idx_receipt_counters_register,unique" json:"restaurant_id"`
	CashRegisterID uuid.UUID `gorm:"type:uuid;not null;index:idx_receipt_counters_register,unique" json:"cash_register_id"`
	LastSerial     int64     `gorm:"not null" json:"last_serial"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *ReceiptCounter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (ReceiptCounter) TableName() string {
	return "receipt_counters"
}
