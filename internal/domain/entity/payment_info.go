package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/enum"
)

// PaymentInfo records the gateway payment created for an order. At most one
// live row exists per order; initiating a new payment retires the previous
// one. Amounts are gateway minor units (integer 1/100 of the currency).
type PaymentInfo struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	PaymentID      string           `gorm:"size:512;not null" json:"payment_id"`
	PayeeReference string           `gorm:"size:255;not null" json:"payee_reference"`
	PayeeName      string           `gorm:"size:255" json:"payee_name"`
	Type           enum.PaymentType `gorm:"size:20;not null" json:"type"`
	Amount         int64            `gorm:"not null" json:"amount"`
	VatAmount      int64            `gorm:"not null" json:"vat_amount"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (p *PaymentInfo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (PaymentInfo) TableName() string {
	return "payment_infos"
}
