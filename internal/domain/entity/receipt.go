package entity

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/pkg/vatmath"
)

// ReceiptVariant is a variant-option snapshot on a receipt line.
type ReceiptVariant struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ReceiptItem is one denormalized line of a fiscal receipt. Everything is
// snapshotted at payment time: names, prices, the resolved product group and
// the line's VAT bucket.
type ReceiptItem struct {
	Name             string          `json:"name"`
	Quantity         int             `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	Variants         []ReceiptVariant `json:"variants,omitempty"`
	Allergies        []string        `json:"allergies,omitempty"`
	ProductGroupID   uuid.UUID       `json:"product_group_id"`
	ProductGroupName string          `json:"product_group_name"`
	Vat              vatmath.Bucket  `json:"receipt_item_vat"`
}

// Gross returns (base price + variant surcharges) * quantity.
func (i ReceiptItem) Gross() decimal.Decimal {
	unit := i.Price
	for _, v := range i.Variants {
		unit = unit.Add(v.Price)
	}
	return unit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ReceiptItemList is the jsonb-persisted line list of a receipt.
type ReceiptItemList []ReceiptItem

func (l ReceiptItemList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *ReceiptItemList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// VatList is a jsonb-persisted set of per-rate VAT buckets.
type VatList []vatmath.Bucket

func (l VatList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *VatList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// DeliveryVatInfo is the delivery-cost VAT bucket recorded on receipts for
// DELIVERY orders. Delivery cost is not a line item, so the report engine
// accumulates it through this field instead.
type DeliveryVatInfo vatmath.Bucket

func (d DeliveryVatInfo) Value() (driver.Value, error) {
	return jsonbValue(d)
}

func (d *DeliveryVatInfo) Scan(value interface{}) error {
	return jsonbScan(d, value)
}

// Receipt is the immutable fiscal document created once per successful
// payment and once more per reversal. Item, VAT and total fields are never
// mutated after creation; only the lifecycle flags IsReturned and
// AllowedToCopy change.
type Receipt struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID   uuid.UUID `gorm:"type:uuid;not null;index:idx_receipts_register_sn,unique" json:"restaurant_id"`
	CashRegisterID uuid.UUID `gorm:"type:uuid;not null;index:idx_receipts_register_sn,unique" json:"cash_register_id"`
	SN             string    `gorm:"size:20;not null;index:idx_receipts_register_sn,unique;column:sn" json:"sn"`
	KA             string    `gorm:"size:60;not null;column:ka" json:"ka"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	CustomerID     uuid.UUID `gorm:"type:uuid" json:"customer_id"`
	Date           time.Time `gorm:"not null;index" json:"date"`

	IsReturned      bool `gorm:"default:false" json:"is_returned"`
	IsReturnReceipt bool `gorm:"default:false;index" json:"is_return_receipt"`
	AllowedToCopy   bool `gorm:"default:true" json:"allowed_to_copy"`

	// Snapshot of restaurant and customer identity at payment time.
	RestaurantName        string `gorm:"size:255" json:"restaurant_name"`
	RestaurantPhoneNumber string `gorm:"size:50" json:"restaurant_phone_number"`
	Address               string `gorm:"size:255" json:"address"`
	OrgNr                 string `gorm:"size:50" json:"orgnr"`
	CustomerName          string `gorm:"size:255" json:"customer_name"`
	DiningTableName       string `gorm:"size:100;column:table_name" json:"table_name,omitempty"`
	Currency              string `gorm:"size:10" json:"currency"`

	DeliveryType  enum.DeliveryType `gorm:"size:20" json:"delivery_type"`
	PaymentMethod enum.PaymentType  `gorm:"size:20" json:"payment_method"`

	// Card data is persisted masked only.
	CardType   string `gorm:"size:50" json:"card_type,omitempty"`
	CardNumber string `gorm:"size:30" json:"card_number,omitempty"`

	Items            ReceiptItemList  `gorm:"type:jsonb" json:"items"`
	ReceiptVat       VatList          `gorm:"type:jsonb" json:"receipt_vat"`
	DeliveryCostInfo *DeliveryVatInfo `gorm:"type:jsonb" json:"delivery_cost_info,omitempty"`

	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Rounding decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"rounding"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Receipt) TableName() string {
	return "receipts"
}

// ReturnClone builds the reversal sibling: an exact copy with a fresh
// identity, the return flag set and the copy allowance reset to its default.
// The caller assigns the new serial.
func (r Receipt) ReturnClone() Receipt {
	clone := r
	clone.ID = uuid.Nil
	clone.SN = ""
	clone.IsReturned = false
	clone.IsReturnReceipt = true
	clone.AllowedToCopy = true
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}
	return clone
}
