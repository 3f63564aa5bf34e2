package entity

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/enum"
)

// PaymentMethodTotal is the per-payment-method receipt aggregation of a
// report window.
type PaymentMethodTotal struct {
	PaymentMethod enum.PaymentType `json:"payment_method"`
	Orders        int              `json:"orders"`
	Total         decimal.Decimal  `json:"total"`
}

type PaymentMethodTotalList []PaymentMethodTotal

func (l PaymentMethodTotalList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *PaymentMethodTotalList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// ProductGroupTotal sums the window's line gross per product group. The
// delivery-flagged group accumulates per-receipt delivery costs instead of
// line items.
type ProductGroupTotal struct {
	Name        string          `json:"name"`
	Vat         decimal.Decimal `json:"vat"`
	AccountPlan int             `json:"account_plan"`
	VatAccount  int             `json:"vat_account"`
	Total       decimal.Decimal `json:"total"`
	Items       int             `json:"items"`
}

type ProductGroupTotalList []ProductGroupTotal

func (l ProductGroupTotalList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *ProductGroupTotalList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// OpenOrderTotal is the live "money on the table" figure for one open order,
// keyed by table name and recomputed fresh at report time.
type OpenOrderTotal struct {
	TableName string          `json:"table_name"`
	Total     decimal.Decimal `json:"total"`
}

type OpenOrderTotalList []OpenOrderTotal

func (l OpenOrderTotalList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *OpenOrderTotalList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// ReturnedReceiptTotal re-runs the payment-method aggregation over the
// window's return receipts.
type ReturnedReceiptTotal struct {
	PaymentMethod enum.PaymentType `json:"payment_method"`
	Total         decimal.Decimal  `json:"total"`
}

type ReturnedReceiptTotalList []ReturnedReceiptTotal

func (l ReturnedReceiptTotalList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *ReturnedReceiptTotalList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// GrandTotal is the restaurant-lifetime cumulative sales and returns figure,
// independent of the report window.
type GrandTotal struct {
	Gross         decimal.Decimal `json:"gross"`
	GrossReturned decimal.Decimal `json:"gross_returned"`
}

func (g GrandTotal) Value() (driver.Value, error) {
	return jsonbValue(g)
}

func (g *GrandTotal) Scan(value interface{}) error {
	return jsonbScan(g, value)
}

// Report is a periodic financial snapshot. It is persisted once and never
// recomputed in place; a new report is always a new row.
type Report struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	ReportType   enum.ReportType `gorm:"size:1;not null" json:"report_type"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	EndDate      time.Time       `gorm:"not null" json:"end_date"`
	Timestamp    time.Time       `gorm:"not null" json:"timestamp"`

	// Restaurant identity snapshot.
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	OrgNr   string `gorm:"size:50" json:"orgnr"`

	TotalOrders      int `json:"total_orders"`
	ReceiptsReturned int `json:"receipts_returned"`
	ItemsReturned    int `json:"items_returned"`

	PaymentMethods   PaymentMethodTotalList   `gorm:"type:jsonb" json:"payment_methods"`
	ProductGroups    ProductGroupTotalList    `gorm:"type:jsonb" json:"product_groups"`
	VatTotals        VatList                  `gorm:"type:jsonb" json:"vat_totals"`
	OpenOrders       OpenOrderTotalList       `gorm:"type:jsonb" json:"open_orders"`
	ReturnedReceipts ReturnedReceiptTotalList `gorm:"type:jsonb" json:"returned_receipts"`
	GrandTotal       GrandTotal               `gorm:"type:jsonb" json:"grand_total"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Report) TableName() string {
	return "reports"
}
