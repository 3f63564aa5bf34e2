package entity

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Restaurant is the tenant every order, receipt and report belongs to.
type Restaurant struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Address     string    `gorm:"size:255" json:"address"`
	OrgNr       string    `gorm:"size:50" json:"orgnr"`
	PhoneNumber string    `gorm:"size:50" json:"phone_number"`
	Email       string    `gorm:"size:255" json:"email"`
	Timezone    string    `gorm:"size:100;default:'Europe/Stockholm'" json:"timezone"`
	Currency    string    `gorm:"size:10;default:'SEK'" json:"currency"`

	// Which delivery types the restaurant currently accepts.
	ReservationEnabled bool `gorm:"default:true" json:"reservation_enabled"`
	TakeawayEnabled    bool `gorm:"default:true" json:"takeaway_enabled"`
	DeliveryEnabled    bool `gorm:"default:false" json:"delivery_enabled"`

	OpeningHours OpeningHoursList `gorm:"type:jsonb" json:"opening_hours,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Tables        []Table        `gorm:"foreignKey:RestaurantID" json:"tables,omitempty"`
	CashRegisters []CashRegister `gorm:"foreignKey:RestaurantID" json:"cash_registers,omitempty"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// OpeningHoursEntry is one weekday's opening window, "HH:MM" local time.
type OpeningHoursEntry struct {
	OpeningHour string `json:"opening_hour"`
	ClosingHour string `json:"closing_hour"`
}

// OpeningHoursList is indexed by weekday, Sunday first.
type OpeningHoursList []OpeningHoursEntry

func (l OpeningHoursList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *OpeningHoursList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// Table is a physical table at the restaurant. Tables can be renamed, so
// receipts snapshot the name at generation time instead of referencing it.
type Table struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Table) TableName() string {
	return "tables"
}

// CashRegister is a fiscal register. Receipt serials are issued per
// (restaurant, register) and the composite fiscal identifier ka is derived
// from the organisation number and the register number.
type CashRegister struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Number       int       `gorm:"not null" json:"number"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *CashRegister) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CashRegister) TableName() string {
	return "cash_registers"
}

// MerchantCredentials holds the restaurant's payment-gateway identity.
type MerchantCredentials struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"restaurant_id"`
	MerchantID   string    `gorm:"size:255;not null" json:"merchant_id"`
	MerchantName string    `gorm:"size:255;not null" json:"merchant_name"`
	Token        string    `gorm:"size:512;not null" json:"-"`
	TermsURL     string    `gorm:"size:512" json:"terms_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *MerchantCredentials) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (MerchantCredentials) TableName() string {
	return "merchant_credentials"
}

// DeliveryCost is the per-restaurant delivery fee. The fee is VAT-bucketed
// through the product group it references, not billed as a line item.
type DeliveryCost struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"restaurant_id"`
	Cost           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost"`
	ProductGroupID uuid.UUID       `gorm:"type:uuid;not null" json:"product_group_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (d *DeliveryCost) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (DeliveryCost) TableName() string {
	return "delivery_costs"
}
