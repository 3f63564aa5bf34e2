package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/enum"
)

// ProductGroup is the fiscal/accounting category items roll up into. It
// carries the VAT rate and the flags marking the synthetic takeaway and
// delivery buckets used to re-route items and delivery fees. Each restaurant
// must have exactly one group per flag.
type ProductGroup struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Vat          decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vat"`
	AccountPlan  int             `json:"account_plan"`
	VatAccount   int             `json:"vat_account"`
	IsTakeaway   bool            `gorm:"default:false" json:"is_takeaway"`
	IsDelivery   bool            `gorm:"default:false" json:"is_delivery"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *ProductGroup) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (ProductGroup) TableName() string {
	return "product_groups"
}

// ItemSubcategory places items under FOOD or DRINK. The order status machine
// derives the category of every ordered item through this relation.
type ItemSubcategory struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID         `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Category     enum.ItemCategory `gorm:"size:10;not null" json:"category"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (s *ItemSubcategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (ItemSubcategory) TableName() string {
	return "item_subcategories"
}

// Item is a menu item.
type Item struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ItemSubcategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_subcategory_id"`
	ProductGroupID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_group_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relationships
	ItemSubcategory *ItemSubcategory `gorm:"foreignKey:ItemSubcategoryID" json:"item_subcategory,omitempty"`
	ProductGroup    *ProductGroup    `gorm:"foreignKey:ProductGroupID" json:"product_group,omitempty"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (Item) TableName() string {
	return "items"
}

// ItemVariantOption is a selectable variant of an item. Each selected option
// contributes its own price on top of the item's base price.
type ItemVariantOption struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

func (o *ItemVariantOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (ItemVariantOption) TableName() string {
	return "item_variant_options"
}

// Allergy is a named allergy a guest can attach to an ordered item.
type Allergy struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Allergy) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (Allergy) TableName() string {
	return "allergies"
}
