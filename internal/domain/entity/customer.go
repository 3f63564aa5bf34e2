package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is the ordering guest. MessengerID is the messaging-channel
// identity; when it is empty, email is the fallback channel for receipts.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	Email       string    `gorm:"size:255" json:"email"`
	PhoneNumber string    `gorm:"size:50" json:"phone_number"`
	MessengerID string    `gorm:"size:255" json:"messenger_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}

// FullName joins first and last name for receipt snapshots.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
