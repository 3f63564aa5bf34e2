package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
)

// RestaurantRepository defines restaurant lookups.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	List(ctx context.Context) ([]entity.Restaurant, error)
}

// CashRegisterRepository defines cash register lookups.
type CashRegisterRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error)
}

// MerchantCredentialsRepository defines gateway credential lookups.
type MerchantCredentialsRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entity.MerchantCredentials, error)
}

// DeliveryCostRepository defines delivery cost lookups.
type DeliveryCostRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entity.DeliveryCost, error)
}
