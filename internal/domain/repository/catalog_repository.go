package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
)

// ItemRepository defines menu item lookups.
type ItemRepository interface {
	// GetByIDs batch-fetches items with subcategory and product group
	// preloaded.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
}

// ItemVariantOptionRepository defines variant option lookups.
type ItemVariantOptionRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ItemVariantOption, error)
}

// AllergyRepository defines allergy lookups.
type AllergyRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Allergy, error)
}

// ProductGroupRepository defines product group lookups, including the
// synthetic takeaway/delivery buckets. The flag lookups return an error when
// no such group exists for the restaurant; a restaurant is required to have
// exactly one of each.
type ProductGroupRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductGroup, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]entity.ProductGroup, error)
	GetTakeawayGroup(ctx context.Context, restaurantID uuid.UUID) (*entity.ProductGroup, error)
	GetDeliveryGroup(ctx context.Context, restaurantID uuid.UUID) (*entity.ProductGroup, error)
}
