package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
)

// OrderRepository defines the order data operations the core needs.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithItems loads the full order-plus-items aggregate in one read:
	// items with their menu item and subcategory preloaded. Status
	// evaluation always works on this snapshot.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// UpdateStatuses writes only the category status fields that changed.
	// A nil status means "leave unchanged".
	UpdateStatuses(ctx context.Context, id uuid.UUID, food, drink *enum.OrderStatus) error
	// MarkPaid flips isPaid to true if and only if it is currently false,
	// as one atomic compare-and-set. It reports whether this call won the
	// flip; false means the order was already paid.
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
	// ListOpenByRestaurant returns every currently open order with its
	// items preloaded, independent of any time window.
	ListOpenByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]entity.Order, error)
}

// OrderedItemRepository defines the ordered-item data operations.
type OrderedItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.OrderedItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderedItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
	// SetDone updates the isDone flag on the given items.
	SetDone(ctx context.Context, ids []uuid.UUID, done bool) error
}
