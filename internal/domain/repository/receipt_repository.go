package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/pkg/pagination"
)

// ReceiptRepository defines fiscal receipt data operations. Receipts are
// insert-only documents; the only mutable columns are the lifecycle flags.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// MarkReturned flips isReturned to true if and only if it is currently
	// false, as one atomic compare-and-set. It reports whether this call
	// won the flip.
	MarkReturned(ctx context.Context, id uuid.UUID) (bool, error)
	// ConsumeCopyAllowance clears allowedToCopy if it is still set,
	// reporting whether this call consumed it.
	ConsumeCopyAllowance(ctx context.Context, id uuid.UUID) (bool, error)
	// ListByWindow returns receipts dated in [from, to), split by the
	// return flag. The lower bound is inclusive.
	ListByWindow(ctx context.Context, restaurantID uuid.UUID, from, to time.Time, isReturn bool) ([]entity.Receipt, error)
	// SumTotals returns the all-time sum of receipt totals for the
	// restaurant, split by the return flag.
	SumTotals(ctx context.Context, restaurantID uuid.UUID, isReturn bool) (decimal.Decimal, error)
	// ListReturnedWithoutClone finds receipts flagged returned that have no
	// sibling return receipt for the same order: the partial-reversal state
	// left behind by a crash between flag flip and clone creation.
	ListReturnedWithoutClone(ctx context.Context, restaurantID uuid.UUID) ([]entity.Receipt, error)
	List(ctx context.Context, restaurantID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
}

// ReceiptCounterRepository issues fiscal serials.
type ReceiptCounterRepository interface {
	// NextSerial atomically increments and returns the serial for the
	// (restaurant, register) counter, creating it from seed when absent.
	// Serialization happens at the database level; concurrent callers
	// always observe distinct, strictly increasing values.
	NextSerial(ctx context.Context, restaurantID, cashRegisterID uuid.UUID, seed int64) (int64, error)
}
