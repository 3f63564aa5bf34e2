package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
)

// PaymentInfoRepository defines payment info data operations. An order has
// at most one live PaymentInfo.
type PaymentInfoRepository interface {
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.PaymentInfo, error)
	// Replace persists info, retiring (deleting) any previous PaymentInfo
	// for the same order in the same transaction.
	Replace(ctx context.Context, info *entity.PaymentInfo) error
}
