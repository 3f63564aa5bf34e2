package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
)

// ReportRepository defines report data operations. Reports are insert-only.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]entity.Report, error)
}
