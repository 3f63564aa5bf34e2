package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	domainRepo "github.com/golden283219/blipp-backend/internal/domain/repository"
)

type paymentInfoRepository struct {
	db *gorm.DB
}

// NewPaymentInfoRepository creates a new payment info repository
func NewPaymentInfoRepository(db *gorm.DB) domainRepo.PaymentInfoRepository {
	return &paymentInfoRepository{db: db}
}

func (r *paymentInfoRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.PaymentInfo, error) {
	var info entity.PaymentInfo
	err := r.db.WithContext(ctx).First(&info, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &info, err
}

func (r *paymentInfoRepository) Replace(ctx context.Context, info *entity.PaymentInfo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.PaymentInfo{}, "order_id = ?", info.OrderID).Error; err != nil {
			return err
		}
		return tx.Create(info).Error
	})
}
