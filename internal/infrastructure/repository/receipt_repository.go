package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	domainRepo "github.com/golden283219/blipp-backend/internal/domain/repository"
	"github.com/golden283219/blipp-backend/pkg/pagination"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) MarkReturned(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("id = ? AND is_returned = false", id).
		Update("is_returned", true)
	return res.RowsAffected > 0, res.Error
}

func (r *receiptRepository) ConsumeCopyAllowance(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("id = ? AND allowed_to_copy = true", id).
		Update("allowed_to_copy", false)
	return res.RowsAffected > 0, res.Error
}

func (r *receiptRepository) ListByWindow(ctx context.Context, restaurantID uuid.UUID, from, to time.Time, isReturn bool) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_return_receipt = ? AND date >= ? AND date < ?",
			restaurantID, isReturn, from, to).
		Order("date ASC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) SumTotals(ctx context.Context, restaurantID uuid.UUID, isReturn bool) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("SUM(total)").
		Where("restaurant_id = ? AND is_return_receipt = ?", restaurantID, isReturn).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *receiptRepository) ListReturnedWithoutClone(ctx context.Context, restaurantID uuid.UUID) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).Raw(`
		SELECT r.*
		FROM receipts r
		WHERE r.restaurant_id = ?
		  AND r.is_returned
		  AND NOT r.is_return_receipt
		  AND NOT EXISTS (
			SELECT 1 FROM receipts c
			WHERE c.order_id = r.order_id AND c.is_return_receipt
		  )
	`, restaurantID).Scan(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) List(ctx context.Context, restaurantID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("restaurant_id = ?", restaurantID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("date DESC").
		Find(&receipts).Error

	return receipts, total, err
}

type receiptCounterRepository struct {
	db *gorm.DB
}

// NewReceiptCounterRepository creates a new receipt counter repository
func NewReceiptCounterRepository(db *gorm.DB) domainRepo.ReceiptCounterRepository {
	return &receiptCounterRepository{db: db}
}

// NextSerial increments the (restaurant, register) counter under a row lock.
// When the counter does not exist yet it is created at seed; if two callers
// race on that first create, the unique index rejects one and the caller
// retries the whole issue step.
func (r *receiptCounterRepository) NextSerial(ctx context.Context, restaurantID, cashRegisterID uuid.UUID, seed int64) (int64, error) {
	var serial int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter entity.ReceiptCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("restaurant_id = ? AND cash_register_id = ?", restaurantID, cashRegisterID).
			First(&counter).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = entity.ReceiptCounter{
				RestaurantID:   restaurantID,
				CashRegisterID: cashRegisterID,
				LastSerial:     seed,
			}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
			serial = seed
			return nil
		}
		if err != nil {
			return err
		}

		counter.LastSerial++
		if err := tx.Model(&entity.ReceiptCounter{}).
			Where("id = ?", counter.ID).
			Update("last_serial", counter.LastSerial).Error; err != nil {
			return err
		}
		serial = counter.LastSerial
		return nil
	})
	return serial, err
}
