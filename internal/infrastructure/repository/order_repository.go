package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	domainRepo "github.com/golden283219/blipp-backend/internal/domain/repository"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("PaymentInfo").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Table").
		Preload("PaymentInfo").
		Preload("OrderedItems").
		Preload("OrderedItems.Item").
		Preload("OrderedItems.Item.ItemSubcategory").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) UpdateStatuses(ctx context.Context, id uuid.UUID, food, drink *enum.OrderStatus) error {
	updates := make(map[string]interface{}, 2)
	if food != nil {
		updates["food_status"] = *food
	}
	if drink != nil {
		updates["drink_status"] = *drink
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	// Compare-and-set: the WHERE clause guards against duplicate gateway
	// callbacks and double-clicks racing each other.
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND is_paid = false", id).
		Update("is_paid", true)
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepository) ListOpenByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Table").
		Preload("OrderedItems").
		Preload("OrderedItems.Item").
		Where("restaurant_id = ? AND open = true", restaurantID).
		Find(&orders).Error
	return orders, err
}

type orderedItemRepository struct {
	db *gorm.DB
}

// NewOrderedItemRepository creates a new ordered item repository
func NewOrderedItemRepository(db *gorm.DB) domainRepo.OrderedItemRepository {
	return &orderedItemRepository{db: db}
}

func (r *orderedItemRepository) CreateBatch(ctx context.Context, items []entity.OrderedItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *orderedItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderedItem, error) {
	var items []entity.OrderedItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.ItemSubcategory").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

func (r *orderedItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderedItem{}, "order_id = ?", orderID).Error
}

func (r *orderedItemRepository) SetDone(ctx context.Context, ids []uuid.UUID, done bool) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.OrderedItem{}).
		Where("id IN ?", ids).
		Update("is_done", done).Error
}
