package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	domainRepo "github.com/golden283219/blipp-backend/internal/domain/repository"
	"github.com/golden283219/blipp-backend/pkg/apperror"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.WithContext(ctx).
		Preload("ItemSubcategory").
		Preload("ProductGroup").
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

type itemVariantOptionRepository struct {
	db *gorm.DB
}

// NewItemVariantOptionRepository creates a new item variant option repository
func NewItemVariantOptionRepository(db *gorm.DB) domainRepo.ItemVariantOptionRepository {
	return &itemVariantOptionRepository{db: db}
}

func (r *itemVariantOptionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ItemVariantOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var options []entity.ItemVariantOption
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&options).Error
	return options, err
}

type allergyRepository struct {
	db *gorm.DB
}

// NewAllergyRepository creates a new allergy repository
func NewAllergyRepository(db *gorm.DB) domainRepo.AllergyRepository {
	return &allergyRepository{db: db}
}

func (r *allergyRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Allergy, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var allergies []entity.Allergy
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&allergies).Error
	return allergies, err
}

type productGroupRepository struct {
	db *gorm.DB
}

// NewProductGroupRepository creates a new product group repository
func NewProductGroupRepository(db *gorm.DB) domainRepo.ProductGroupRepository {
	return &productGroupRepository{db: db}
}

func (r *productGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductGroup, error) {
	var group entity.ProductGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *productGroupRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]entity.ProductGroup, error) {
	var groups []entity.ProductGroup
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *productGroupRepository) GetTakeawayGroup(ctx context.Context, restaurantID uuid.UUID) (*entity.ProductGroup, error) {
	return r.getFlaggedGroup(ctx, restaurantID, "is_takeaway", "Takeaway product group")
}

func (r *productGroupRepository) GetDeliveryGroup(ctx context.Context, restaurantID uuid.UUID) (*entity.ProductGroup, error) {
	return r.getFlaggedGroup(ctx, restaurantID, "is_delivery", "Delivery product group")
}

// A restaurant must carry exactly one group per synthetic flag; a partial
// unique index enforces the upper bound and a missing group is an error
// here rather than undefined behavior downstream.
func (r *productGroupRepository) getFlaggedGroup(ctx context.Context, restaurantID uuid.UUID, flag, resource string) (*entity.ProductGroup, error) {
	var group entity.ProductGroup
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND "+flag+" = true", restaurantID).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError(resource)
	}
	return &group, err
}
