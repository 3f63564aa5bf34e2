package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	domainRepo "github.com/golden283219/blipp-backend/internal/domain/repository"
)

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db *gorm.DB) domainRepo.RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	var restaurant entity.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &restaurant, err
}

func (r *restaurantRepository) List(ctx context.Context) ([]entity.Restaurant, error) {
	var restaurants []entity.Restaurant
	err := r.db.WithContext(ctx).Find(&restaurants).Error
	return restaurants, err
}

type cashRegisterRepository struct {
	db *gorm.DB
}

// NewCashRegisterRepository creates a new cash register repository
func NewCashRegisterRepository(db *gorm.DB) domainRepo.CashRegisterRepository {
	return &cashRegisterRepository{db: db}
}

func (r *cashRegisterRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	var register entity.CashRegister
	err := r.db.WithContext(ctx).First(&register, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &register, err
}

type merchantCredentialsRepository struct {
	db *gorm.DB
}

// NewMerchantCredentialsRepository creates a new merchant credentials repository
func NewMerchantCredentialsRepository(db *gorm.DB) domainRepo.MerchantCredentialsRepository {
	return &merchantCredentialsRepository{db: db}
}

func (r *merchantCredentialsRepository) GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entity.MerchantCredentials, error) {
	var credentials entity.MerchantCredentials
	err := r.db.WithContext(ctx).First(&credentials, "restaurant_id = ?", restaurantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &credentials, err
}

type deliveryCostRepository struct {
	db *gorm.DB
}

// NewDeliveryCostRepository creates a new delivery cost repository
func NewDeliveryCostRepository(db *gorm.DB) domainRepo.DeliveryCostRepository {
	return &deliveryCostRepository{db: db}
}

func (r *deliveryCostRepository) GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entity.DeliveryCost, error) {
	var cost entity.DeliveryCost
	err := r.db.WithContext(ctx).First(&cost, "restaurant_id = ?", restaurantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cost, err
}
