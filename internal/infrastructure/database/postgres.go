package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/golden283219/blipp-backend/internal/config"
	"github.com/golden283219/blipp-backend/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Duplicate-key errors surface as gorm.ErrDuplicatedKey so the
		// serial retry can recognize them.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Reference entities
		&entity.Restaurant{},
		&entity.Table{},
		&entity.CashRegister{},
		&entity.MerchantCredentials{},
		&entity.DeliveryCost{},
		&entity.Customer{},

		// Catalog entities
		&entity.ProductGroup{},
		&entity.ItemSubcategory{},
		&entity.Item{},
		&entity.ItemVariantOption{},
		&entity.Allergy{},

		// Order flow entities
		&entity.Order{},
		&entity.OrderedItem{},
		&entity.PaymentInfo{},

		// Fiscal entities
		&entity.Receipt{},
		&entity.ReceiptCounter{},
		&entity.Report{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// A restaurant may carry at most one synthetic takeaway group and one
	// synthetic delivery group; lookups rely on uniqueness.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_product_groups_takeaway
		ON product_groups (restaurant_id) WHERE is_takeaway`).Error; err != nil {
		return fmt.Errorf("takeaway group index: %w", err)
	}
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_product_groups_delivery
		ON product_groups (restaurant_id) WHERE is_delivery`).Error; err != nil {
		return fmt.Errorf("delivery group index: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}
