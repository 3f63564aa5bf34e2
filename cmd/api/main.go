package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/golden283219/blipp-backend/internal/application/service"
	"github.com/golden283219/blipp-backend/internal/config"
	"github.com/golden283219/blipp-backend/internal/infrastructure/database"
	"github.com/golden283219/blipp-backend/internal/infrastructure/notify"
	"github.com/golden283219/blipp-backend/internal/infrastructure/repository"
	"github.com/golden283219/blipp-backend/internal/presentation/http/handler"
	"github.com/golden283219/blipp-backend/internal/presentation/http/routes"
	"github.com/golden283219/blipp-backend/pkg/email"
	"github.com/golden283219/blipp-backend/pkg/swedbank"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	orderedItemRepo := repository.NewOrderedItemRepository(db)
	itemRepo := repository.NewItemRepository(db)
	variantRepo := repository.NewItemVariantOptionRepository(db)
	allergyRepo := repository.NewAllergyRepository(db)
	productGroupRepo := repository.NewProductGroupRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	cashRegisterRepo := repository.NewCashRegisterRepository(db)
	credentialsRepo := repository.NewMerchantCredentialsRepository(db)
	deliveryCostRepo := repository.NewDeliveryCostRepository(db)
	paymentInfoRepo := repository.NewPaymentInfoRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	counterRepo := repository.NewReceiptCounterRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize payment gateway client
	gateway := swedbank.NewClient(swedbank.Config{
		BaseURL: cfg.Payment.BaseURL,
		Timeout: cfg.Payment.Timeout,
	})

	// Initialize Redis notifier
	notifier := notify.NewRedisNotifier(cfg.Redis.Addr)
	defer notifier.Close()

	// Initialize services
	pricer := service.NewOrderPricer(itemRepo, variantRepo, allergyRepo, productGroupRepo, deliveryCostRepo)
	numbering := service.NewFiscalNumberingService(counterRepo, cashRegisterRepo)
	statusService := service.NewOrderStatusService(orderRepo, orderedItemRepo, itemRepo, productGroupRepo)
	receiptService := service.NewReceiptService(receiptRepo, restaurantRepo, numbering, pricer, emailService)
	paymentService := service.NewPaymentService(orderRepo, paymentInfoRepo, credentialsRepo, restaurantRepo, pricer, receiptService, gateway, cfg.Payment)
	reportService := service.NewReportService(reportRepo, receiptRepo, orderRepo, restaurantRepo, productGroupRepo, pricer, receiptService, emailService)

	// Start the daily Z report scheduler
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.NewZReportScheduler(restaurantRepo, reportService).Start(ctx)

	// Initialize handlers
	handlers := &routes.Handlers{
		Order:   handler.NewOrderHandler(statusService, notifier),
		Payment: handler.NewPaymentHandler(paymentService, notifier),
		Receipt: handler.NewReceiptHandler(receiptService, paymentService, notifier),
		Report:  handler.NewReportHandler(reportService),
		Events:  handler.NewEventsHandler(notifier),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
