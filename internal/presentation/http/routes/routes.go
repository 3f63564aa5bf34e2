package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/golden283219/blipp-backend/internal/config"
	"github.com/golden283219/blipp-backend/internal/presentation/http/handler"
	"github.com/golden283219/blipp-backend/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Order   *handler.OrderHandler
	Payment *handler.PaymentHandler
	Receipt *handler.ReceiptHandler
	Report  *handler.ReportHandler
	Events  *handler.EventsHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.PATCH("/payment", h.Payment.Initiate)
			orders.POST("/payment-callback", h.Payment.Callback)

			orders.GET("/:id", h.Order.Get)
			orders.PUT("/:id/ordered-items", h.Order.ReplaceItems)
			orders.POST("/:id/ordered-item", h.Order.AppendItem)
			orders.PATCH("/:id/subcategories/:subcategoryId/:isDone", h.Order.SetSubcategoryDone)
			orders.PATCH("/:id/payment-status", h.Payment.ConfirmStatus)
		}

		receipts := v1.Group("/receipts")
		{
			receipts.GET("/:id", h.Receipt.Get)
			receipts.PATCH("/:id/return", h.Receipt.Return)
			receipts.PATCH("/:id/email", h.Receipt.Email)
		}

		reports := v1.Group("/reports")
		{
			reports.POST("", h.Report.Create)
			reports.GET("/:id", h.Report.Get)
		}

		restaurants := v1.Group("/restaurants")
		{
			restaurants.GET("/:id/receipts", h.Receipt.List)
			restaurants.GET("/:id/reports", h.Report.List)
			restaurants.GET("/:id/events", h.Events.Stream)
		}
	}

	return router
}
