package request

import (
	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/enum"
)

// EmailReceiptRequest asks for the receipt's one permitted emailed copy.
type EmailReceiptRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GenerateReportRequest asks for an X or Z report over the current window.
type GenerateReportRequest struct {
	RestaurantID uuid.UUID       `json:"restaurant_id" binding:"required"`
	ReportType   enum.ReportType `json:"report_type" binding:"required"`
}
