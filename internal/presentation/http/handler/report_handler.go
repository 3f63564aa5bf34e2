package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/golden283219/blipp-backend/internal/application/service"
	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/request"
	"github.com/golden283219/blipp-backend/internal/presentation/http/dto/response"
)

// ReportHandler handles X/Z report HTTP requests.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create handles POST /reports
func (h *ReportHandler) Create(c *gin.Context) {
	var req request.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.reportService.GenerateReport(c.Request.Context(), req.RestaurantID, req.ReportType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Report generated", report)
}

// Get handles GET /reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	reportID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), reportID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved", report)
}

// List handles GET /restaurants/:id/reports
func (h *ReportHandler) List(c *gin.Context) {
	restaurantID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), restaurantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reports retrieved", reports)
}
