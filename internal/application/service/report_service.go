package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/internal/domain/repository"
	"github.com/golden283219/blipp-backend/pkg/apperror"
	"github.com/golden283219/blipp-backend/pkg/vatmath"
)

// fiscalDayStartHour is the local hour a fiscal day rolls over. X reports
// cover the running fiscal day, Z reports close the previous one.
const fiscalDayStartHour = 5

// ReportMailer dispatches report renderings out-of-band.
type ReportMailer interface {
	SendReport(toEmail string, report *entity.Report) error
}

// ReportService aggregates a restaurant's receipts into X and Z reports.
// Reports are computed from the receipt documents alone and written once.
type ReportService struct {
	reportRepo       repository.ReportRepository
	receiptRepo      repository.ReceiptRepository
	orderRepo        repository.OrderRepository
	restaurantRepo   repository.RestaurantRepository
	productGroupRepo repository.ProductGroupRepository
	pricer           *OrderPricer
	receiptService   *ReceiptService
	emailService     ReportMailer
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	receiptRepo repository.ReceiptRepository,
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	productGroupRepo repository.ProductGroupRepository,
	pricer *OrderPricer,
	receiptService *ReceiptService,
	emailService ReportMailer,
) *ReportService {
	return &ReportService{
		reportRepo:       reportRepo,
		receiptRepo:      receiptRepo,
		orderRepo:        orderRepo,
		restaurantRepo:   restaurantRepo,
		productGroupRepo: productGroupRepo,
		pricer:           pricer,
		receiptService:   receiptService,
		emailService:     emailService,
	}
}

// GenerateReport aggregates the report window's receipts and persists the
// result. X covers the running fiscal day up to now; Z covers the previous
// complete fiscal day. The window's lower bound is inclusive, the upper
// bound exclusive.
func (s *ReportService) GenerateReport(ctx context.Context, restaurantID uuid.UUID, reportType enum.ReportType) (*entity.Report, error) {
	if !reportType.Valid() {
		return nil, apperror.NewValidationError("Unknown report type")
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NewNotFoundError("Restaurant")
	}

	now := time.Now()
	start, end, err := reportWindow(reportType, now, restaurant.Timezone)
	if err != nil {
		return nil, err
	}

	sales, err := s.receiptRepo.ListByWindow(ctx, restaurantID, start, end, false)
	if err != nil {
		return nil, err
	}
	returns, err := s.receiptRepo.ListByWindow(ctx, restaurantID, start, end, true)
	if err != nil {
		return nil, err
	}

	groups, err := s.productGroupRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	openOrders, err := s.openOrderTotals(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	grossSold, err := s.receiptRepo.SumTotals(ctx, restaurantID, false)
	if err != nil {
		return nil, err
	}
	grossReturned, err := s.receiptRepo.SumTotals(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}

	report := &entity.Report{
		RestaurantID: restaurantID,
		ReportType:   reportType,
		StartDate:    start,
		EndDate:      end,
		Timestamp:    now.UTC(),

		Name:    restaurant.Name,
		Address: restaurant.Address,
		OrgNr:   restaurant.OrgNr,

		TotalOrders:      len(sales),
		ReceiptsReturned: len(returns),
		ItemsReturned:    countItems(returns),

		PaymentMethods:   paymentMethodTotals(sales),
		ProductGroups:    productGroupTotals(sales, groups),
		VatTotals:        vatTotals(sales),
		OpenOrders:       openOrders,
		ReturnedReceipts: returnedReceiptTotals(returns),
		GrandTotal: entity.GrandTotal{
			Gross:         grossSold,
			GrossReturned: grossReturned,
		},
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetReport returns one report by id.
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Report")
	}
	return report, nil
}

// ListReports returns the restaurant's reports.
func (s *ReportService) ListReports(ctx context.Context, restaurantID uuid.UUID) ([]entity.Report, error) {
	return s.reportRepo.ListByRestaurant(ctx, restaurantID)
}

// RunScheduledZReport closes the restaurant's fiscal day: it first finishes
// any interrupted reversals so the books balance, then generates the Z
// report and emails it to the restaurant.
func (s *ReportService) RunScheduledZReport(ctx context.Context, restaurantID uuid.UUID) error {
	if err := s.receiptService.ReconcileReturns(ctx, restaurantID); err != nil {
		return fmt.Errorf("reconcile returns: %w", err)
	}

	report, err := s.GenerateReport(ctx, restaurantID, enum.ReportTypeZ)
	if err != nil {
		return err
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant != nil && restaurant.Email != "" {
		if err := s.emailService.SendReport(restaurant.Email, report); err != nil {
			log.Printf("restaurant %s: Z report dispatch failed: %v", restaurantID, err)
		}
	}
	return nil
}

// reportWindow computes the [start, end) aggregation window in the
// restaurant's local time. The fiscal day starts at 05:00; timestamps before
// that belong to the previous day's window.
func reportWindow(reportType enum.ReportType, now time.Time, timezone string) (time.Time, time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidationError("Unknown restaurant timezone")
	}

	local := now.In(loc)
	anchor := time.Date(local.Year(), local.Month(), local.Day(), fiscalDayStartHour, 0, 0, 0, loc)
	if local.Before(anchor) {
		anchor = anchor.AddDate(0, 0, -1)
	}

	if reportType == enum.ReportTypeX {
		return anchor, local, nil
	}
	return anchor.AddDate(0, 0, -1), anchor, nil
}

// openOrderTotals prices every currently open order live; open money is
// never derived from receipts because none exist yet.
func (s *ReportService) openOrderTotals(ctx context.Context, restaurantID uuid.UUID) (entity.OpenOrderTotalList, error) {
	orders, err := s.orderRepo.ListOpenByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	totals := make(entity.OpenOrderTotalList, 0, len(orders))
	for i := range orders {
		priced, err := s.pricer.PriceOrder(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		tableName := ""
		if orders[i].Table != nil {
			tableName = orders[i].Table.Name
		}
		totals = append(totals, entity.OpenOrderTotal{
			TableName: tableName,
			Total:     priced.Total,
		})
	}
	return totals, nil
}

func paymentMethodTotals(receipts []entity.Receipt) entity.PaymentMethodTotalList {
	totals := make(entity.PaymentMethodTotalList, 0, 2)
	for _, method := range []enum.PaymentType{enum.PaymentTypeSwish, enum.PaymentTypeCreditCard} {
		entry := entity.PaymentMethodTotal{PaymentMethod: method, Total: decimal.Zero}
		for _, r := range receipts {
			if r.PaymentMethod != method {
				continue
			}
			entry.Orders++
			entry.Total = entry.Total.Add(r.Total)
		}
		totals = append(totals, entry)
	}
	return totals
}

// productGroupTotals sums line gross per product group across the window.
// The delivery-flagged group has no line items; it accumulates each
// receipt's delivery cost instead.
func productGroupTotals(receipts []entity.Receipt, groups []entity.ProductGroup) entity.ProductGroupTotalList {
	totals := make(entity.ProductGroupTotalList, 0, len(groups))
	for _, group := range groups {
		entry := entity.ProductGroupTotal{
			Name:        group.Name,
			Vat:         group.Vat,
			AccountPlan: group.AccountPlan,
			VatAccount:  group.VatAccount,
			Total:       decimal.Zero,
		}

		for _, r := range receipts {
			if group.IsDelivery {
				if r.DeliveryCostInfo != nil {
					entry.Total = entry.Total.Add(r.DeliveryCostInfo.Gross)
					entry.Items++
				}
				continue
			}
			for _, line := range r.Items {
				if line.ProductGroupID != group.ID {
					continue
				}
				entry.Total = entry.Total.Add(line.Gross())
				entry.Items += line.Quantity
			}
		}

		totals = append(totals, entry)
	}
	return totals
}

// vatTotals merges every receipt's bucket set, delivery buckets included.
func vatTotals(receipts []entity.Receipt) entity.VatList {
	sets := make([][]vatmath.Bucket, 0, len(receipts))
	for _, r := range receipts {
		sets = append(sets, r.ReceiptVat)
	}
	return vatmath.Merge(sets...)
}

func returnedReceiptTotals(returns []entity.Receipt) entity.ReturnedReceiptTotalList {
	totals := make(entity.ReturnedReceiptTotalList, 0, 2)
	for _, method := range []enum.PaymentType{enum.PaymentTypeSwish, enum.PaymentTypeCreditCard} {
		entry := entity.ReturnedReceiptTotal{PaymentMethod: method, Total: decimal.Zero}
		for _, r := range returns {
			if r.PaymentMethod != method {
				continue
			}
			entry.Total = entry.Total.Add(r.Total)
		}
		totals = append(totals, entry)
	}
	return totals
}

func countItems(receipts []entity.Receipt) int {
	count := 0
	for _, r := range receipts {
		for _, line := range r.Items {
			count += line.Quantity
		}
	}
	return count
}
