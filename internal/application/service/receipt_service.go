package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/internal/domain/repository"
	"github.com/golden283219/blipp-backend/pkg/apperror"
	"github.com/golden283219/blipp-backend/pkg/pagination"
	"github.com/golden283219/blipp-backend/pkg/swedbank"
)

// cardMaskPrefix replaces everything but the last four digits on persisted
// card numbers.
const cardMaskPrefix = "************"

// ReceiptService generates the immutable fiscal receipt created at payment
// capture, its return sibling at reversal, and emailed copies.
type ReceiptService struct {
	receiptRepo    repository.ReceiptRepository
	restaurantRepo repository.RestaurantRepository
	numbering      *FiscalNumberingService
	pricer         *OrderPricer
	emailService   ReceiptMailer
}

// ReceiptMailer dispatches receipt renderings out-of-band.
type ReceiptMailer interface {
	SendReceiptCopy(toEmail string, receipt *entity.Receipt) error
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	restaurantRepo repository.RestaurantRepository,
	numbering *FiscalNumberingService,
	pricer *OrderPricer,
	emailService ReceiptMailer,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:    receiptRepo,
		restaurantRepo: restaurantRepo,
		numbering:      numbering,
		pricer:         pricer,
		emailService:   emailService,
	}
}

// Generate builds and persists the fiscal receipt for a just-captured order.
// Everything on the receipt is a snapshot taken now; later renames or price
// changes never touch it.
func (s *ReceiptService) Generate(ctx context.Context, order *entity.Order, paymentType enum.PaymentType, card *swedbank.CardInfo) (*entity.Receipt, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NewNotFoundError("Restaurant")
	}

	priced, err := s.pricer.PriceOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		RestaurantID:   order.RestaurantID,
		CashRegisterID: order.CashRegisterID,
		OrderID:        order.ID,
		CustomerID:     order.CustomerID,
		Date:           time.Now().UTC(),
		AllowedToCopy:  true,

		RestaurantName:        restaurant.Name,
		RestaurantPhoneNumber: restaurant.PhoneNumber,
		Address:               restaurant.Address,
		OrgNr:                 restaurant.OrgNr,
		Currency:              restaurant.Currency,

		DeliveryType:  order.DeliveryType,
		PaymentMethod: paymentType,

		Items:            priced.Lines,
		ReceiptVat:       priced.VatBuckets,
		DeliveryCostInfo: priced.DeliveryInfo,
		Total:            priced.Total,
		Rounding:         priced.Rounding,
	}
	if order.Customer != nil {
		receipt.CustomerName = order.Customer.FullName()
	}
	if order.Table != nil {
		receipt.DiningTableName = order.Table.Name
	}
	if card != nil {
		receipt.CardType = card.CardBrand
		receipt.CardNumber = MaskCardNumber(card.MaskedPan)
	}

	if err := s.createWithSerial(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// CreateReturnClone persists the reversal sibling of an already-reversed
// receipt under a fresh serial.
func (s *ReceiptService) CreateReturnClone(ctx context.Context, original *entity.Receipt) (*entity.Receipt, error) {
	clone := original.ReturnClone()
	clone.Date = time.Now().UTC()
	if err := s.createWithSerial(ctx, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// createWithSerial issues a serial, derives the fiscal register identifier
// and inserts the receipt. A unique-index conflict, whether from the counter
// row creation or from the serial on the insert, means a concurrent writer
// interleaved; one retry resolves it.
func (s *ReceiptService) createWithSerial(ctx context.Context, receipt *entity.Receipt) error {
	for attempt := 0; attempt < 2; attempt++ {
		sn, err := s.numbering.NextSerial(ctx, receipt.RestaurantID, receipt.CashRegisterID)
		if err != nil {
			// The counter row exists after a lost creation race; the
			// retry takes the increment path.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return err
		}
		receipt.SN = sn
		receipt.KA = receipt.OrgNr + strconv.Itoa(registerSuffix(sn))

		err = s.receiptRepo.Create(ctx, receipt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		receipt.ID = uuid.Nil
	}
	return apperror.ErrSerialConflict
}

// registerSuffix recovers the register number a serial was seeded from.
func registerSuffix(sn string) int {
	serial, err := strconv.ParseInt(sn, 10, 64)
	if err != nil {
		return 0
	}
	return int(serial / serialBlock)
}

// GetReceipt returns one receipt by id.
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts returns the restaurant's receipts, newest first.
func (s *ReceiptService) ListReceipts(ctx context.Context, restaurantID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	return s.receiptRepo.List(ctx, restaurantID, params)
}

// EmailReceiptCopy sends the one permitted copy of a receipt to the given
// address. The allowance is consumed before dispatch; a second request is
// rejected no matter how the first dispatch went.
func (s *ReceiptService) EmailReceiptCopy(ctx context.Context, receiptID uuid.UUID, toEmail string) error {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}

	consumed, err := s.receiptRepo.ConsumeCopyAllowance(ctx, receiptID)
	if err != nil {
		return err
	}
	if !consumed {
		return apperror.ErrReceiptCopySpent
	}

	if err := s.emailService.SendReceiptCopy(toEmail, receipt); err != nil {
		log.Printf("receipt %s: copy dispatch to %s failed: %v", receiptID, toEmail, err)
		return apperror.NewAppError(http.StatusBadGateway, "Failed to send receipt copy")
	}
	return nil
}

// ReconcileReturns finishes reversals that were interrupted between the
// return-flag flip and the clone insert: each flagged receipt with no return
// sibling gets its clone created now.
func (s *ReceiptService) ReconcileReturns(ctx context.Context, restaurantID uuid.UUID) error {
	orphans, err := s.receiptRepo.ListReturnedWithoutClone(ctx, restaurantID)
	if err != nil {
		return err
	}
	for i := range orphans {
		if _, err := s.CreateReturnClone(ctx, &orphans[i]); err != nil {
			return fmt.Errorf("reconcile receipt %s: %w", orphans[i].ID, err)
		}
	}
	return nil
}

// MaskCardNumber reduces a PAN to asterisks plus its last four digits.
func MaskCardNumber(pan string) string {
	if len(pan) < 4 {
		return cardMaskPrefix
	}
	return cardMaskPrefix + pan[len(pan)-4:]
}
