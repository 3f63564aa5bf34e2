package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/repository"
	"github.com/golden283219/blipp-backend/pkg/apperror"
)

// serialBlock spaces register serial ranges apart. Register N's serials
// start at N*serialBlock + 1, so serials stay unique across registers even
// as plain integers.
const serialBlock int64 = 1_000_000_000

// FiscalNumberingService issues the strictly increasing receipt serial per
// (restaurant, cash register). Sale and return receipts draw from the same
// sequence.
type FiscalNumberingService struct {
	counterRepo      repository.ReceiptCounterRepository
	cashRegisterRepo repository.CashRegisterRepository
}

// NewFiscalNumberingService creates a new fiscal numbering service
func NewFiscalNumberingService(
	counterRepo repository.ReceiptCounterRepository,
	cashRegisterRepo repository.CashRegisterRepository,
) *FiscalNumberingService {
	return &FiscalNumberingService{
		counterRepo:      counterRepo,
		cashRegisterRepo: cashRegisterRepo,
	}
}

// NextSerial issues the next serial for the register as its string form. The
// first serial of register N is N followed by 000000001.
func (s *FiscalNumberingService) NextSerial(ctx context.Context, restaurantID, cashRegisterID uuid.UUID) (string, error) {
	register, err := s.cashRegisterRepo.GetByID(ctx, cashRegisterID)
	if err != nil {
		return "", err
	}
	if register == nil {
		return "", apperror.NewNotFoundError("Cash register")
	}

	seed := int64(register.Number)*serialBlock + 1
	serial, err := s.counterRepo.NextSerial(ctx, restaurantID, cashRegisterID, seed)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(serial, 10), nil
}
