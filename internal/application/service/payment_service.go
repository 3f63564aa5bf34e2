package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/golden283219/blipp-backend/internal/config"
	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/internal/domain/event"
	"github.com/golden283219/blipp-backend/internal/domain/repository"
	"github.com/golden283219/blipp-backend/pkg/apperror"
	"github.com/golden283219/blipp-backend/pkg/swedbank"
	"github.com/golden283219/blipp-backend/pkg/vatmath"
)

// PaymentGateway is the slice of the gateway client the orchestrator needs.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, token, endpoint string, payload swedbank.PaymentPayload) (*swedbank.PaymentCreated, error)
	SaleState(ctx context.Context, token, paymentID string) (string, error)
	CaptureState(ctx context.Context, token, paymentID string) (string, error)
	CardAuthorization(ctx context.Context, token, paymentID string) (*swedbank.CardInfo, error)
	Reverse(ctx context.Context, token, paymentID string, payload swedbank.ReversalPayload) (string, error)
}

// PaymentService orchestrates the gateway: payment creation, capture
// confirmation and reversal. Gateway trouble becomes a Failed result for the
// caller, never an error; errors are reserved for rejected requests and
// broken local state.
type PaymentService struct {
	orderRepo       repository.OrderRepository
	paymentInfoRepo repository.PaymentInfoRepository
	credentialsRepo repository.MerchantCredentialsRepository
	restaurantRepo  repository.RestaurantRepository
	pricer          *OrderPricer
	receiptService  *ReceiptService
	gateway         PaymentGateway
	cfg             config.PaymentConfig
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentInfoRepo repository.PaymentInfoRepository,
	credentialsRepo repository.MerchantCredentialsRepository,
	restaurantRepo repository.RestaurantRepository,
	pricer *OrderPricer,
	receiptService *ReceiptService,
	gateway PaymentGateway,
	cfg config.PaymentConfig,
) *PaymentService {
	return &PaymentService{
		orderRepo:       orderRepo,
		paymentInfoRepo: paymentInfoRepo,
		credentialsRepo: credentialsRepo,
		restaurantRepo:  restaurantRepo,
		pricer:          pricer,
		receiptService:  receiptService,
		gateway:         gateway,
		cfg:             cfg,
	}
}

// PaymentInitiation is what the client needs to carry a created payment
// forward: the gateway's next-step operations, redirect link first among
// them.
type PaymentInitiation struct {
	PaymentID  string               `json:"payment_id"`
	Operations []swedbank.Operation `json:"operations"`
}

// PaymentConfirmation is the outcome of a confirmation poll.
type PaymentConfirmation struct {
	State   enum.PaymentState `json:"state"`
	Receipt *entity.Receipt   `json:"receipt,omitempty"`
}

// InitiatePayment prices the order, creates the gateway payment and persists
// the PaymentInfo, retiring any previous one for the order. A nil result
// with nil error means the gateway refused or failed; nothing was persisted.
func (s *PaymentService) InitiatePayment(ctx context.Context, orderID uuid.UUID, paymentType enum.PaymentType, phoneNumber string) (*PaymentInitiation, error) {
	if !paymentType.Valid() {
		return nil, apperror.NewValidationError("Unknown payment type")
	}

	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.IsPaid {
		return nil, apperror.ErrAlreadyPaid
	}
	if len(order.OrderedItems) == 0 {
		return nil, apperror.NewValidationError("Order has no items")
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NewNotFoundError("Restaurant")
	}

	creds, err := s.credentialsRepo.GetByRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, apperror.ErrNoCredentials
	}

	priced, err := s.pricer.PriceOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	payeeRef := newPayeeReference(orderID)
	amount := minorUnits(priced.Charged())
	vatAmount := minorUnits(vatmath.TotalTax(priced.VatBuckets))

	payload := s.buildPaymentPayload(order, restaurant, creds, paymentType, phoneNumber, payeeRef, amount, vatAmount)

	endpoint := swedbank.SwishEndpoint
	if paymentType == enum.PaymentTypeCreditCard {
		endpoint = swedbank.CardEndpoint
	}

	created, err := s.gateway.CreatePayment(ctx, creds.Token, endpoint, payload)
	if err != nil {
		log.Printf("order %s: gateway payment creation failed: %v", orderID, err)
		return nil, nil
	}

	info := &entity.PaymentInfo{
		OrderID:        orderID,
		PaymentID:      created.Payment.ID,
		PayeeReference: payeeRef,
		PayeeName:      creds.MerchantName,
		Type:           paymentType,
		Amount:         amount,
		VatAmount:      vatAmount,
	}
	if err := s.paymentInfoRepo.Replace(ctx, info); err != nil {
		return nil, err
	}

	return &PaymentInitiation{
		PaymentID:  created.Payment.ID,
		Operations: created.Operations,
	}, nil
}

// ConfirmPayment polls the gateway for the order's transaction state. On
// Completed it flips isPaid exactly once, generates the fiscal receipt and
// emails it to customers without a messenger identity. Anything short of
// Completed, gateway errors included, yields a Failed confirmation.
func (s *PaymentService) ConfirmPayment(ctx context.Context, orderID uuid.UUID, paymentType enum.PaymentType) (*PaymentConfirmation, []event.Notification, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, apperror.NewNotFoundError("Order")
	}
	if order.IsPaid {
		return nil, nil, apperror.ErrAlreadyPaid
	}

	creds, err := s.credentialsRepo.GetByRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return nil, nil, err
	}
	if creds == nil {
		return nil, nil, apperror.ErrNoCredentials
	}

	info, err := s.paymentInfoRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if info == nil {
		return nil, nil, apperror.NewNotFoundError("Payment info")
	}

	var state string
	if paymentType == enum.PaymentTypeCreditCard {
		state, err = s.gateway.CaptureState(ctx, creds.Token, info.PaymentID)
	} else {
		state, err = s.gateway.SaleState(ctx, creds.Token, info.PaymentID)
	}
	if err != nil {
		log.Printf("order %s: gateway state poll failed: %v", orderID, err)
		return &PaymentConfirmation{State: enum.PaymentStateFailed}, nil, nil
	}
	if state != swedbank.StateCompleted {
		return &PaymentConfirmation{State: enum.PaymentStateFailed}, nil, nil
	}

	var card *swedbank.CardInfo
	if paymentType == enum.PaymentTypeCreditCard {
		card, err = s.gateway.CardAuthorization(ctx, creds.Token, info.PaymentID)
		if err != nil {
			log.Printf("order %s: card authorization lookup failed: %v", orderID, err)
			return &PaymentConfirmation{State: enum.PaymentStateFailed}, nil, nil
		}
	}

	won, err := s.orderRepo.MarkPaid(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if !won {
		return nil, nil, apperror.ErrAlreadyPaid
	}

	receipt, err := s.receiptService.Generate(ctx, order, paymentType, card)
	if err != nil {
		return nil, nil, err
	}

	// Messenger customers get the receipt over their channel; email is the
	// fallback only.
	if order.Customer != nil && order.Customer.MessengerID == "" && order.Customer.Email != "" {
		if err := s.receiptService.emailService.SendReceiptCopy(order.Customer.Email, receipt); err != nil {
			log.Printf("order %s: receipt dispatch to %s failed: %v", orderID, order.Customer.Email, err)
		}
	}

	events := []event.Notification{event.OrderPaid(order.RestaurantID, order.ID)}
	return &PaymentConfirmation{State: enum.PaymentStateCompleted, Receipt: receipt}, events, nil
}

// ReverseReceipt reverses a captured payment and issues the return receipt.
// Already-reversed receipts and return receipts are a silent no-op. The
// gateway reversal comes first; no local state changes until it completes.
func (s *PaymentService) ReverseReceipt(ctx context.Context, receiptID uuid.UUID) (*entity.Receipt, []event.Notification, error) {
	receipt, err := s.receiptService.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, nil, err
	}
	if receipt == nil {
		return nil, nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.IsReturned || receipt.IsReturnReceipt {
		return nil, nil, nil
	}

	creds, err := s.credentialsRepo.GetByRestaurant(ctx, receipt.RestaurantID)
	if err != nil {
		return nil, nil, err
	}
	if creds == nil {
		return nil, nil, apperror.ErrNoCredentials
	}

	info, err := s.paymentInfoRepo.GetByOrderID(ctx, receipt.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if info == nil {
		return nil, nil, apperror.NewNotFoundError("Payment info")
	}

	payload := swedbank.ReversalPayload{
		Transaction: swedbank.ReversalTransaction{
			Amount:         info.Amount,
			VatAmount:      info.VatAmount,
			Description:    fmt.Sprintf("Reversal of receipt %s", receipt.SN),
			PayeeReference: newPayeeReference(receipt.OrderID),
		},
	}
	state, err := s.gateway.Reverse(ctx, creds.Token, info.PaymentID, payload)
	if err != nil {
		log.Printf("receipt %s: gateway reversal failed: %v", receiptID, err)
		return nil, nil, nil
	}
	if state != swedbank.StateCompleted {
		log.Printf("receipt %s: gateway reversal state %s", receiptID, state)
		return nil, nil, nil
	}

	won, err := s.receiptService.receiptRepo.MarkReturned(ctx, receiptID)
	if err != nil {
		return nil, nil, err
	}
	if !won {
		// A concurrent reversal beat this one to the flag; its clone
		// covers the books.
		return nil, nil, nil
	}

	clone, err := s.receiptService.CreateReturnClone(ctx, receipt)
	if err != nil {
		return nil, nil, err
	}

	events := []event.Notification{event.OrderUpdated(receipt.RestaurantID, receipt.OrderID)}
	return clone, events, nil
}

// HandleCallback acknowledges the gateway's webhook. Confirmation stays
// poll-driven; the payload is recorded for operators only.
func (s *PaymentService) HandleCallback(payload json.RawMessage) {
	log.Printf("payment callback received: %s", payload)
}

func (s *PaymentService) buildPaymentPayload(
	order *entity.Order,
	restaurant *entity.Restaurant,
	creds *entity.MerchantCredentials,
	paymentType enum.PaymentType,
	phoneNumber, payeeRef string,
	amount, vatAmount int64,
) swedbank.PaymentPayload {
	intent := "Sale"
	priceType := "Swish"
	if paymentType == enum.PaymentTypeCreditCard {
		intent = "AutoCapture"
		priceType = "CreditCard"
	}

	body := swedbank.PaymentBody{
		Operation:   "Purchase",
		Intent:      intent,
		Currency:    restaurant.Currency,
		Description: restaurant.Name,
		UserAgent:   "blipp-backend",
		Language:    "sv-SE",
		Prices: []swedbank.Price{{
			Type:      priceType,
			Amount:    amount,
			VatAmount: vatAmount,
		}},
		URLs: swedbank.URLs{
			HostURLs:    []string{s.cfg.HostURL},
			CompleteURL: s.cfg.CompleteURL,
			CallbackURL: s.cfg.CallbackURL,
		},
		PayeeInfo: swedbank.PayeeInfo{
			PayeeID:        creds.MerchantID,
			PayeeReference: payeeRef,
			PayeeName:      creds.MerchantName,
		},
	}
	if creds.TermsURL != "" {
		body.URLs.TermsOfServiceURL = creds.TermsURL
	}

	if paymentType == enum.PaymentTypeSwish {
		if phoneNumber != "" {
			body.PrefillInfo = &swedbank.PrefillInfo{Msisdn: phoneNumber}
		}
		// Messenger customers pay in-app; the paymentUrl deep link drops
		// them back into the conversation after Swish.
		if order.Customer != nil && order.Customer.MessengerID != "" && s.cfg.PaymentURL != "" {
			body.URLs.PaymentURL = s.cfg.PaymentURL
		}
	}

	return swedbank.PaymentPayload{Payment: body}
}

// newPayeeReference builds the per-attempt gateway reference. Each initiation
// and reversal gets its own, so retried payments never collide at the
// gateway.
func newPayeeReference(orderID uuid.UUID) string {
	return fmt.Sprintf("%s-%d", orderID, rand.Intn(1_000_000))
}

// minorUnits converts a decimal currency amount to integer 1/100 units.
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
