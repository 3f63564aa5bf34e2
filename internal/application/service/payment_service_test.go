package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golden283219/blipp-backend/internal/config"
	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/internal/domain/event"
	"github.com/golden283219/blipp-backend/pkg/apperror"
	"github.com/golden283219/blipp-backend/pkg/swedbank"
)

type paymentFixture struct {
	*receiptFixture

	paymentInfoRepo *fakePaymentInfoRepo
	gateway         *fakeGateway
	service         *PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		receiptFixture:  newReceiptFixture(t),
		paymentInfoRepo: newFakePaymentInfoRepo(),
		gateway: &fakeGateway{
			createID:     "/psp/swish/payments/abc123",
			saleState:    swedbank.StateCompleted,
			captureState: swedbank.StateCompleted,
			reverseState: swedbank.StateCompleted,
			card: &swedbank.CardInfo{
				CardBrand: "Visa",
				CardType:  "Credit Card",
				MaskedPan: "489537******1234",
			},
		},
	}

	credsRepo := &fakeCredentialsRepo{creds: map[uuid.UUID]entity.MerchantCredentials{
		f.restaurantID: {
			ID:           uuid.New(),
			RestaurantID: f.restaurantID,
			MerchantID:   "merchant-1",
			MerchantName: "Bistro Norr AB",
			Token:        "secret-token",
		},
	}}

	f.service = NewPaymentService(
		f.orderRepo,
		f.paymentInfoRepo,
		credsRepo,
		f.restaurantRepo,
		f.pricer,
		f.receiptFixture.service,
		f.gateway,
		config.PaymentConfig{
			HostURL:     "https://app.example.com",
			CompleteURL: "https://app.example.com/complete",
			CallbackURL: "https://api.example.com/api/v1/orders/payment-callback",
			PaymentURL:  "https://app.example.com/payment",
		},
	)
	return f
}

func TestInitiatePaymentSwish(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	initiation, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "+46701234567")
	require.NoError(t, err)
	require.NotNil(t, initiation)

	assert.Equal(t, "/psp/swish/payments/abc123", initiation.PaymentID)
	require.Len(t, initiation.Operations, 1)

	info, err := f.paymentInfoRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, enum.PaymentTypeSwish, info.Type)
	// 377.00 SEK in minor units.
	assert.Equal(t, int64(37700), info.Amount)
	assert.NotEmpty(t, info.PayeeReference)

	require.Len(t, f.gateway.created, 1)
	payment := f.gateway.created[0].Payment
	assert.Equal(t, "Sale", payment.Intent)
	assert.Equal(t, "SEK", payment.Currency)
	require.NotNil(t, payment.PrefillInfo)
	assert.Equal(t, "+46701234567", payment.PrefillInfo.Msisdn)
}

func TestInitiatePaymentCardUsesAutoCapture(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	initiation, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeCreditCard, "")
	require.NoError(t, err)
	require.NotNil(t, initiation)

	require.Len(t, f.gateway.created, 1)
	payment := f.gateway.created[0].Payment
	assert.Equal(t, "AutoCapture", payment.Intent)
	assert.Equal(t, "CreditCard", payment.Prices[0].Type)
	assert.Nil(t, payment.PrefillInfo)
}

func TestInitiatePaymentGatewayFailureLeavesNothingBehind(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)
	f.gateway.createErr = errors.New("gateway timeout")

	initiation, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)
	assert.Nil(t, initiation)

	info, err := f.paymentInfoRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestInitiatePaymentRetryReplacesPaymentInfo(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)
	first, err := f.paymentInfoRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)
	second, err := f.paymentInfoRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.PayeeReference, second.PayeeReference)
}

func TestInitiatePaymentEmptyOrder(t *testing.T) {
	f := newPaymentFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, err := f.service.InitiatePayment(context.Background(), orderID, enum.PaymentTypeSwish, "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestInitiatePaymentUnknownType(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentType("Cash"), "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestConfirmPaymentCompletedGeneratesReceipt(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)

	confirmation, events, err := f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeSwish)
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStateCompleted, confirmation.State)
	require.NotNil(t, confirmation.Receipt)
	assert.Equal(t, "7000000001", confirmation.Receipt.SN)

	require.Len(t, events, 1)
	assert.Equal(t, event.TypeOrderPaid, events[0].Type)

	updated, err := f.orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPaid)
}

func TestConfirmPaymentCardAttachesMaskedCard(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeCreditCard, "")
	require.NoError(t, err)

	confirmation, _, err := f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeCreditCard)
	require.NoError(t, err)

	require.NotNil(t, confirmation.Receipt)
	assert.Equal(t, "Visa", confirmation.Receipt.CardType)
	assert.Equal(t, "************1234", confirmation.Receipt.CardNumber)
}

func TestConfirmPaymentIncompleteStateFails(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)
	f.gateway.saleState = "Pending"

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)

	confirmation, events, err := f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeSwish)
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStateFailed, confirmation.State)
	assert.Nil(t, confirmation.Receipt)
	assert.Empty(t, events)

	updated, err := f.orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPaid)
}

func TestConfirmPaymentGatewayErrorFails(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)
	f.gateway.stateErr = errors.New("connection reset")

	confirmation, _, err := f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeSwish)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStateFailed, confirmation.State)
}

func TestConfirmPaymentTwiceRejected(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)

	_, _, err = f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeSwish)
	require.NoError(t, err)

	_, _, err = f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeSwish)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrAlreadyPaid)
}

func TestConfirmPaymentEmailsFallbackCustomers(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)
	f.orderRepo.customers[order.CustomerID] = entity.Customer{
		ID:        order.CustomerID,
		FirstName: "Anna",
		LastName:  "Svensson",
		Email:     "anna@example.com",
	}

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)

	_, _, err = f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeSwish)
	require.NoError(t, err)

	assert.Equal(t, []string{"anna@example.com"}, f.mailer.receiptSends)
}

func TestConfirmPaymentSkipsEmailForMessengerCustomers(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)
	f.orderRepo.customers[order.CustomerID] = entity.Customer{
		ID:          order.CustomerID,
		FirstName:   "Anna",
		LastName:    "Svensson",
		Email:       "anna@example.com",
		MessengerID: "m-100",
	}

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)

	_, _, err = f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeSwish)
	require.NoError(t, err)

	assert.Empty(t, f.mailer.receiptSends)
}

// confirmedReceipt drives a full initiate-confirm cycle and returns the
// fiscal receipt it produced.
func (f *paymentFixture) confirmedReceipt(t *testing.T) *entity.Receipt {
	t.Helper()
	order := f.readyOrder(t)

	_, err := f.service.InitiatePayment(context.Background(), order.ID, enum.PaymentTypeSwish, "")
	require.NoError(t, err)

	confirmation, _, err := f.service.ConfirmPayment(context.Background(), order.ID, enum.PaymentTypeSwish)
	require.NoError(t, err)
	require.NotNil(t, confirmation.Receipt)
	return confirmation.Receipt
}

func TestReverseReceiptCreatesReturnSibling(t *testing.T) {
	f := newPaymentFixture(t)
	receipt := f.confirmedReceipt(t)

	clone, events, err := f.service.ReverseReceipt(context.Background(), receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, clone)

	assert.True(t, clone.IsReturnReceipt)
	assert.NotEqual(t, receipt.SN, clone.SN)
	assert.True(t, clone.Total.Equal(receipt.Total))
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeOrderUpdated, events[0].Type)

	original, err := f.receiptRepo.GetByID(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.True(t, original.IsReturned)
	assert.Equal(t, 1, f.gateway.reverseCalls)
}

func TestReverseReceiptTwiceIsSilentNoOp(t *testing.T) {
	f := newPaymentFixture(t)
	receipt := f.confirmedReceipt(t)

	_, _, err := f.service.ReverseReceipt(context.Background(), receipt.ID)
	require.NoError(t, err)

	clone, events, err := f.service.ReverseReceipt(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Nil(t, clone)
	assert.Empty(t, events)
	assert.Equal(t, 1, f.gateway.reverseCalls)
}

func TestReverseReceiptOnReturnReceiptIsNoOp(t *testing.T) {
	f := newPaymentFixture(t)
	receipt := f.confirmedReceipt(t)

	clone, _, err := f.service.ReverseReceipt(context.Background(), receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, clone)

	again, events, err := f.service.ReverseReceipt(context.Background(), clone.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Empty(t, events)
	assert.Equal(t, 1, f.gateway.reverseCalls)
}

func TestReverseReceiptGatewayFailureLeavesReceiptUntouched(t *testing.T) {
	f := newPaymentFixture(t)
	receipt := f.confirmedReceipt(t)
	f.gateway.reverseErr = errors.New("gateway down")

	clone, events, err := f.service.ReverseReceipt(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Nil(t, clone)
	assert.Empty(t, events)

	original, err := f.receiptRepo.GetByID(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.False(t, original.IsReturned)
}

func TestReverseReceiptIncompleteReversalStateLeavesReceiptUntouched(t *testing.T) {
	f := newPaymentFixture(t)
	receipt := f.confirmedReceipt(t)
	f.gateway.reverseState = "Failed"

	clone, _, err := f.service.ReverseReceipt(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Nil(t, clone)

	original, err := f.receiptRepo.GetByID(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.False(t, original.IsReturned)
}

func TestReverseReceiptUnknownReceipt(t *testing.T) {
	f := newPaymentFixture(t)

	_, _, err := f.service.ReverseReceipt(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMinorUnits(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.readyOrder(t)

	priced, err := f.pricer.PriceOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, int64(37700), minorUnits(priced.Charged()))
}
