package enum

// PaymentType selects the payment gateway instrument.
type PaymentType string

const (
	PaymentTypeSwish      PaymentType = "Swish"
	PaymentTypeCreditCard PaymentType = "CreditCard"
)

func (p PaymentType) Valid() bool {
	return p == PaymentTypeSwish || p == PaymentTypeCreditCard
}

// PaymentState is the gateway-observed transaction state. Anything other
// than Completed is treated as not-yet-complete or failed.
type PaymentState string

const (
	PaymentStateCompleted PaymentState = "Completed"
	PaymentStateFailed    PaymentState = "Failed"
)
