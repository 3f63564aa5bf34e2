package enum

// DeliveryType describes how an order reaches the customer.
type DeliveryType string

const (
	DeliveryTypeReservation DeliveryType = "RESERVATION"
	DeliveryTypeTakeaway    DeliveryType = "TAKEAWAY"
	DeliveryTypeDelivery    DeliveryType = "DELIVERY"
)

// AllDeliveryTypes lists every supported delivery type.
var AllDeliveryTypes = []DeliveryType{
	DeliveryTypeReservation,
	DeliveryTypeTakeaway,
	DeliveryTypeDelivery,
}

func (d DeliveryType) Valid() bool {
	for _, t := range AllDeliveryTypes {
		if d == t {
			return true
		}
	}
	return false
}
