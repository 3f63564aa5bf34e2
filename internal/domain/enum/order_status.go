package enum

// OrderStatus tracks the preparation state of one category (food or drink)
// of an order.
type OrderStatus string

const (
	OrderStatusNotOrdered OrderStatus = "NOT_ORDERED"
	OrderStatusOrdered    OrderStatus = "ORDERED"
	OrderStatusPreparing  OrderStatus = "PREPARING"
	OrderStatusDone       OrderStatus = "DONE"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

// ActiveOrderStatuses are the statuses in which the kitchen or bar is still
// working on the category.
var ActiveOrderStatuses = []OrderStatus{OrderStatusOrdered, OrderStatusPreparing}

func (s OrderStatus) IsActive() bool {
	for _, active := range ActiveOrderStatuses {
		if s == active {
			return true
		}
	}
	return false
}
