package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types pushed to restaurant subscribers.
const (
	TypeOrderUpdated   = "OrderUpdated"
	TypeOrderPaid      = "OrderPaid"
	TypeCategoryStatus = "CategoryStatusChanged"
)

// OrderTopic is the restaurant-scoped pub/sub topic for order updates.
func OrderTopic(restaurantID uuid.UUID) string {
	return fmt.Sprintf("order.updated.%s", restaurantID)
}

// Notification is an effect a core service asks the adapter layer to
// perform after the service call returns. Services never publish directly;
// they stay pure and return the events they produced.
type Notification struct {
	Type         string    `json:"type"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	OrderID      uuid.UUID `json:"order_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// OrderUpdated signals that an order's state changed and subscribers should
// re-read it.
func OrderUpdated(restaurantID, orderID uuid.UUID) Notification {
	return Notification{
		Type:         TypeOrderUpdated,
		RestaurantID: restaurantID,
		OrderID:      orderID,
		OccurredAt:   time.Now().UTC(),
	}
}

// OrderPaid signals a completed payment capture.
func OrderPaid(restaurantID, orderID uuid.UUID) Notification {
	return Notification{
		Type:         TypeOrderPaid,
		RestaurantID: restaurantID,
		OrderID:      orderID,
		OccurredAt:   time.Now().UTC(),
	}
}

// CategoryStatus signals a food/drink status transition.
func CategoryStatus(restaurantID, orderID uuid.UUID) Notification {
	return Notification{
		Type:         TypeCategoryStatus,
		RestaurantID: restaurantID,
		OrderID:      orderID,
		OccurredAt:   time.Now().UTC(),
	}
}

// Notifier delivers notifications to restaurant subscribers. Delivery
// failures are logged by implementations, never escalated to the caller.
type Notifier interface {
	Publish(notifications ...Notification)
}
