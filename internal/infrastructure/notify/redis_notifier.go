package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/golden283219/blipp-backend/internal/domain/event"
)

const publishTimeout = 2 * time.Second

// RedisNotifier publishes order notifications on restaurant-scoped Redis
// channels. Publishing is best effort: a failed publish is logged and the
// remaining notifications are still attempted.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier backed by the given Redis address.
func NewRedisNotifier(addr string) *RedisNotifier {
	return &RedisNotifier{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Publish sends each notification to its restaurant's order topic.
func (n *RedisNotifier) Publish(notifications ...event.Notification) {
	for _, notification := range notifications {
		payload, err := json.Marshal(notification)
		if err != nil {
			log.Printf("notify: failed to encode %s event: %v", notification.Type, err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		topic := event.OrderTopic(notification.RestaurantID)
		if err := n.client.Publish(ctx, topic, payload).Err(); err != nil {
			log.Printf("notify: failed to publish %s to %s: %v", notification.Type, topic, err)
		}
		cancel()
	}
}

// Subscribe returns a subscription on the restaurant's order topic. The
// caller owns the subscription and must close it.
func (n *RedisNotifier) Subscribe(ctx context.Context, restaurantID uuid.UUID) *redis.PubSub {
	return n.client.Subscribe(ctx, event.OrderTopic(restaurantID))
}

// Close releases the underlying Redis connection.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
