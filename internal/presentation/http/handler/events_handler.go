package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OrderEventSubscriber opens a live subscription on a restaurant's order
// topic.
type OrderEventSubscriber interface {
	Subscribe(ctx context.Context, restaurantID uuid.UUID) *redis.PubSub
}

// EventsHandler streams order notifications to restaurant dashboards.
type EventsHandler struct {
	subscriber OrderEventSubscriber
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(subscriber OrderEventSubscriber) *EventsHandler {
	return &EventsHandler{subscriber: subscriber}
}

// Stream handles GET /restaurants/:id/events as server-sent events. The
// connection stays open until the client goes away.
func (h *EventsHandler) Stream(c *gin.Context) {
	restaurantID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	sub := h.subscriber.Subscribe(c.Request.Context(), restaurantID)
	defer sub.Close()
	ch := sub.Channel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("order", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
