package ports

import (
	"storefront/internal/core/domain/model/order"
)

// EventPublisher delivers order status change events to whoever is listening
// right now.
//
// Publish must never block the caller: delivery is best effort and
// at-least-once for connected subscribers only. The durable order row is the
// source of truth; the polling path recovers anything a subscriber misses.
type EventPublisher interface {
	Publish(event order.StatusChangeEvent)
}
