// Package fanout delivers order status change events to live subscribers.
//
// The registry is the in-memory subscription table: shoppers subscribe when
// their status stream connects and are removed when it ends. Delivery is best
// effort and at-least-once for connected subscribers only; nothing is queued
// for the disconnected, because the durable order rows plus the polling path
// already guarantee eventual convergence.
package fanout

import (
	"log/slog"
	"sync"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// defaultBuffer is the per-subscriber event buffer. A consumer that lets this
// many events pile up is not draining and gets dropped.
const defaultBuffer = 16

var _ ports.EventPublisher = &Registry{}

// Registry tracks live subscriptions keyed by shopper and fans published
// events out to them. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byUser map[kernel.UUID]map[kernel.UUID]*Subscriber
	buffer int
	logger *slog.Logger
}

// NewRegistry creates an empty subscription registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		byUser: make(map[kernel.UUID]map[kernel.UUID]*Subscriber),
		buffer: defaultBuffer,
		logger: logger.With(slog.String("component", "fanout")),
	}
}

// Subscribe registers a new listener for the shopper's status events.
// The same shopper may hold any number of concurrent subscriptions; each
// receives its own copy of every event.
func (r *Registry) Subscribe(userID kernel.UUID) (*Subscriber, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	sub := newSubscriber(userID, r.buffer)

	r.mu.Lock()
	defer r.mu.Unlock()
	subs, ok := r.byUser[userID]
	if !ok {
		subs = make(map[kernel.UUID]*Subscriber)
		r.byUser[userID] = subs
	}
	subs[sub.ID()] = sub

	return sub, nil
}

// Unsubscribe ends a subscription and closes its event channel.
// Unsubscribing twice, or unsubscribing a dropped subscriber, is a no-op.
func (r *Registry) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	r.mu.Lock()
	r.remove(sub)
	r.mu.Unlock()

	sub.close()
}

// Publish fans an event out to every subscriber of the event's shopper.
//
// Publish never blocks: a subscriber whose buffer is full is closed and
// dropped on the spot. Shoppers with no subscribers cost one map lookup.
func (r *Registry) Publish(event order.StatusChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.byUser[event.UserID]
	if !ok {
		return
	}

	for _, sub := range subs {
		select {
		case sub.events <- event:
		default:
			r.remove(sub)
			sub.close()
			r.logger.Warn("dropped slow subscriber",
				slog.String("subscriptionId", sub.ID().String()),
				slog.String("userId", sub.UserID().String()),
			)
		}
	}
}

// Sweep removes subscriptions that were closed without being unsubscribed and
// returns how many it removed. Run periodically as a safety net against
// connection teardown paths that missed their Unsubscribe.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, subs := range r.byUser {
		for _, sub := range subs {
			if sub.IsClosed() {
				r.remove(sub)
				removed++
			}
		}
	}
	return removed
}

// SubscriberCount returns how many live subscriptions the shopper holds.
func (r *Registry) SubscriberCount(userID kernel.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID])
}

// remove must be called with the write lock held.
func (r *Registry) remove(sub *Subscriber) {
	subs, ok := r.byUser[sub.UserID()]
	if !ok {
		return
	}
	delete(subs, sub.ID())
	if len(subs) == 0 {
		delete(r.byUser, sub.UserID())
	}
}
