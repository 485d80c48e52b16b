package fanout

import (
	"sync"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Subscriber is one live listener for a shopper's status events.
//
// Events arrive on a bounded buffered channel. The registry never blocks on a
// subscriber: if the buffer is full when an event arrives, the subscriber is
// closed and dropped instead. A closed channel tells the consumer it fell
// behind and must resynchronize by re-reading the order list.
type Subscriber struct {
	id     kernel.UUID
	userID kernel.UUID
	events chan order.StatusChangeEvent

	closeOnce sync.Once
	closed    chan struct{}
}

func newSubscriber(userID kernel.UUID, buffer int) *Subscriber {
	return &Subscriber{
		id:     kernel.NewUUID(),
		userID: userID,
		events: make(chan order.StatusChangeEvent, buffer),
		closed: make(chan struct{}),
	}
}

// ID returns the subscription's identifier, distinct per connection even for
// the same shopper on several tabs.
func (s *Subscriber) ID() kernel.UUID {
	return s.id
}

// UserID returns the shopper this subscription listens for.
func (s *Subscriber) UserID() kernel.UUID {
	return s.userID
}

// Events returns the channel status events arrive on. The channel is closed
// when the subscription ends, whether by Unsubscribe or by falling behind.
func (s *Subscriber) Events() <-chan order.StatusChangeEvent {
	return s.events
}

// IsClosed reports whether the subscription has ended.
func (s *Subscriber) IsClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

func (s *Subscriber) close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		close(s.events)
	})
}
