package commands

import (
	"sync"

	"storefront/internal/core/domain/model/kernel"
)

// OrderLocks serializes status transitions per order.
//
// Two concurrent transitions on the same order take the same mutex, so the
// second one always observes the status the first one committed and is
// validated against it. Transitions on different orders proceed in parallel.
//
// Locks are created on first use and kept for the life of the process. The
// map grows with the set of orders touched since startup, which is bounded by
// order volume and small next to the rows themselves.
type OrderLocks struct {
	mu    sync.Mutex
	locks map[kernel.UUID]*sync.Mutex
}

// NewOrderLocks creates an empty lock registry.
func NewOrderLocks() *OrderLocks {
	return &OrderLocks{
		locks: make(map[kernel.UUID]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given order, creating it if needed.
// The caller must call the returned unlock function when done.
func (l *OrderLocks) Lock(orderID kernel.UUID) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[orderID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[orderID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
