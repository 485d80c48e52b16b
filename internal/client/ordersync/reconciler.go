package ordersync

import (
	"sort"
	"sync"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Reconciler merges pushed events and polled snapshots into one view of the
// shopper's orders. The merge rule is the same for both sources: an update
// wins only when its StatusUpdatedAt is strictly later than the held one.
// Equal or older timestamps are no-ops, which makes applying any mix of
// duplicated or reordered updates idempotent and order-independent.
type Reconciler struct {
	mu     sync.Mutex
	orders map[kernel.UUID]OrderView

	// onChange, when set, is invoked for every accepted update with the new
	// view. Called without the lock held.
	onChange func(OrderView)
}

// NewReconciler creates an empty reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{
		orders: make(map[kernel.UUID]OrderView),
	}
}

// OnChange registers a callback fired once per accepted update.
func (r *Reconciler) OnChange(fn func(OrderView)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// ApplyEvent merges a pushed status change. It reports whether the event
// changed the held view.
func (r *Reconciler) ApplyEvent(event order.StatusChangeEvent) bool {
	return r.apply(OrderView{
		ID:              event.OrderID,
		OrderNumber:     event.OrderNumber,
		Status:          event.New,
		StatusUpdatedAt: event.OccurredAt,
	})
}

// ApplySnapshot merges a polled order list and returns how many rows changed
// the held state. Orders absent from the snapshot are kept; a poll is a
// refresh, not the authority on existence.
func (r *Reconciler) ApplySnapshot(views []OrderView) int {
	applied := 0
	for _, view := range views {
		if r.apply(view) {
			applied++
		}
	}
	return applied
}

func (r *Reconciler) apply(view OrderView) bool {
	r.mu.Lock()
	current, known := r.orders[view.ID]
	if known && !view.StatusUpdatedAt.After(current.StatusUpdatedAt) {
		r.mu.Unlock()
		return false
	}
	r.orders[view.ID] = view
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange(view)
	}
	return true
}

// Get returns the held view of one order.
func (r *Reconciler) Get(orderID kernel.UUID) (OrderView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.orders[orderID]
	return view, ok
}

// Orders returns all held views, newest status change first.
func (r *Reconciler) Orders() []OrderView {
	r.mu.Lock()
	views := make([]OrderView, 0, len(r.orders))
	for _, view := range r.orders {
		views = append(views, view)
	}
	r.mu.Unlock()

	sort.Slice(views, func(i, j int) bool {
		return views[i].StatusUpdatedAt.After(views[j].StatusUpdatedAt)
	})
	return views
}
