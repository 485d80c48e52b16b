// Package cartview holds the client-side cart mirror. Edits apply locally
// first so the UI never waits on the network; each entry then tracks whether
// the server has confirmed the pending value or the edit was rolled back to
// the last confirmed one.
package cartview

import (
	"sort"
	"sync"

	"storefront/internal/core/domain/model/kernel"
)

// EntryState is the per-entry position in the optimistic update lifecycle.
type EntryState int

const (
	// Confirmed means the displayed quantity matches the server.
	Confirmed EntryState = iota
	// Optimistic means a local edit is displayed but not yet acknowledged.
	Optimistic
	// RolledBack means the last edit was rejected and the entry reverted to
	// its confirmed quantity. The next local edit clears the marker.
	RolledBack
)

// String returns the lowercase state name.
func (s EntryState) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Optimistic:
		return "optimistic"
	case RolledBack:
		return "rolledBack"
	default:
		return "unknown"
	}
}

// Entry is the displayed view of one cart line.
type Entry struct {
	ProductID kernel.UUID
	Quantity  int
	State     EntryState
}

type entry struct {
	confirmed int
	pending   int
	state     EntryState
	position  int
}

// CartView mirrors the shopper's cart with optimistic local edits.
type CartView struct {
	mu      sync.Mutex
	entries map[kernel.UUID]*entry
	nextPos int
}

// NewCartView creates an empty mirror.
func NewCartView() *CartView {
	return &CartView{entries: make(map[kernel.UUID]*entry)}
}

// ApplyLocal records a local edit and displays it immediately. Quantity zero
// stages a removal. The entry stays Optimistic until Confirm or Rollback.
func (v *CartView) ApplyLocal(productID kernel.UUID, quantity int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[productID]
	if !ok {
		e = &entry{position: v.nextPos}
		v.nextPos++
		v.entries[productID] = e
	}
	e.pending = quantity
	e.state = Optimistic
}

// Confirm marks the pending quantity as accepted by the server. A confirmed
// removal drops the entry.
func (v *CartView) Confirm(productID kernel.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[productID]
	if !ok {
		return
	}
	if e.pending == 0 {
		delete(v.entries, productID)
		return
	}
	e.confirmed = e.pending
	e.state = Confirmed
}

// Rollback reverts a rejected edit to the last confirmed quantity. An entry
// the server never held disappears.
func (v *CartView) Rollback(productID kernel.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[productID]
	if !ok {
		return
	}
	if e.confirmed == 0 {
		delete(v.entries, productID)
		return
	}
	e.pending = e.confirmed
	e.state = RolledBack
}

// ReplaceConfirmed overwrites the mirror with the server's cart. Entries with
// edits still in flight keep their optimistic quantity; everything else takes
// the server value.
func (v *CartView) ReplaceConfirmed(quantities map[kernel.UUID]int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for productID, e := range v.entries {
		serverQty, held := quantities[productID]
		if !held {
			if e.state != Optimistic {
				delete(v.entries, productID)
			}
			continue
		}
		e.confirmed = serverQty
		if e.state != Optimistic {
			e.pending = serverQty
			e.state = Confirmed
		}
	}
	for productID, serverQty := range quantities {
		if _, ok := v.entries[productID]; ok {
			continue
		}
		v.entries[productID] = &entry{
			confirmed: serverQty,
			pending:   serverQty,
			state:     Confirmed,
			position:  v.nextPos,
		}
		v.nextPos++
	}
}

// Quantity returns the displayed quantity and state of one entry.
func (v *CartView) Quantity(productID kernel.UUID) (int, EntryState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	e, ok := v.entries[productID]
	if !ok {
		return 0, Confirmed, false
	}
	return e.pending, e.state, true
}

// Entries returns the displayed cart lines in insertion order.
func (v *CartView) Entries() []Entry {
	v.mu.Lock()
	type positioned struct {
		Entry
		pos int
	}
	lines := make([]positioned, 0, len(v.entries))
	for productID, e := range v.entries {
		lines = append(lines, positioned{
			Entry: Entry{ProductID: productID, Quantity: e.pending, State: e.state},
			pos:   e.position,
		})
	}
	v.mu.Unlock()

	sort.Slice(lines, func(i, j int) bool { return lines[i].pos < lines[j].pos })
	result := make([]Entry, len(lines))
	for i, line := range lines {
		result[i] = line.Entry
	}
	return result
}
