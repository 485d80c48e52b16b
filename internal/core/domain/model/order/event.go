package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// StatusChangeEvent is the payload emitted whenever an order transition
// succeeds. It is ephemeral: the fan-out channel hands it to live
// connections and then forgets it. Nothing is lost if every copy is dropped,
// because the polling refresh re-reads the order list and converges on the
// stored state.
//
// OccurredAt equals the order's new statusUpdatedAt, which makes the event
// and a later poll of the same order carry the same merge key.
type StatusChangeEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	UserID      kernel.UUID
	// Actor is who requested the transition. Stamped by the application
	// layer for auditing; not pushed to clients.
	Actor      kernel.UUID
	Previous   Status
	New        Status
	OccurredAt time.Time
}
