// Package ordersync keeps a client-side mirror of a shopper's orders
// consistent while updates arrive over two channels at once: pushed status
// change events and periodic snapshot polls. Both feed the same reconciler,
// which applies an update only when it is strictly newer than what the mirror
// already holds, so duplicated and reordered deliveries converge to the same
// state.
package ordersync

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderView is the client's picture of a single order.
type OrderView struct {
	ID              kernel.UUID
	OrderNumber     string
	Status          order.Status
	StatusUpdatedAt time.Time
}
