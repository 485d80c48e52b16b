package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Implementations classify failures: a missing row surfaces as
// errs.ErrObjectNotFound, anything infrastructural as errs.ErrTransientStoreError.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByUser retrieves all orders placed by a shopper, newest first.
	// A shopper with no orders yields an empty slice, not an error.
	GetByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)
}
