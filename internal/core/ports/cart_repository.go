package ports

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
// Each shopper owns at most one cart row, keyed by user id.
type CartRepository interface {
	// Get retrieves the shopper's cart.
	// Returns errs.ErrObjectNotFound when the shopper has no cart yet.
	Get(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// Save upserts the shopper's cart, replacing its stored entries.
	Save(ctx context.Context, aggregate *cart.Cart) error
}
