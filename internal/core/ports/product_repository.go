package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
)

// ProductRepository defines the read contract for the product catalog.
type ProductRepository interface {
	// Get retrieves one catalog entry by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetByIDs retrieves catalog entries for the given identifiers.
	// Missing products are simply absent from the result map; the caller
	// decides whether that is an error.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)
}
