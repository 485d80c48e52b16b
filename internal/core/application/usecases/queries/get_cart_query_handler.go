package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads a shopper's cart joined with the product catalog,
// so every entry carries the current price and stock flag.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart queries.
// Requires a GORM database connection for query execution.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the query. Entries whose product has been removed from the
// catalog are dropped from the response rather than failing it.
func (h GetCartQueryHandler) Handle(
	ctx context.Context,
	query GetCartQuery,
) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	resp := GetCartQueryResponse{
		UserID: query.UserID(),
		Items:  make([]CartItemResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.name,
			ci.quantity,
			p.price,
			p.in_stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.position
	`, query.UserID().String()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var id uuid.UUID
		var item CartItemResponse
		var unitPrice decimal.Decimal

		err = rows.Scan(
			&id,
			&item.ProductName,
			&item.Quantity,
			&unitPrice,
			&item.InStock,
		)
		if err != nil {
			return GetCartQueryResponse{}, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		item.ProductID = productID

		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		item.UnitPrice = unitPrice.String()
		item.Subtotal = subtotal.String()
		total = total.Add(subtotal)

		resp.Items = append(resp.Items, item)
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	resp.Total = total.String()
	return resp, nil
}
