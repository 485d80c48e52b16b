package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetCartQueryIsNotConstructed = errors.New(
		"GetCartQuery must be created via NewGetCartQuery constructor",
	)
)

// GetCartQuery retrieves a shopper's cart priced against the live catalog.
type GetCartQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for a shopper's cart.
func NewGetCartQuery(userID kernel.UUID) (GetCartQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// UserID returns the shopper whose cart is requested.
func (q GetCartQuery) UserID() kernel.UUID {
	return q.userID
}

// CartItemResponse is one cart entry joined with its live catalog row.
// Price reflects the catalog right now, not any earlier instant; totals here
// can differ from what an order placed yesterday froze.
type CartItemResponse struct {
	ProductID   kernel.UUID `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	UnitPrice   string      `json:"unitPrice"`
	Subtotal    string      `json:"subtotal"`
	InStock     bool        `json:"inStock"`
}

// GetCartQueryResponse is the shopper's cart with a live-priced total.
// A shopper who never added anything gets an empty item list.
type GetCartQueryResponse struct {
	UserID kernel.UUID        `json:"userId"`
	Items  []CartItemResponse `json:"items"`
	Total  string             `json:"total"`
}
