// Package queries contains read operations in the CQRS architecture.
// Query handlers bypass the aggregates and read projection-shaped rows
// straight from the database.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetOrdersByUserQueryIsNotConstructed = errors.New(
		"GetOrdersByUserQuery must be created via NewGetOrdersByUserQuery constructor",
	)
)

// GetOrdersByUserQuery retrieves every order a shopper has placed.
// This is the read the polling client issues on each refresh cycle.
type GetOrdersByUserQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersByUserQuery creates a query for a shopper's order history.
func NewGetOrdersByUserQuery(userID kernel.UUID) (GetOrdersByUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetOrdersByUserQuery{}, err
	}
	return GetOrdersByUserQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByUserQueryIsNotConstructed)
}

// UserID returns the shopper whose orders are requested.
func (q GetOrdersByUserQuery) UserID() kernel.UUID {
	return q.userID
}

// OrderItemResponse is one line item row inside an order response.
type OrderItemResponse struct {
	ProductID   kernel.UUID `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	UnitPrice   string      `json:"unitPrice"`
}

// GetOrdersByUserQueryResponse is one order in the shopper's history.
// Status travels as its lowercase wire name; StatusUpdatedAt is the merge key
// clients use to reconcile this row against pushed status events.
type GetOrdersByUserQueryResponse struct {
	ID              kernel.UUID         `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     string              `json:"totalAmount"`
	PaymentMethod   string              `json:"paymentMethod"`
	CreatedAt       time.Time           `json:"createdAt"`
	StatusUpdatedAt time.Time           `json:"statusUpdatedAt"`
}
