package queries

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersByUserQueryHandler reads a shopper's order history from the
// database, newest first.
type GetOrdersByUserQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByUserQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByUserQueryHandler(db *gorm.DB) GetOrdersByUserQueryHandler {
	return GetOrdersByUserQueryHandler{db: db}
}

type orderItemRow struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unitPrice"`
}

// Handle executes the query. A shopper with no orders gets an empty slice.
func (h GetOrdersByUserQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByUserQuery,
) ([]GetOrdersByUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersByUserQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			items,
			total_amount,
			payment_method,
			created_at,
			status_updated_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, query.UserID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var itemsJSON []byte
		var totalAmount decimal.Decimal
		var resp GetOrdersByUserQueryResponse
		var createdAt, statusUpdatedAt time.Time

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Status,
			&itemsJSON,
			&totalAmount,
			&resp.PaymentMethod,
			&createdAt,
			&statusUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		resp.TotalAmount = totalAmount.String()

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CreatedAt = createdAt
		resp.StatusUpdatedAt = statusUpdatedAt

		var itemRows []orderItemRow
		if err = json.Unmarshal(itemsJSON, &itemRows); err != nil {
			return nil, err
		}
		resp.Items = make([]OrderItemResponse, 0, len(itemRows))
		for _, row := range itemRows {
			productID, pErr := kernel.UUIDFromBytes(row.ProductID[:])
			if pErr != nil {
				return nil, pErr
			}
			resp.Items = append(resp.Items, OrderItemResponse{
				ProductID:   productID,
				ProductName: row.ProductName,
				Quantity:    row.Quantity,
				UnitPrice:   row.UnitPrice,
			})
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
