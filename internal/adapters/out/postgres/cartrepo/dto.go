// Package cartrepo provides data transfer objects and mapping functions for cart persistence.
package cartrepo

import (
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for a shopper's cart.
// One row per shopper; entries live in their own table so the cart read can
// join them against the product catalog.
type CartDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for cart entities.
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO represents one cart entry row. Position preserves insertion
// order so the cart renders the way the shopper built it.
type CartItemDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	Position  int
}

// TableName specifies the database table name for cart entry rows.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// fromDomain converts a cart aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) (CartDTO, []CartItemDTO) {
	items := aggregate.Items()
	itemDTOs := make([]CartItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, CartItemDTO{
			UserID:    aggregate.UserID().Bytes(),
			ProductID: item.ProductID.Bytes(),
			Quantity:  item.Quantity,
			Position:  i,
		})
	}

	return CartDTO{
		UserID:    aggregate.UserID().Bytes(),
		UpdatedAt: aggregate.UpdatedAt(),
	}, itemDTOs
}

// toDomain converts database rows to a cart aggregate.
func toDomain(dto CartDTO, itemDTOs []CartItemDTO) (*cart.Cart, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(itemDTOs))
	for _, row := range itemDTOs {
		productID, pErr := kernel.UUIDFromBytes(row.ProductID[:])
		if pErr != nil {
			return nil, pErr
		}
		items = append(items, cart.Item{ProductID: productID, Quantity: row.Quantity})
	}

	return cart.RestoreCart(userID, items, dto.UpdatedAt)
}
