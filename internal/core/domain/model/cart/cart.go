package cart

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created
	// through the NewCart or RestoreCart factory methods.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")
)

// maxCartQuantity bounds a single cart entry, mirroring the order line item
// bound so a cart that validates can always check out.
const maxCartQuantity = 999

// Item is one entry in a shopping cart. The cart stores only the product
// reference and the desired quantity; prices stay in the catalog and are read
// live, so a cart shown tomorrow reflects tomorrow's prices.
type Item struct {
	ProductID kernel.UUID
	Quantity  int
}

// Cart is the per-shopper shopping cart aggregate. Each shopper owns exactly
// one cart, identified by their user id.
//
// Cart follows these invariants:
//   - Every entry has a valid product reference and quantity in [1, 999]
//   - At most one entry per product; adding the same product merges quantities
//   - Removing an absent product or clearing an empty cart is a no-op
//   - Can only be created through NewCart or RestoreCart
//
// Mutations are not safe for concurrent use; callers serialize per shopper.
type Cart struct {
	userID    kernel.UUID
	items     []Item
	updatedAt time.Time

	isConstructed bool
}

// NewCart creates an empty cart for the given shopper.
func NewCart(userID kernel.UUID, now time.Time) (*Cart, error) {
	c := &Cart{
		isConstructed: true,
		updatedAt:     now,
	}
	if err := c.setUserID(userID); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCart reconstructs a cart aggregate from persistence.
// Stored entries are validated so corrupt rows cannot produce a broken cart.
func RestoreCart(userID kernel.UUID, items []Item, updatedAt time.Time) (*Cart, error) {
	c := &Cart{
		isConstructed: true,
		updatedAt:     updatedAt,
	}
	if err := c.setUserID(userID); err != nil {
		return nil, err
	}

	c.items = make([]Item, 0, len(items))
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
		if _, ok := seen[item.ProductID]; ok {
			return nil, errs.NewValueIsInvalidError("items")
		}
		seen[item.ProductID] = struct{}{}
		c.items = append(c.items, item)
	}
	return c, nil
}

// Validate ensures the Cart instance was properly constructed through a
// factory method.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// UserID returns the owning shopper's identifier.
func (c *Cart) UserID() kernel.UUID {
	return c.userID
}

// UpdatedAt returns the instant of the last mutation.
func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// Items returns a copy of the cart entries in insertion order.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// IsEmpty reports whether the cart has no entries.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Contains reports whether the cart holds an entry for the product.
func (c *Cart) Contains(productID kernel.UUID) bool {
	for _, item := range c.items {
		if item.ProductID.IsEqual(productID) {
			return true
		}
	}
	return false
}

// AddItem adds a product to the cart. If the product is already present the
// quantities merge; the merged quantity must still fit the entry bound.
func (c *Cart) AddItem(productID kernel.UUID, quantity int, now time.Time) error {
	if err := validateItem(Item{ProductID: productID, Quantity: quantity}); err != nil {
		return err
	}

	for i, item := range c.items {
		if item.ProductID.IsEqual(productID) {
			merged := item.Quantity + quantity
			if merged > maxCartQuantity {
				return errs.NewValueIsOutOfRangeError("quantity", merged, 1, maxCartQuantity)
			}
			c.items[i].Quantity = merged
			c.updatedAt = now
			return nil
		}
	}

	c.items = append(c.items, Item{ProductID: productID, Quantity: quantity})
	c.updatedAt = now
	return nil
}

// SetQuantity replaces the quantity for a product outright.
//
// A zero quantity removes the entry and is not an error, so a shopper stepping
// the count down to nothing behaves the same as pressing remove. Setting a
// quantity for a product not yet in the cart inserts it.
func (c *Cart) SetQuantity(productID kernel.UUID, quantity int, now time.Time) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity < 0 || quantity > maxCartQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, maxCartQuantity)
	}

	if quantity == 0 {
		c.RemoveItem(productID, now)
		return nil
	}

	for i, item := range c.items {
		if item.ProductID.IsEqual(productID) {
			c.items[i].Quantity = quantity
			c.updatedAt = now
			return nil
		}
	}

	c.items = append(c.items, Item{ProductID: productID, Quantity: quantity})
	c.updatedAt = now
	return nil
}

// RemoveItem deletes a product's entry. Removing a product that is not in the
// cart is a no-op.
func (c *Cart) RemoveItem(productID kernel.UUID, now time.Time) {
	for i, item := range c.items {
		if item.ProductID.IsEqual(productID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.updatedAt = now
			return
		}
	}
}

// Clear empties the cart. Clearing an already empty cart is a no-op, which is
// what makes checkout retries idempotent on the cart side.
func (c *Cart) Clear(now time.Time) {
	if len(c.items) == 0 {
		return
	}
	c.items = nil
	c.updatedAt = now
}

func (c *Cart) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("userId", err)
	}
	c.userID = userID
	return nil
}

func validateItem(item Item) error {
	if err := item.ProductID.Validate(); err != nil {
		return err
	}
	if item.Quantity < 1 || item.Quantity > maxCartQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, maxCartQuantity)
	}
	return nil
}
