package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrSetCartItemQuantityCommandIsNotConstructed = errors.New(
		"SetCartItemQuantityCommand must be created via NewSetCartItemQuantityCommand constructor",
	)
)

// SetCartItemQuantityCommand represents a request to replace a cart entry's
// quantity outright. A zero quantity removes the entry.
type SetCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewSetCartItemQuantityCommand creates a command to set a cart entry's quantity.
// Zero is valid and means remove; negative quantities are rejected here.
func NewSetCartItemQuantityCommand(userID, productID kernel.UUID, quantity int) (SetCartItemQuantityCommand, error) {
	cmd := SetCartItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return SetCartItemQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemQuantityCommandIsNotConstructed)
}

// UserID returns the shopper whose cart changes.
func (c SetCartItemQuantityCommand) UserID() kernel.UUID {
	return c.userID
}

// ProductID returns the product whose entry changes.
func (c SetCartItemQuantityCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the new quantity; zero means remove.
func (c SetCartItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *SetCartItemQuantityCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *SetCartItemQuantityCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *SetCartItemQuantityCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, 999)
	}

	c.quantity = quantity
	return nil
}
