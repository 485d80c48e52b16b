package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
)

// CheckoutCommand represents a request to convert a shopper's cart into an
// order. The order ID travels with the command so a retried checkout carries
// the same identity and cannot place the order twice.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	userID        kernel.UUID
	customer      order.CustomerInfo
	delivery      order.DeliveryWindow
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command.
// Validates identities and the checkout form fields; the cart contents are
// validated inside the handler against current catalog state.
func NewCheckoutCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	customer order.CustomerInfo,
	delivery order.DeliveryWindow,
	paymentMethod string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setCustomer(customer),
		cmd.setDelivery(delivery),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identity the new order will carry.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the shopper checking out.
func (c CheckoutCommand) UserID() kernel.UUID {
	return c.userID
}

// Customer returns the contact details entered on the checkout form.
func (c CheckoutCommand) Customer() order.CustomerInfo {
	return c.customer
}

// Delivery returns the requested delivery window.
func (c CheckoutCommand) Delivery() order.DeliveryWindow {
	return c.delivery
}

// PaymentMethod returns the chosen payment tag.
func (c CheckoutCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CheckoutCommand) setCustomer(customer order.CustomerInfo) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CheckoutCommand) setDelivery(delivery order.DeliveryWindow) error {
	if err := delivery.Validate(); err != nil {
		return err
	}

	c.delivery = delivery
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return ErrPaymentMethodIsRequired
	}

	c.paymentMethod = paymentMethod
	return nil
}
