package order

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// LineItem is an immutable snapshot of one cart entry taken at checkout.
// The unit price is captured from the catalog at that moment and never changes
// afterwards, so later catalog price edits cannot alter the order total.
type LineItem struct {
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   kernel.Money
}

// NewLineItem creates a validated line item snapshot.
// Quantity must be at least 1; the product reference must be valid.
func NewLineItem(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if productName == "" {
		return LineItem{}, errs.NewValueIsRequiredError("productName")
	}
	if quantity < 1 || quantity > maxLineItemQuantity {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineItemQuantity)
	}

	return LineItem{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
	}, nil
}

// maxLineItemQuantity bounds a single line item. Orders above this are almost
// certainly client bugs rather than real purchases.
const maxLineItemQuantity = 999

// ProductID returns the snapshotted product reference.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// ProductName returns the product name captured at checkout.
func (li LineItem) ProductName() string {
	return li.productName
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the price captured at checkout.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() kernel.Money {
	return li.unitPrice.MulInt(li.quantity)
}

// CustomerInfo is the contact snapshot captured at checkout.
// It deliberately duplicates the profile so later profile edits do not
// rewrite where an already-placed order is going.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
}

// Validate checks that all contact fields are present.
func (c CustomerInfo) Validate() error {
	return errors.Join(
		requireField("customer name", c.Name),
		requireField("customer phone", c.Phone),
		requireField("customer address", c.Address),
	)
}

// DeliveryWindow is the delivery slot requested by the shopper at checkout.
// Date and time are kept as the shopper entered them; the storefront does not
// schedule couriers, it only records the request.
type DeliveryWindow struct {
	Date string
	Time string
}

// Validate checks that both fields are present.
func (d DeliveryWindow) Validate() error {
	return errors.Join(
		requireField("delivery date", d.Date),
		requireField("delivery time", d.Time),
	)
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
