package services

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
)

var (
	// ErrCartIsEmpty is returned when checking out a cart with no entries.
	ErrCartIsEmpty = errs.NewValueIsInvalidError("cart is empty")
)

// CheckoutService turns a cart into an order.
//
// This is where live catalog state becomes a frozen snapshot: the service
// resolves every cart entry against the catalog, captures the product name and
// the price at this instant into line items, and hands back a Pending order.
// The cart itself is untouched; the caller clears it inside the same
// transaction that persists the order.
type CheckoutService interface {
	Checkout(
		orderID kernel.UUID,
		shopperCart *cart.Cart,
		products map[kernel.UUID]*product.Product,
		customer order.CustomerInfo,
		delivery order.DeliveryWindow,
		paymentMethod string,
		now time.Time,
	) (*order.Order, error)
}

var _ CheckoutService = &checkoutService{}

type checkoutService struct{}

// NewCheckoutService creates the domain checkout service.
func NewCheckoutService() CheckoutService {
	return &checkoutService{}
}

func (s *checkoutService) Checkout(
	orderID kernel.UUID,
	shopperCart *cart.Cart,
	products map[kernel.UUID]*product.Product,
	customer order.CustomerInfo,
	delivery order.DeliveryWindow,
	paymentMethod string,
	now time.Time,
) (*order.Order, error) {
	if err := shopperCart.Validate(); err != nil {
		return nil, err
	}
	if shopperCart.IsEmpty() {
		return nil, ErrCartIsEmpty
	}

	items := make([]order.LineItem, 0, len(shopperCart.Items()))
	var itemErrs []error
	for _, entry := range shopperCart.Items() {
		p, ok := products[entry.ProductID]
		if !ok {
			itemErrs = append(itemErrs, errs.NewObjectNotFoundError("product", entry.ProductID))
			continue
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !p.InStock() {
			itemErrs = append(itemErrs, errs.NewValueIsInvalidError("product "+p.Name()+" is out of stock"))
			continue
		}

		item, err := order.NewLineItem(p.ID(), p.Name(), entry.Quantity, p.Price())
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
	}
	if len(itemErrs) > 0 {
		return nil, errors.Join(itemErrs...)
	}

	return order.NewOrder(orderID, shopperCart.UserID(), items, customer, delivery, paymentMethod, now)
}
