package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// CheckoutCommandHandler handles the conversion of a cart into an order.
//
// The whole operation runs in one transaction: read the cart, snapshot the
// catalog into line items, persist the order, clear the cart. Either all of
// it commits or none of it does, so there is no window where the order exists
// with a still-full cart or vice versa.
//
// A replayed command whose order already exists is acknowledged without
// placing anything, which makes checkout safe to retry.
type CheckoutCommandHandler struct {
	uowFactory      CheckoutUoWFactory
	checkoutService services.CheckoutService
	now             func() time.Time
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	checkoutService services.CheckoutService,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:      uowFactory,
		checkoutService: checkoutService,
		now:             time.Now,
	}
}

// Handle processes the checkout command.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if _, err := orderRepo.Get(ctx, cmd.OrderID()); err == nil {
		// Replay of an already placed checkout.
		return nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	cartRepo := uow.CartRepository()
	shopperCart, err := cartRepo.Get(ctx, cmd.UserID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return services.ErrCartIsEmpty
		}
		return err
	}

	products, err := uow.ProductRepository().GetByIDs(ctx, cartProductIDs(shopperCart))
	if err != nil {
		return err
	}

	now := h.now()
	aggregate, err := h.checkoutService.Checkout(
		cmd.OrderID(), shopperCart, products,
		cmd.Customer(), cmd.Delivery(), cmd.PaymentMethod(), now,
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	shopperCart.Clear(now)
	if err = cartRepo.Save(ctx, shopperCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func cartProductIDs(c *cart.Cart) []kernel.UUID {
	items := c.Items()
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
