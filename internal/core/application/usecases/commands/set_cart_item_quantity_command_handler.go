package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/pkg/errs"
)

// SetCartItemQuantityCommandHandler handles quantity edits on cart entries.
type SetCartItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
	now        func() time.Time
}

// NewSetCartItemQuantityCommandHandler creates a handler for quantity edits.
func NewSetCartItemQuantityCommandHandler(uowFactory CartUoWFactory) SetCartItemQuantityCommandHandler {
	return SetCartItemQuantityCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the quantity edit. Setting a quantity for a product not
// yet in the cart inserts it, so an optimistic client retry never 404s.
func (h *SetCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd SetCartItemQuantityCommand) error {
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

	now := h.now()
	cartRepo := uow.CartRepository()
	shopperCart, err := cartRepo.Get(ctx, cmd.UserID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		if cmd.Quantity() == 0 {
			// Nothing to remove from a cart that does not exist.
			return uow.Commit(ctx)
		}
		shopperCart, err = cart.NewCart(cmd.UserID(), now)
		if err != nil {
			return err
		}
	}

	if cmd.Quantity() > 0 {
		catalogEntry, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
		if err != nil {
			return err
		}
		// Inserting a new entry follows the same stock gate as AddItem.
		// Adjusting a quantity already in the cart stays allowed even if the
		// product has since sold out.
		if !shopperCart.Contains(cmd.ProductID()) && !catalogEntry.InStock() {
			return errs.NewValueIsInvalidError("product " + catalogEntry.Name() + " is out of stock")
		}
	}

	if err = shopperCart.SetQuantity(cmd.ProductID(), cmd.Quantity(), now); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, shopperCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
