package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/pkg/errs"
)

// RemoveCartItemCommandHandler handles dropping products from shopper carts.
// Removal is idempotent: removing an absent product, or from an absent cart,
// succeeds without doing anything.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	now        func() time.Time
}

// NewRemoveCartItemCommandHandler creates a handler for cart removals.
func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the remove command.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
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

	cartRepo := uow.CartRepository()
	shopperCart, err := cartRepo.Get(ctx, cmd.UserID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return uow.Commit(ctx)
		}
		return err
	}

	shopperCart.RemoveItem(cmd.ProductID(), h.now())
	if err = cartRepo.Save(ctx, shopperCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
