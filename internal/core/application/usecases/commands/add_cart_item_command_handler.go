package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/pkg/errs"
)

// AddCartItemCommandHandler handles adding products to shopper carts.
// A shopper's first add creates their cart row.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	now        func() time.Time
}

// NewAddCartItemCommandHandler creates a handler for cart add operations.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the add command. The product must exist and be in stock.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
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

	catalogEntry, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}
	if !catalogEntry.InStock() {
		return errs.NewValueIsInvalidError("product " + catalogEntry.Name() + " is out of stock")
	}

	now := h.now()
	cartRepo := uow.CartRepository()
	shopperCart, err := cartRepo.Get(ctx, cmd.UserID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		shopperCart, err = cart.NewCart(cmd.UserID(), now)
		if err != nil {
			return err
		}
	}

	if err = shopperCart.AddItem(cmd.ProductID(), cmd.Quantity(), now); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, shopperCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
