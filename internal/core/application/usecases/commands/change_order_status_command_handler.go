package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// transientRetries bounds how many times a status change is retried when the
// store reports a transient failure before the error surfaces to the caller.
const transientRetries = 3

// ChangeOrderStatusCommandHandler handles order status transitions.
//
// The read-validate-write cycle runs under the order's mutex, so concurrent
// transitions on the same order serialize and the loser is validated against
// the winner's committed status. The fan-out publish also happens under the
// lock, after commit, which keeps per-order event order aligned with the
// transitions themselves.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *OrderLocks
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
// Requires a unit of work factory, the per-order lock registry, and the
// fan-out publisher for successful transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	publisher ports.EventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle processes the status change command and returns the post-transition
// order for the caller to render.
//
// Invalid transitions return an *errs.InvalidTransitionError and leave the
// order unchanged. Transient store failures are retried a bounded number of
// times; each retry restarts the whole read-validate-write cycle so it never
// works from stale state.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.OrderID())
	defer unlock()

	var aggregate *order.Order
	var err error
	for attempt := 0; attempt <= transientRetries; attempt++ {
		aggregate, err = h.transition(ctx, cmd)
		if !errors.Is(err, errs.ErrTransientStoreError) {
			return aggregate, err
		}
	}
	return nil, err
}

func (h *ChangeOrderStatusCommandHandler) transition(
	ctx context.Context, cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	event, err := aggregate.ChangeStatus(cmd.NewStatus(), h.now())
	if err != nil {
		return nil, err
	}
	event.Actor = cmd.Actor()

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(event)
	return aggregate, nil
}
