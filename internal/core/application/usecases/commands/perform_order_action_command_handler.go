package commands

import (
	"context"

	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/pkg/auth"
)

// PerformOrderActionCommandHandler handles code-gated courier actions.
// Couriers may only act on orders assigned to them; admins may act on any
// order. The domain aggregate verifies the transition and the code.
type PerformOrderActionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  OrderEventPublisher
}

// NewPerformOrderActionCommandHandler creates a handler for courier actions.
func NewPerformOrderActionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher OrderEventPublisher,
) PerformOrderActionCommandHandler {
	return PerformOrderActionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle performs the action and returns the updated order.
// Returns auth.ErrForbidden when the caller is neither the assigned courier
// nor an admin, errs.ErrObjectNotFound for unknown orders,
// order.ErrInvalidTransition / order.ErrInvalidCode from the aggregate, and
// errs.ErrVersionIsInvalid when a concurrent update won the version race.
func (h *PerformOrderActionCommandHandler) Handle(
	ctx context.Context,
	caller auth.Identity,
	cmd PerformOrderActionCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !caller.IsCourier() && !caller.IsAdmin() {
		return nil, auth.ErrForbidden
	}

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

	if caller.IsCourier() && !aggregate.IsAssignedTo(caller.ID) {
		return nil, auth.ErrForbidden
	}

	if err = aggregate.PerformAction(cmd.Action(), cmd.Code()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.PublishOrderChanged(ctx, aggregate)
	return aggregate, nil
}
