package commands

import (
	"context"

	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/pkg/auth"
)

// AssignCourierCommandHandler handles courier assignment and reassignment.
// Only admins may assign. The order must still be in "Order Created" or
// "Assigned" status; once the courier has picked up the bibs the assignment
// is frozen.
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  OrderEventPublisher
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(uowFactory OrderUoWFactory, publisher OrderEventPublisher) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle assigns the courier to the order and returns the updated aggregate.
// Returns auth.ErrForbidden for non-admin callers, errs.ErrObjectNotFound
// when the order does not exist, order.ErrInvalidTransition when the order
// is past assignment, and errs.ErrVersionIsInvalid when a concurrent update
// won the version race.
func (h *AssignCourierCommandHandler) Handle(
	ctx context.Context,
	caller auth.Identity,
	cmd AssignCourierCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
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

	if err = aggregate.Assign(cmd.CourierID()); err != nil {
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
