package commands

import (
	"context"
	"errors"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/core/domain/services"
)

// ErrDuplicateActiveOrder is returned when the customer already has an active
// order covering one of the requested participants. Terminal orders
// (cancelled, failed, delivered) do not block a new one.
var ErrDuplicateActiveOrder = errors.New("an active order already exists for one of the participants")

// CreateOrderCommandHandler handles the business logic for order creation.
// Quotes distance and fee for the destination, checks for duplicate active
// orders, generates the pickup and delivery codes, and persists the order in
// "Order Created" status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing, codes, hub, publisher)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), customerID, items, address, order.PaymentCOD)
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created is persisted and ready for courier assignment
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    services.PricingEstimator
	codes      services.CodeGenerator
	origin     kernel.Address
	publisher  OrderEventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// The origin address is the organizer hub the distance estimate is anchored to.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing services.PricingEstimator,
	codes services.CodeGenerator,
	origin kernel.Address,
	publisher OrderEventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		codes:      codes,
		origin:     origin,
		publisher:  publisher,
	}
}

// Handle processes the order creation command and returns the created order.
// Returns errs.ErrValueIsOutOfRange when the destination postal code is
// outside the delivery zone, and ErrDuplicateActiveOrder when one of the
// participants is already covered by an active order of the same customer.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	distanceKm, fee, err := h.pricing.Estimate(h.origin, cmd.Address())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	exists, err := orderRepo.ExistsActiveWithParticipants(ctx, cmd.CustomerID(), participantRefs(cmd.Items()))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateActiveOrder
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.Items(),
		cmd.Address(),
		h.codes.Generate(),
		h.codes.Generate(),
		distanceKm,
		fee,
		cmd.PaymentMethod(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.PublishOrderChanged(ctx, newOrder)
	return newOrder, nil
}

func participantRefs(items []order.Item) []string {
	refs := make([]string, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.ParticipantRef())
	}
	return refs
}
