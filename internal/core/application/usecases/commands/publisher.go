package commands

import (
	"context"

	"bibdelivery/internal/core/domain/model/order"
)

// OrderEventPublisher notifies downstream consumers about order lifecycle
// changes. Publishing happens after the transaction commits and is
// best-effort: implementations log failures instead of returning them, so a
// broker outage never fails a committed command.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, aggregate *order.Order)
}

// NopOrderEventPublisher discards all events. Used when no broker is
// configured and in tests.
type NopOrderEventPublisher struct{}

// PublishOrderChanged does nothing.
func (NopOrderEventPublisher) PublishOrderChanged(context.Context, *order.Order) {}
