// Package ports defines repository interfaces for the bib delivery domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never physically deleted; terminal orders stay on record for
// tracking history and audit.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and initial history entry.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a lifecycle transition conditionally on the aggregate's
	// loaded version, making transitions linearizable: concurrent updates to
	// the same order race on the version guard and the loser receives
	// errs.ErrVersionIsInvalid instead of silently overwriting the winner.
	// History entries are appended, never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// items and the full status history. Returns errs.ErrObjectNotFound when
	// no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ExistsActiveWithParticipants reports whether the customer already has an
	// active order (status not Cancelled or Delivery Failed) containing any of
	// the given participant references. Used for duplicate-order prevention at
	// creation time; other customers' orders never conflict.
	ExistsActiveWithParticipants(ctx context.Context, customerID kernel.UUID, participantRefs []string) (bool, error)
}
