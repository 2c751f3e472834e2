package queries

import (
	"errors"
	"time"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves the orders visible to the caller.
// The result set depends on the caller's role: customers see their own
// orders, couriers see their open tasks, admins see everything. Organizers
// have no order list.
//
// Example:
//
//	query := NewListOrdersQuery()
//	handler := NewListOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, caller, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Found %d orders\n", len(orders))
type ListOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a parameterless query for the caller's orders.
func NewListOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryResponse is one order summary row. Security codes are not
// part of the list view; they are only exposed on the single-order read.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	CourierID     *kernel.UUID
	Status        string
	Street        string
	PostalCode    string
	DeliveryFee   int
	PaymentStatus string
	CreatedAt     time.Time
}
