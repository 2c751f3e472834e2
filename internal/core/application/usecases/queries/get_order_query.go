// Package queries contains read-only operations over the order store.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return flat response models, bypassing the aggregate.
package queries

import (
	"errors"
	"time"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its items and status history.
// Access is restricted to the owning customer, the assigned courier, and
// admins.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID)
//	handler := NewGetOrderQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, caller, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", resp.ID, resp.Status)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// OrderItemResponse is one bib line of an order.
type OrderItemResponse struct {
	ParticipantRef string
	BibNumber      string
	EventName      string
}

// OrderHistoryResponse is one append-only status history entry.
type OrderHistoryResponse struct {
	Status    string
	Timestamp time.Time
}

// GetOrderQueryResponse is the full read model of a single order, including
// both security codes. Callers that pass the access check are trusted with
// the codes: the customer reads the delivery OTP off this response, the
// courier the pickup PIN.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	CourierID     *kernel.UUID
	Status        string
	Street        string
	City          string
	PostalCode    string
	PickupCode    string
	DeliveryCode  string
	DistanceKm    float64
	DeliveryFee   int
	PaymentMethod string
	PaymentStatus string
	Version       int
	CreatedAt     time.Time
	Items         []OrderItemResponse
	History       []OrderHistoryResponse
}
