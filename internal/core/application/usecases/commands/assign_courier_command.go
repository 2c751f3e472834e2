package commands

import (
	"errors"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a request to assign a courier to an order.
// Assignment is an admin operation; the command carries only the order and
// courier identifiers.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(orderID, courierID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment data: %w", err)
//	}
//
//	assigned, err := handler.Handle(ctx, admin, cmd)
//	if err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
//	fmt.Printf("Order %s assigned to %s", assigned.ID(), courierID)
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to an order.
// Both identifiers must be valid UUIDs.
func NewAssignCourierCommand(orderID, courierID kernel.UUID) (AssignCourierCommand, error) {
	assignCommand := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderID(orderID),
		assignCommand.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being assigned.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the courier receiving the order.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
