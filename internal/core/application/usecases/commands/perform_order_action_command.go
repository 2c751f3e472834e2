package commands

import (
	"errors"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/pkg/errs"
	"bibdelivery/internal/pkg/guard"
)

var ErrPerformOrderActionCommandIsNotConstructed = errors.New(
	"PerformOrderActionCommand must be created via NewPerformOrderActionCommand constructor",
)

// PerformOrderActionCommand represents a courier's code-gated action on an
// order: PICKUP verified against the pickup PIN, DELIVER verified against the
// delivery OTP.
//
// Example:
//
//	cmd, err := NewPerformOrderActionCommand(orderID, order.ActionDeliver, "4821")
//	if err != nil {
//	    return fmt.Errorf("invalid action data: %w", err)
//	}
//
//	if _, err := handler.Handle(ctx, courier, cmd); err != nil {
//	    return fmt.Errorf("action failed: %w", err)
//	}
type PerformOrderActionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  order.Action
	code    string

	guard guard.ConstructorGuard
}

// NewPerformOrderActionCommand creates a command for a code-gated order action.
// The order ID must be a valid UUID, the action must be a known action, and
// the code must be present.
func NewPerformOrderActionCommand(
	orderID kernel.UUID,
	action order.Action,
	code string,
) (PerformOrderActionCommand, error) {
	actionCommand := PerformOrderActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actionCommand.setOrderID(orderID),
		actionCommand.setAction(action),
		actionCommand.setCode(code),
	); err != nil {
		return PerformOrderActionCommand{}, err
	}

	return actionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPerformOrderActionCommandIsNotConstructed if validation fails.
func (c PerformOrderActionCommand) Validate() error {
	return c.guard.Validate(ErrPerformOrderActionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the action targets.
func (c PerformOrderActionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the lifecycle action to perform.
func (c PerformOrderActionCommand) Action() order.Action {
	return c.action
}

// Code returns the security code supplied by the courier.
func (c PerformOrderActionCommand) Code() string {
	return c.code
}

func (c *PerformOrderActionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PerformOrderActionCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *PerformOrderActionCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	c.code = code
	return nil
}
