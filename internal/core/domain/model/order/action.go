package order

import (
	"fmt"

	"bibdelivery/internal/pkg/errs"
)

// Action identifies a courier-performed, code-gated lifecycle operation.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionPickup confirms custody transfer from the organizer to the courier.
	// Gated by the order's pickup PIN.
	ActionPickup

	// ActionDeliver confirms handover from the courier to the customer.
	// Gated by the order's delivery OTP.
	ActionDeliver
)

// String returns the wire label of the action ("PICKUP" or "DELIVER").
func (a Action) String() string {
	switch a {
	case ActionPickup:
		return "PICKUP"
	case ActionDeliver:
		return "DELIVER"
	default:
		return "Unknown"
	}
}

// ParseAction converts a wire label into an Action.
func ParseAction(label string) (Action, error) {
	switch label {
	case "PICKUP":
		return ActionPickup, nil
	case "DELIVER":
		return ActionDeliver, nil
	default:
		return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%q is not a valid action", label))
	}
}

// Validate checks if the Action value is valid.
func (a Action) Validate() error {
	if a != ActionPickup && a != ActionDeliver {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}
