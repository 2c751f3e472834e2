package order

import (
	"errors"
	"fmt"
)

// Transition errors. Both are sentinels so callers can classify failures with
// errors.Is and map them to transport-level responses.
var (
	// ErrInvalidTransition is returned when an action is not legal from the
	// order's current status. The order is never mutated on this error.
	ErrInvalidTransition = errors.New("action is not allowed from the current status")

	// ErrInvalidCode is returned when a supplied pickup PIN or delivery OTP does
	// not exactly match the code generated at order creation.
	ErrInvalidCode = errors.New("security code does not match")
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Created ──(assign)──> Assigned ──(pickup, PIN)──> OutForDelivery ──(deliver, OTP)──> Delivered
//	               │                        │
//	               └──(reassign)────────────┘
//	any non-terminal ──> Cancelled | Failed
//
// PickedFromOrganizer is a reachable intermediate label kept for wire
// compatibility; the pickup action routes directly to OutForDelivery and the
// two states are not independently re-enterable.
//
// Delivered, Cancelled and Failed are terminal: no further transitions are
// accepted from them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first created.
	// Orders in this status are waiting to be assigned to a courier.
	Created

	// Assigned indicates the order has been bound to a courier.
	// The courier must present the pickup PIN to take custody of the bibs.
	Assigned

	// PickedFromOrganizer indicates the courier has taken custody of the bibs.
	// Kept as a distinct label; the pickup action currently routes directly
	// to OutForDelivery.
	PickedFromOrganizer

	// OutForDelivery indicates the bibs are in transit to the customer.
	OutForDelivery

	// Delivered indicates the bibs were handed over against the delivery OTP.
	// Terminal.
	Delivered

	// Failed indicates the delivery could not be completed. Terminal.
	Failed

	// Cancelled indicates the order was administratively cancelled. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "Unknown",
		Created:             "Order Created",
		Assigned:            "Assigned",
		PickedFromOrganizer: "Picked From Organizer",
		OutForDelivery:      "Out For Delivery",
		Delivered:           "Delivered",
		Failed:              "Delivery Failed",
		Cancelled:           "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:             "Order Created",
		Assigned:            "Assigned",
		PickedFromOrganizer: "Picked From Organizer",
		OutForDelivery:      "Out For Delivery",
		Delivered:           "Delivered",
		Failed:              "Delivery Failed",
		Cancelled:           "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidTransition, s)
	}
	return nil
}

// String returns the human-readable name of the status.
// The names match the persisted and displayed labels exactly
// (e.g. "Order Created", "Out For Delivery").
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

// IsActive reports whether an order in this status still blocks its items
// from appearing on another order. Cancelled and Failed orders release their
// items; every other valid status holds them.
func (s Status) IsActive() bool {
	return s != Cancelled && s != Failed && s != Unknown
}

// ValidateAssign checks if the status allows courier assignment without
// performing the transition.
//
// Valid statuses for assignment:
//   - Created (initial assignment)
//   - Assigned (reassignment to a different courier)
//
// An order already picked up cannot be re-bound mid-delivery.
func (s Status) ValidateAssign() error {
	if s != Created && s != Assigned {
		return fmt.Errorf("%w: cannot assign a courier from %q", ErrInvalidTransition, s.String())
	}
	return nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment.
//
// Business rules:
//   - Created orders must not have a courier
//   - Assigned, PickedFromOrganizer, OutForDelivery and Delivered orders must have one
//   - Cancelled and Failed orders may or may not, depending on when they terminated
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == Created {
		return fmt.Errorf("%w: %q must not have a courier", ErrInvalidTransition, s.String())
	}

	if !courier && (s == Assigned || s == PickedFromOrganizer || s == OutForDelivery || s == Delivered) {
		return fmt.Errorf("%w: %q requires a courier", ErrInvalidTransition, s.String())
	}

	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Created -> Assigned (initial assignment)
//   - Assigned -> Assigned (reassignment)
//
// Returns (0, ErrInvalidTransition) from any other status.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}
	return Assigned, nil
}

// Pickup transitions the status to OutForDelivery.
//
// Valid transitions:
//   - Assigned -> OutForDelivery (courier took custody from the organizer)
//
// Returns (0, ErrInvalidTransition) from any other status, terminal states
// included.
func (s Status) Pickup() (Status, error) {
	if s != Assigned {
		return 0, fmt.Errorf("%w: cannot pick up from %q", ErrInvalidTransition, s.String())
	}
	return OutForDelivery, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - OutForDelivery -> Delivered
//   - PickedFromOrganizer -> Delivered (alias source state)
//
// Returns (0, ErrInvalidTransition) from any other status. Delivered is a
// final state with no further transitions possible.
func (s Status) Deliver() (Status, error) {
	if s != OutForDelivery && s != PickedFromOrganizer {
		return 0, fmt.Errorf("%w: cannot deliver from %q", ErrInvalidTransition, s.String())
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled from any non-terminal status.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: cannot cancel from %q", ErrInvalidTransition, s.String())
	}
	return Cancelled, nil
}

// Fail transitions the status to Failed from any non-terminal status.
func (s Status) Fail() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: cannot fail from %q", ErrInvalidTransition, s.String())
	}
	return Failed, nil
}
