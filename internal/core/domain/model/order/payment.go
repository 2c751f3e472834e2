package order

import (
	"fmt"

	"bibdelivery/internal/pkg/errs"
)

// PaymentMethod identifies how the delivery fee is collected.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentCOD is cash on delivery, the default. The fee is collected by the
	// courier at handover.
	PaymentCOD

	// PaymentOnline is a placeholder for prepaid orders. No real payment
	// processing happens behind it.
	PaymentOnline
)

// String returns the wire label of the payment method ("COD" or "ONLINE").
func (m PaymentMethod) String() string {
	switch m {
	case PaymentCOD:
		return "COD"
	case PaymentOnline:
		return "ONLINE"
	default:
		return "Unknown"
	}
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if m != PaymentCOD && m != PaymentOnline {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// ParsePaymentMethod converts a wire label into a PaymentMethod.
// An empty label defaults to COD, matching the order submission form.
func ParsePaymentMethod(label string) (PaymentMethod, error) {
	switch label {
	case "", "COD":
		return PaymentCOD, nil
	case "ONLINE":
		return PaymentOnline, nil
	default:
		return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%q is not a valid payment method", label))
	}
}

// PaymentStatus tracks fee collection for an order.
// It flips from Pending to Completed only as a side effect of a successful
// delivery (COD collection assumption).
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means the fee has not been collected yet.
	PaymentPending

	// PaymentCompleted means the fee was collected at delivery.
	PaymentCompleted

	// PaymentFailed means collection failed.
	PaymentFailed
)

// String returns the wire label of the payment status.
func (s PaymentStatus) String() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentCompleted:
		return "Completed"
	case PaymentFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentCompleted && s != PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
