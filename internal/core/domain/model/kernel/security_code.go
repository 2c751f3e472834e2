package kernel

import (
	"fmt"

	"bibdelivery/internal/pkg/errs"
)

// SecurityCodeLength is the number of digits in a pickup PIN or delivery OTP.
const SecurityCodeLength = 4

// ErrSecurityCodeIsNotConstructed is returned when attempting to use an improperly
// initialized SecurityCode. Codes must be created via NewSecurityCode.
var ErrSecurityCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"security code must be created via NewSecurityCode constructor")

// SecurityCode is an immutable value object holding a short numeric verification
// code. Codes are the sole authorization mechanism between a physical handoff and
// a digital state change, so comparison is exact-match only.
//
// The zero value is invalid and fails validation.
type SecurityCode struct {
	value string
}

// NewSecurityCode creates a SecurityCode from its string form.
// The value must be exactly SecurityCodeLength decimal digits.
func NewSecurityCode(value string) (SecurityCode, error) {
	if value == "" {
		return SecurityCode{}, errs.NewValueIsRequiredError("security code")
	}
	if len(value) != SecurityCodeLength {
		return SecurityCode{}, errs.NewValueIsInvalidErrorWithCause("security code",
			fmt.Errorf("%q is not %d digits", value, SecurityCodeLength))
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return SecurityCode{}, errs.NewValueIsInvalidErrorWithCause("security code",
				fmt.Errorf("%q contains a non-digit character", value))
		}
	}

	return SecurityCode{value: value}, nil
}

// Validate checks if the code was properly constructed.
func (c SecurityCode) Validate() error {
	if c.value == "" {
		return ErrSecurityCodeIsNotConstructed
	}
	return nil
}

// Matches reports whether the supplied string equals this code exactly.
// Fuzzy or partial matches are never accepted.
func (c SecurityCode) Matches(supplied string) bool {
	return c.value != "" && c.value == supplied
}

// String returns the digit string of the code.
func (c SecurityCode) String() string {
	return c.value
}

// IsEqual compares two security codes for equality.
func (c SecurityCode) IsEqual(other SecurityCode) bool {
	return c.value == other.value
}
