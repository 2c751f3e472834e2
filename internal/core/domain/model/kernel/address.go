package kernel

import (
	"errors"
	"fmt"

	"bibdelivery/internal/pkg/errs"
	"bibdelivery/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via the NewAddress constructor.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// GeoPoint holds optional latitude/longitude coordinates attached to an address.
// Coordinates are display material supplied by the map picker; the core never
// derives authorization or state decisions from them.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Address is an immutable value object representing a delivery destination.
// Street and postal code are required; city and coordinates are optional.
// The zero value of Address is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	addr, err := kernel.NewAddress("31 Lake Road", "Kolkata", "700050", nil)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(addr) // Output: 31 Lake Road, Kolkata 700050
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	postalCode string
	coords     *GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a new Address with the given parts.
// Street and postal code must be non-empty; coords may be nil.
//
// Returns:
//   - Address: A valid address instance
//   - error: Validation error if a required part is missing
func NewAddress(street, city, postalCode string, coords *GeoPoint) (Address, error) {
	addr := Address{
		city:  city,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setPostalCode(postalCode),
	); err != nil {
		return Address{}, err
	}

	if coords != nil {
		c := *coords
		addr.coords = &c
	}

	return addr, nil
}

// Validate checks if the Address was properly constructed using the constructor.
// The zero value of Address is invalid and will fail this validation.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address. May be empty.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code used for serviceability checks.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Coordinates returns the optional map coordinates of the address.
// Returns nil when the customer did not pin a location.
func (a Address) Coordinates() *GeoPoint {
	if a.coords == nil {
		return nil
	}
	c := *a.coords
	return &c
}

// IsEqual compares two addresses by street, city and postal code.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street && a.city == other.city && a.postalCode == other.postalCode
}

// String returns a single-line human-readable form of the address.
// It implements the fmt.Stringer interface.
func (a Address) String() string {
	if a.city == "" {
		return fmt.Sprintf("%s %s", a.street, a.postalCode)
	}
	return fmt.Sprintf("%s, %s %s", a.street, a.city, a.postalCode)
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}
