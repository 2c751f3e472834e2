package order

import (
	"errors"
	"fmt"
	"time"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrItemsAreRequired is returned when an order is created with an empty item set.
	ErrItemsAreRequired = errors.New("order requires at least one item")
)

// Order represents a bib delivery order. It is the aggregate root that manages
// the order lifecycle from creation through courier assignment, pickup and
// handover to the customer.
//
// Order follows these invariants:
//   - Identifier, owning customer, items, address, codes, distance and fee are
//     set at creation and immutable thereafter
//   - Status transitions follow the Status state machine; every transition
//     appends exactly one history entry
//   - The history is non-empty and its last entry's status equals the current status
//   - A courier is bound for any status at or after Assigned and absent for Created
//   - Pickup and delivery mutate state only after an exact security-code match
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	items      []Item
	address    kernel.Address

	status    Status
	courierID *kernel.UUID

	pickupCode   kernel.SecurityCode
	deliveryCode kernel.SecurityCode

	distanceKm  float64
	deliveryFee int

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	history []HistoryEntry

	// version is the optimistic concurrency token. It reflects the persisted
	// snapshot this aggregate was loaded from; the repository bumps it on every
	// successful conditional update.
	version int

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Created status with its initial history entry.
// This is the only way to create a fresh order, ensuring all business
// invariants hold from the start.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customerID: owning customer (must be a valid UUID)
//   - items: non-empty set of bibs to deliver
//   - address: validated delivery destination
//   - pickupCode: PIN the courier presents to the organizer
//   - deliveryCode: OTP the customer presents to the courier
//   - distanceKm: estimated delivery distance (must be positive)
//   - deliveryFee: computed fee (must be positive)
//   - method: fee collection method (COD by default at the call site)
//
// The new order starts at version 1 with paymentStatus Pending.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	address kernel.Address,
	pickupCode kernel.SecurityCode,
	deliveryCode kernel.SecurityCode,
	distanceKm float64,
	deliveryFee int,
	method PaymentMethod,
) (*Order, error) {
	o := &Order{
		status:        Created,
		paymentStatus: PaymentPending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(address),
		o.setCodes(pickupCode, deliveryCode),
		o.setDistance(distanceKm),
		o.setFee(deliveryFee),
		o.setPaymentMethod(method),
	); err != nil {
		return nil, err
	}

	o.appendHistory(Created)
	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time side effects. It re-validates every structural invariant,
// including status/courier consistency and history integrity, so corrupted
// rows surface as errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	address kernel.Address,
	status Status,
	courierID *kernel.UUID,
	pickupCode kernel.SecurityCode,
	deliveryCode kernel.SecurityCode,
	distanceKm float64,
	deliveryFee int,
	method PaymentMethod,
	paymentStatus PaymentStatus,
	history []HistoryEntry,
	version int,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(address),
		o.setCodes(pickupCode, deliveryCode),
		o.setDistance(distanceKm),
		o.setFee(deliveryFee),
		o.setPaymentMethod(method),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cID := *courierID
		o.courierID = &cID
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}
	if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("last entry is %q but order status is %q", last.String(), status.String()))
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a positive version", version))
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.history = append([]HistoryEntry(nil), history...)
	o.version = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly instantiating
// the struct, and should be called when aggregates cross a persistence boundary.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order's items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// ParticipantRefs returns the participant references of all items, in order.
// Used by duplicate-order prevention at creation time.
func (o *Order) ParticipantRefs() []string {
	refs := make([]string, len(o.items))
	for i, item := range o.items {
		refs[i] = item.ParticipantRef()
	}
	return refs
}

// Address returns the delivery destination.
func (o *Order) Address() kernel.Address {
	return o.address
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil if no courier is assigned.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	cID := *o.courierID
	return &cID
}

// IsAssignedTo reports whether the given courier is the one bound to the order.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// PickupCode returns the PIN verified at organizer handoff.
func (o *Order) PickupCode() kernel.SecurityCode {
	return o.pickupCode
}

// DeliveryCode returns the OTP verified at customer handoff.
func (o *Order) DeliveryCode() kernel.SecurityCode {
	return o.deliveryCode
}

// DistanceKm returns the distance estimate computed at creation.
func (o *Order) DistanceKm() float64 {
	return o.distanceKm
}

// DeliveryFee returns the fee computed at creation.
func (o *Order) DeliveryFee() int {
	return o.deliveryFee
}

// PaymentMethod returns the fee collection method.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the current fee collection status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Version returns the optimistic concurrency token of the loaded snapshot.
func (o *Order) Version() int {
	return o.version
}

// Assign binds the order to a courier and advances the status to Assigned.
//
// Business rules:
//   - The courier ID must be valid
//   - The order must be in Created or Assigned status; an order already picked
//     up cannot be re-bound mid-delivery
//   - Reassignment overwrites the courier and appends a fresh Assigned entry
//
// On success the status becomes Assigned and Courier() returns the new courier.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	cID := courierID
	o.courierID = &cID
	o.appendHistory(newStatus)
	return nil
}

// Pickup confirms custody transfer from the organizer against the pickup PIN
// and advances the status to OutForDelivery.
//
// The transition is validated first (only Assigned orders can be picked up),
// then the code is matched exactly. On any failure the order is unchanged:
// no partial transition happens on a failed code.
func (o *Order) Pickup(suppliedCode string) error {
	newStatus, err := o.status.Pickup()
	if err != nil {
		return err
	}

	if !o.pickupCode.Matches(suppliedCode) {
		return fmt.Errorf("%w: pickup PIN rejected", ErrInvalidCode)
	}

	o.status = newStatus
	o.appendHistory(newStatus)
	return nil
}

// Deliver confirms handover to the customer against the delivery OTP,
// advances the status to Delivered and flips the payment status to Completed
// (COD collection assumption).
//
// Valid only from OutForDelivery or its PickedFromOrganizer alias. On any
// failure the order is unchanged.
func (o *Order) Deliver(suppliedCode string) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	if !o.deliveryCode.Matches(suppliedCode) {
		return fmt.Errorf("%w: delivery OTP rejected", ErrInvalidCode)
	}

	o.status = newStatus
	o.paymentStatus = PaymentCompleted
	o.appendHistory(newStatus)
	return nil
}

// PerformAction dispatches a courier action to the matching code-gated
// transition. The supplied code is verified against the code the action is
// gated by; each code is effectively single-use because a successful advance
// leaves no status from which the same action re-verifies.
func (o *Order) PerformAction(action Action, suppliedCode string) error {
	switch action {
	case ActionPickup:
		return o.Pickup(suppliedCode)
	case ActionDeliver:
		return o.Deliver(suppliedCode)
	default:
		return action.Validate()
	}
}

// Cancel terminates the order administratively from any non-terminal status.
// The record is retained for audit; cancelled orders release their items for
// re-ordering.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendHistory(newStatus)
	return nil
}

// Fail marks the delivery as failed from any non-terminal status.
// Like Cancel, the record is retained and the items are released.
func (o *Order) Fail() error {
	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendHistory(newStatus)
	return nil
}

func (o *Order) appendHistory(status Status) {
	o.history = append(o.history, NewHistoryEntry(status, time.Now().UTC()))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setCodes(pickupCode, deliveryCode kernel.SecurityCode) error {
	if err := errors.Join(pickupCode.Validate(), deliveryCode.Validate()); err != nil {
		return err
	}
	o.pickupCode = pickupCode
	o.deliveryCode = deliveryCode
	return nil
}

func (o *Order) setDistance(distanceKm float64) error {
	if distanceKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%g is not greater than 0", distanceKm))
	}
	o.distanceKm = distanceKm
	return nil
}

func (o *Order) setFee(deliveryFee int) error {
	if deliveryFee <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%d is not greater than 0", deliveryFee))
	}
	o.deliveryFee = deliveryFee
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
