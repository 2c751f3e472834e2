package order

import (
	"bibdelivery/internal/pkg/errs"
)

// Item is a value object binding one participant's bib to an order.
// Items are set at creation and immutable thereafter.
type Item struct {
	participantRef string
	bibNumber      string
	eventName      string
}

// NewItem creates an order item. The participant reference is required; it is
// the key used for duplicate-order prevention. Bib number and event name are
// display material and may be empty.
func NewItem(participantRef, bibNumber, eventName string) (Item, error) {
	if participantRef == "" {
		return Item{}, errs.NewValueIsRequiredError("participantRef")
	}

	return Item{
		participantRef: participantRef,
		bibNumber:      bibNumber,
		eventName:      eventName,
	}, nil
}

// ParticipantRef returns the reference to the registered participant.
func (i Item) ParticipantRef() string {
	return i.participantRef
}

// BibNumber returns the bib number being delivered.
func (i Item) BibNumber() string {
	return i.bibNumber
}

// EventName returns the name of the event the bib belongs to.
func (i Item) EventName() string {
	return i.eventName
}

// Validate checks that the item carries a participant reference.
func (i Item) Validate() error {
	if i.participantRef == "" {
		return errs.NewValueIsRequiredError("participantRef")
	}
	return nil
}
