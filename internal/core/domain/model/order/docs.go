// Package order provides domain entities and business logic for bib delivery
// order management. It implements the Order aggregate root with lifecycle
// management, security-code-gated state transitions and an append-only status
// history.
//
// The package includes:
//   - Order: The aggregate root managing identity, items, codes, payment and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Item: A value object binding a participant's bib to the order
//   - HistoryEntry: An append-only record of every status transition
//
// Key business rules:
//   - Orders must carry a valid identifier, owning customer, non-empty item set
//     and a serviceable delivery address
//   - Status follows the workflow Created -> Assigned -> OutForDelivery -> Delivered,
//     with Cancelled and Failed as terminal escapes from any non-terminal state
//   - Pickup and delivery advance only on an exact security-code match, verified
//     strictly before any mutation
//   - Every transition appends exactly one history entry; history is never rewritten
//   - Payment flips Pending -> Completed only as a side effect of delivery (COD)
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
