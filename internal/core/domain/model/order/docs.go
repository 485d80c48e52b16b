// Package order provides domain entities and business logic for order
// management in the storefront. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: the aggregate root that owns order identity, line item snapshots,
//     and the status lifecycle
//   - Status: a state machine that enforces valid order status transitions
//   - StatusChangeEvent: the ephemeral payload handed to the fan-out channel
//     whenever a transition succeeds
//
// Key business rules:
//   - Order status follows a defined workflow: pending -> processing -> delivered,
//     with cancelled reachable from pending or processing
//   - delivered and cancelled are terminal; no transition leaves them
//   - statusUpdatedAt is monotonically non-decreasing
//   - Line item price snapshots never change after creation, protecting order
//     totals from later catalog price edits
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
