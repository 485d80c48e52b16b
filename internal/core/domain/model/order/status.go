package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow the
// correct fulfilment workflow.
//
// State transitions:
//
//	pending ──> processing ──> delivered
//	   │            │
//	   └──> cancelled <──┘
//
// delivered and cancelled are terminal states.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and the wire format.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at checkout.
	// Orders in this status are waiting for staff to start fulfilment.
	Pending

	// Processing indicates staff have started preparing the order.
	Processing

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was called off before delivery.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Processing: "processing",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getTransitionTable returns the allowed status edges.
// Any edge not present here is an invalid transition. The table is a strict
// partial order: terminal states have no outgoing edges.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Processing, Cancelled},
		Processing: {Delivered, Cancelled},
	}
}

// StatusFromString parses the wire representation ("pending", "processing",
// "delivered", "cancelled") into a Status. Parsing is exact: unknown or
// empty strings are rejected.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Processing, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// Returns "unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the edge from the current status to next is
// present in the transition table, without performing the transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the status along an edge of the transition table.
//
// Returns:
//   - (next, nil) when the edge is allowed
//   - (0, *errs.InvalidTransitionError) otherwise; the caller's status is unchanged
//
// Transitioning out of a terminal status always fails, including
// re-requesting the current terminal status.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(next) {
		return 0, errs.NewInvalidTransitionError(s.String(), next.String())
	}

	return next, nil
}
