package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the delivery-related lifecycle state of an order as seen
// by the dispatch engine. The authoritative order workflow is owned by the
// order service; the engine only reads deliverable states and cascades the
// delivery states driven by assignment transitions.
//
// Cascade transitions driven by assignments:
//
//	Preparing/Ready ──> Delivering ──> Delivered
//	       ^                │
//	       └────────────────┘
//	  (detach resets to Preparing)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Preparing means the order is being prepared and is eligible for route planning.
	Preparing

	// Ready means the order is packed and waiting for dispatch.
	Ready

	// Delivering means the order is on an active delivery trip.
	Delivering

	// Delivered means the order reached the customer. Final state.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Preparing:  "PREPARING",
		Ready:      "READY",
		Delivering: "DELIVERING",
		Delivered:  "DELIVERED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Preparing:  "PREPARING",
		Ready:      "READY",
		Delivering: "DELIVERING",
		Delivered:  "DELIVERED",
	}
}

// Validate checks that the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid order status", s))
}

// IsDeliverable reports whether an order in this status may be picked up
// by route planning. Only Preparing and Ready orders qualify.
func (s Status) IsDeliverable() bool {
	return s == Preparing || s == Ready
}
