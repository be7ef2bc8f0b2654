package commands

import "errors"

// Business outcome errors shared by the command handlers. The HTTP adapter
// maps these to client-facing responses; the background job treats the
// "nothing to dispatch" cases as normal.
var (
	// ErrNoDeliverableOrders is returned when the branch has no orders
	// eligible for routing.
	ErrNoDeliverableOrders = errors.New("no deliverable orders found")

	// ErrNoRoutableOrders is returned when eligible orders exist but none
	// carries valid coordinates and a customer identity.
	ErrNoRoutableOrders = errors.New("no orders with valid coordinates and customer found")

	// ErrNoAvailableCouriers is returned when no courier satisfies the
	// branch policy's availability rule.
	ErrNoAvailableCouriers = errors.New("no available couriers found")
)
