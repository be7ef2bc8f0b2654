package assignment

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Domain errors for assignment operations.
var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly initialized DeliveryAssignment.
	ErrAssignmentIsNotConstructed = errors.New(
		"DeliveryAssignment must be created via NewDeliveryAssignment or RestoreDeliveryAssignment")
	// ErrNoOrdersLinked is returned when attempting to create an assignment without orders.
	ErrNoOrdersLinked = errs.NewValueIsRequiredError("orderIDs")
	// ErrCourierBranchMismatch is returned when the courier belongs to a different branch.
	ErrCourierBranchMismatch = errors.New("courier does not belong to the assignment's branch")
	// ErrCourierIsNotActive is returned when assigning an inactive courier.
	ErrCourierIsNotActive = errors.New("courier is not active")
)

// DeliveryAssignment is the aggregate root of the dispatch engine: one
// delivery trip grouping one or more orders under an optional courier, with
// an ordered route and distance/time estimates.
//
// Invariants:
//   - len(routePoints) == len(orderIDs) + 1 (branch origin plus one stop per order)
//   - status transitions are monotonic forward (see Status)
//   - a referenced courier must belong to the same branch and be active
//
// Status cascades to linked orders (DELIVERING on start, DELIVERED on
// completion, PREPARING on cancel/delete detachment) are orchestrated by the
// command handlers inside one transaction; the aggregate itself only records
// which orders are linked.
type DeliveryAssignment struct {
	// id uniquely identifies the assignment
	id kernel.UUID

	// name is an optional display name for the trip
	name string

	// branchID scopes the assignment to its branch
	branchID kernel.UUID

	// courierID is the assigned courier (nil while unassigned)
	courierID *kernel.UUID

	// status is the trip's lifecycle state
	status Status

	// routePoints is the ordered path: origin first, then one point per order
	routePoints []RoutePoint

	// distanceMeters is the estimated total route distance
	distanceMeters int

	// timeMinutes is the estimated total route time
	timeMinutes int

	// startedAt is set on the Pending -> InProgress transition
	startedAt *time.Time

	// completedAt is set on the InProgress -> Completed transition
	completedAt *time.Time

	// orderIDs are the orders linked to this trip
	orderIDs []kernel.UUID

	// isConstructed ensures the aggregate was created via a factory method
	isConstructed bool
}

// NewDeliveryAssignment creates a new assignment in Pending status.
// The route must contain exactly one origin point followed by one point per
// linked order, in delivery sequence.
func NewDeliveryAssignment(
	id kernel.UUID,
	branchID kernel.UUID,
	name string,
	routePoints []RoutePoint,
	distanceMeters int,
	timeMinutes int,
	orderIDs []kernel.UUID,
) (*DeliveryAssignment, error) {
	a := &DeliveryAssignment{
		name:          name,
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setBranchID(branchID),
		a.setOrderIDs(orderIDs),
		a.setRoute(routePoints, distanceMeters, timeMinutes),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreDeliveryAssignment reconstructs an assignment from persisted state.
// All invariants are re-validated so corrupt rows never reach business logic.
func RestoreDeliveryAssignment(
	id kernel.UUID,
	branchID kernel.UUID,
	name string,
	courierID *kernel.UUID,
	status Status,
	routePoints []RoutePoint,
	distanceMeters int,
	timeMinutes int,
	startedAt *time.Time,
	completedAt *time.Time,
	orderIDs []kernel.UUID,
) (*DeliveryAssignment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	a := &DeliveryAssignment{
		name:          name,
		status:        status,
		startedAt:     startedAt,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setBranchID(branchID),
		a.setOrderIDs(orderIDs),
		a.setRoute(routePoints, distanceMeters, timeMinutes),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		a.courierID = courierID
	}

	return a, nil
}

// Validate ensures the assignment was created via a factory method.
func (a *DeliveryAssignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}

	return nil
}

// IsEqual compares two assignments by their unique identifiers.
func (a *DeliveryAssignment) IsEqual(other *DeliveryAssignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *DeliveryAssignment) ID() kernel.UUID {
	return a.id
}

// Name returns the assignment's optional display name.
func (a *DeliveryAssignment) Name() string {
	return a.name
}

// BranchID returns the owning branch's identifier.
func (a *DeliveryAssignment) BranchID() kernel.UUID {
	return a.branchID
}

// CourierID returns the assigned courier's identifier, or nil.
func (a *DeliveryAssignment) CourierID() *kernel.UUID {
	return a.courierID
}

// Status returns the trip's lifecycle state.
func (a *DeliveryAssignment) Status() Status {
	return a.status
}

// RoutePoints returns a copy of the ordered route.
func (a *DeliveryAssignment) RoutePoints() []RoutePoint {
	points := make([]RoutePoint, len(a.routePoints))
	copy(points, a.routePoints)
	return points
}

// DistanceMeters returns the estimated total route distance.
func (a *DeliveryAssignment) DistanceMeters() int {
	return a.distanceMeters
}

// TimeMinutes returns the estimated total route time.
func (a *DeliveryAssignment) TimeMinutes() int {
	return a.timeMinutes
}

// StartedAt returns when the trip started, or nil.
func (a *DeliveryAssignment) StartedAt() *time.Time {
	return a.startedAt
}

// CompletedAt returns when the trip completed, or nil.
func (a *DeliveryAssignment) CompletedAt() *time.Time {
	return a.completedAt
}

// OrderIDs returns a copy of the linked order identifiers.
func (a *DeliveryAssignment) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(a.orderIDs))
	copy(ids, a.orderIDs)
	return ids
}

// Start transitions the trip to InProgress and records the start time if
// unset. Callers must cascade linked orders to DELIVERING in the same
// transaction.
func (a *DeliveryAssignment) Start() error {
	if err := a.Validate(); err != nil {
		return err
	}

	newStatus, err := a.status.Start()
	if err != nil {
		return err
	}

	a.status = newStatus
	if a.startedAt == nil {
		now := time.Now().UTC()
		a.startedAt = &now
	}
	return nil
}

// Complete transitions the trip to Completed and records the completion time
// if unset. Callers must cascade linked orders to DELIVERED in the same
// transaction.
func (a *DeliveryAssignment) Complete() error {
	if err := a.Validate(); err != nil {
		return err
	}

	newStatus, err := a.status.Complete()
	if err != nil {
		return err
	}

	a.status = newStatus
	if a.completedAt == nil {
		now := time.Now().UTC()
		a.completedAt = &now
	}
	return nil
}

// Cancel transitions the trip to Cancelled. Callers must detach linked
// orders in the same transaction; a cancelled assignment keeps its order
// list only as a historical record.
func (a *DeliveryAssignment) Cancel() error {
	if err := a.Validate(); err != nil {
		return err
	}

	newStatus, err := a.status.Cancel()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// AssignCourier links a courier to the trip. The courier must belong to the
// assignment's branch and be active; the trip must not be in a terminal
// state. Callers must propagate the courier id to every linked order in the
// same transaction.
func (a *DeliveryAssignment) AssignCourier(c *courier.Courier) error {
	if err := errors.Join(a.Validate(), c.Validate()); err != nil {
		return err
	}

	if a.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to assign a courier", a.status))
	}

	if !c.BelongsTo(a.branchID) {
		return ErrCourierBranchMismatch
	}

	if !c.IsActive() {
		return ErrCourierIsNotActive
	}

	id := c.ID()
	a.courierID = &id
	return nil
}

func (a *DeliveryAssignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *DeliveryAssignment) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	a.branchID = branchID
	return nil
}

func (a *DeliveryAssignment) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrNoOrdersLinked
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	a.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(a.orderIDs, orderIDs)
	return nil
}

func (a *DeliveryAssignment) setRoute(points []RoutePoint, distanceMeters int, timeMinutes int) error {
	// setOrderIDs runs first inside errors.Join, but guard against a failed
	// order list so the invariant message stays meaningful.
	if len(points) != len(a.orderIDs)+1 {
		return errs.NewValueIsInvalidErrorWithCause("routePoints",
			fmt.Errorf("route must contain the origin plus one point per order: got %d points for %d orders",
				len(points), len(a.orderIDs)))
	}

	for i, p := range points {
		if err := p.Validate(); err != nil {
			return err
		}
		if (i == 0) != p.IsOrigin() {
			return errs.NewValueIsInvalidErrorWithCause("routePoints",
				fmt.Errorf("point %d: origin must be first and only first", i))
		}
	}

	if distanceMeters < 0 {
		return errs.NewValueIsInvalidError("distanceMeters must not be negative")
	}

	if timeMinutes < 0 {
		return errs.NewValueIsInvalidError("timeMinutes must not be negative")
	}

	a.routePoints = make([]RoutePoint, len(points))
	copy(a.routePoints, points)
	a.distanceMeters = distanceMeters
	a.timeMinutes = timeMinutes
	return nil
}
