package assignment

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrRoutePointIsNotConstructed is returned when attempting to use an
// improperly initialized RoutePoint.
var ErrRoutePointIsNotConstructed = errs.NewValueIsRequiredError(
	"route point must be created via NewRoutePoint or NewOriginRoutePoint constructors")

// RoutePoint is an immutable value object representing one stop in an
// assignment's ordered path. The first point of every route is the branch
// origin (no order id, isOrigin flag set); every following point corresponds
// to exactly one linked order.
type RoutePoint struct { //nolint:recvcheck //using for validation
	// orderID identifies the order served at this stop; nil for the origin
	orderID *kernel.UUID

	// point is the stop's geographic position
	point kernel.GeoPoint

	// address is the stop's address text
	address string

	// label is the display label (customer name, or branch name for the origin)
	label string

	// isOrigin marks the branch origin point
	isOrigin bool

	guard guard.ConstructorGuard
}

// NewOriginRoutePoint creates the branch origin point that starts every route.
func NewOriginRoutePoint(point kernel.GeoPoint, address string, label string) (RoutePoint, error) {
	if err := point.Validate(); err != nil {
		return RoutePoint{}, err
	}

	return RoutePoint{
		point:    point,
		address:  address,
		label:    label,
		isOrigin: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewRoutePoint creates a delivery stop for the given order.
func NewRoutePoint(
	orderID kernel.UUID,
	point kernel.GeoPoint,
	address string,
	label string,
) (RoutePoint, error) {
	if err := errors.Join(orderID.Validate(), point.Validate()); err != nil {
		return RoutePoint{}, err
	}

	return RoutePoint{
		orderID: &orderID,
		point:   point,
		address: address,
		label:   label,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the RoutePoint was created through a constructor.
func (p RoutePoint) Validate() error {
	return p.guard.Validate(ErrRoutePointIsNotConstructed)
}

// OrderID returns the order served at this stop, or nil for the origin.
func (p RoutePoint) OrderID() *kernel.UUID {
	return p.orderID
}

// Point returns the stop's geographic position.
func (p RoutePoint) Point() kernel.GeoPoint {
	return p.point
}

// Address returns the stop's address text.
func (p RoutePoint) Address() string {
	return p.address
}

// Label returns the stop's display label.
func (p RoutePoint) Label() string {
	return p.label
}

// IsOrigin reports whether this is the branch origin point.
func (p RoutePoint) IsOrigin() bool {
	return p.isOrigin
}
