package order

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrOrderIsNotConstructed is returned when a DeliverableOrder instance was not
// created through the NewDeliverableOrder factory method.
var ErrOrderIsNotConstructed = errors.New(
	"DeliverableOrder must be created via NewDeliverableOrder constructor")

// DeliverableOrder is an immutable read projection of an order that is a
// candidate for delivery routing. It carries just the attributes the dispatch
// engine needs: customer identity for the route label, the delivery address,
// coordinates for clustering, and the current status.
//
// The authoritative order record is owned by the order service; this
// projection is only used during planning and is never written back as a whole.
type DeliverableOrder struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// branchID scopes the order to its restaurant branch
	branchID kernel.UUID

	// customerName is the recipient's display name (may be empty)
	customerName string

	// addressText is the free-form delivery address
	addressText string

	// city and state locate the address for display purposes
	city  string
	state string

	// totalCents is the order's monetary total in the smallest currency unit
	totalCents int64

	// location is the geocoded delivery point (nil when geocoding failed)
	location *kernel.GeoPoint

	// deliveryType distinguishes courier deliveries from pickup and dine-in
	deliveryType DeliveryType

	// status is the order's current delivery-related state
	status Status

	// isConstructed ensures the projection was created via NewDeliverableOrder
	isConstructed bool
}

// NewDeliverableOrder creates a DeliverableOrder projection with validation.
// The order and branch identifiers must be valid; customer name and location
// are optional because upstream records may lack them (such orders are
// filtered out before clustering, see HasLocation and HasCustomer).
func NewDeliverableOrder(
	id kernel.UUID,
	branchID kernel.UUID,
	customerName string,
	addressText string,
	city string,
	state string,
	totalCents int64,
	location *kernel.GeoPoint,
	deliveryType DeliveryType,
	status Status,
) (*DeliverableOrder, error) {
	if err := errors.Join(id.Validate(), branchID.Validate(),
		deliveryType.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	return &DeliverableOrder{
		id:            id,
		branchID:      branchID,
		customerName:  customerName,
		addressText:   addressText,
		city:          city,
		state:         state,
		totalCents:    totalCents,
		location:      location,
		deliveryType:  deliveryType,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the projection was created via NewDeliverableOrder.
func (o *DeliverableOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *DeliverableOrder) IsEqual(other *DeliverableOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *DeliverableOrder) ID() kernel.UUID {
	return o.id
}

// BranchID returns the owning branch's identifier.
func (o *DeliverableOrder) BranchID() kernel.UUID {
	return o.branchID
}

// CustomerName returns the recipient's display name.
func (o *DeliverableOrder) CustomerName() string {
	return o.customerName
}

// AddressText returns the free-form delivery address.
func (o *DeliverableOrder) AddressText() string {
	return o.addressText
}

// City returns the delivery city.
func (o *DeliverableOrder) City() string {
	return o.city
}

// State returns the delivery state/region.
func (o *DeliverableOrder) State() string {
	return o.state
}

// TotalCents returns the order total in the smallest currency unit.
func (o *DeliverableOrder) TotalCents() int64 {
	return o.totalCents
}

// Location returns the geocoded delivery point, or nil when not geocoded.
func (o *DeliverableOrder) Location() *kernel.GeoPoint {
	return o.location
}

// DeliveryType returns how the order reaches the customer.
func (o *DeliverableOrder) DeliveryType() DeliveryType {
	return o.deliveryType
}

// Status returns the order's current delivery-related state.
func (o *DeliverableOrder) Status() Status {
	return o.status
}

// HasLocation reports whether the order carries valid coordinates.
func (o *DeliverableOrder) HasLocation() bool {
	return o.location != nil && o.location.Validate() == nil
}

// HasCustomer reports whether the order carries a customer identity.
func (o *DeliverableOrder) HasCustomer() bool {
	return o.customerName != ""
}

// IsRoutable reports whether the order can participate in route planning:
// it must be in a deliverable status and carry both coordinates and a customer.
func (o *DeliverableOrder) IsRoutable() bool {
	return o.status.IsDeliverable() && o.HasLocation() && o.HasCustomer()
}
