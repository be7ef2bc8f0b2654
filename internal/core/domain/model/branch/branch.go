// Package branch provides the dispatch engine's read model of a restaurant
// branch: identity, display name, and the coordinates used as the route
// origin. Branch records are owned by the branch service.
package branch

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrBranchIsNotConstructed is returned when a Branch instance was not created
// through the NewBranch factory method.
var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

// Branch is an immutable read projection of a restaurant branch. It carries
// the two coordinate sources the route builder's origin fallback chain uses:
// the branch's own stored coordinates and the geocoded address coordinates.
// Either may be missing.
type Branch struct {
	id kernel.UUID

	name string

	// location is the branch's stored coordinates (preferred origin)
	location *kernel.GeoPoint

	// addressLocation is the geocoded branch address (secondary origin)
	addressLocation *kernel.GeoPoint

	isConstructed bool
}

// NewBranch creates a branch projection with validation.
// Both coordinate sources are optional.
func NewBranch(
	id kernel.UUID,
	name string,
	location *kernel.GeoPoint,
	addressLocation *kernel.GeoPoint,
) (*Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	for _, p := range []*kernel.GeoPoint{location, addressLocation} {
		if p != nil {
			if err := p.Validate(); err != nil {
				return nil, err
			}
		}
	}

	return &Branch{
		id:              id,
		name:            name,
		location:        location,
		addressLocation: addressLocation,
		isConstructed:   true,
	}, nil
}

// Validate ensures the branch was created via NewBranch.
func (b *Branch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBranchIsNotConstructed
	}

	return nil
}

// ID returns the branch's unique identifier.
func (b *Branch) ID() kernel.UUID {
	return b.id
}

// Name returns the branch's display name.
func (b *Branch) Name() string {
	return b.name
}

// Location returns the branch's stored coordinates, or nil.
func (b *Branch) Location() *kernel.GeoPoint {
	return b.location
}

// AddressLocation returns the geocoded branch address coordinates, or nil.
func (b *Branch) AddressLocation() *kernel.GeoPoint {
	return b.addressLocation
}
