// Package branchrepo gives the dispatch engine its read-only view of the
// shared branches table, including both coordinate sources used by the route
// origin fallback chain.
package branchrepo

import (
	"time"

	"dispatch/internal/core/domain/model/branch"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BranchDTO maps the columns of the branches table the engine reads. Lat/Lng
// are the operator-entered coordinates; AddressLat/AddressLng come from
// geocoding the street address.
type BranchDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:text"`
	Lat        *float64
	Lng        *float64
	AddressLat *float64
	AddressLng *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides GORM's naming convention to use "branches".
func (BranchDTO) TableName() string {
	return "branches"
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := optionalPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	addressLocation, err := optionalPoint(dto.AddressLat, dto.AddressLng)
	if err != nil {
		return nil, err
	}

	return branch.NewBranch(id, dto.Name, location, addressLocation)
}

func optionalPoint(lat *float64, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}

	return &point, nil
}
