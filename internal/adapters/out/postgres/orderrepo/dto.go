// Package orderrepo gives the dispatch engine its view of the shared orders
// table. The engine reads deliverable projections and writes only the
// assignment linkage columns; order content belongs to the ordering system.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO maps the columns of the orders table the engine touches.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID     uuid.UUID  `gorm:"type:uuid;index"`
	CustomerName string     `gorm:"type:text"`
	AddressText  string     `gorm:"type:text"`
	City         string     `gorm:"type:text"`
	State        string     `gorm:"type:text"`
	TotalCents   int64
	Lat          *float64
	Lng          *float64
	DeliveryType string     `gorm:"type:text;index"`
	Status       string     `gorm:"type:text;index"`
	AssignmentID *uuid.UUID `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides GORM's naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func toDomain(dto OrderDTO) (*order.DeliverableOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, locErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if locErr != nil {
			return nil, locErr
		}
		location = &point
	}

	return order.NewDeliverableOrder(
		id, branchID, dto.CustomerName, dto.AddressText, dto.City, dto.State,
		dto.TotalCents, location, deliveryType, status,
	)
}
