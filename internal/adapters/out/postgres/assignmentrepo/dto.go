// Package assignmentrepo persists the DeliveryAssignment aggregate. The route
// is stored as a JSONB column on the assignment row; order linkage lives on
// the orders table and is restored from the route's stop sequence.
package assignmentrepo

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignments.
type AssignmentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID       uuid.UUID  `gorm:"type:uuid;index"`
	Name           string     `gorm:"type:text"`
	CourierID      *uuid.UUID `gorm:"type:uuid;index"`
	Status         string     `gorm:"type:text;index"`
	RoutePoints    []byte     `gorm:"type:jsonb"`
	DistanceMeters int
	TimeMinutes    int
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides GORM's naming convention to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// routePointDTO is the JSON element shape of the route_points column. The
// query handlers read the same keys.
type routePointDTO struct {
	OrderID  *uuid.UUID `json:"order_id"`
	Lat      float64    `json:"lat"`
	Lng      float64    `json:"lng"`
	Address  string     `json:"address"`
	Label    string     `json:"label"`
	IsOrigin bool       `json:"is_origin"`
}

func fromDomain(a *assignment.DeliveryAssignment) (AssignmentDTO, error) {
	points := a.RoutePoints()
	rows := make([]routePointDTO, 0, len(points))
	for _, p := range points {
		row := routePointDTO{
			Lat:      p.Point().Lat(),
			Lng:      p.Point().Lng(),
			Address:  p.Address(),
			Label:    p.Label(),
			IsOrigin: p.IsOrigin(),
		}

		if id := p.OrderID(); id != nil {
			raw := id.Bytes()
			row.OrderID = &raw
		}

		rows = append(rows, row)
	}

	rawPoints, err := json.Marshal(rows)
	if err != nil {
		return AssignmentDTO{}, err
	}

	var courierID *uuid.UUID
	if id := a.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return AssignmentDTO{
		ID:             a.ID().Bytes(),
		BranchID:       a.BranchID().Bytes(),
		Name:           a.Name(),
		CourierID:      courierID,
		Status:         a.Status().String(),
		RoutePoints:    rawPoints,
		DistanceMeters: a.DistanceMeters(),
		TimeMinutes:    a.TimeMinutes(),
		StartedAt:      a.StartedAt(),
		CompletedAt:    a.CompletedAt(),
	}, nil
}

func toDomain(dto AssignmentDTO) (*assignment.DeliveryAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := assignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	points, orderIDs, err := routeFromJSON(dto.RoutePoints)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreDeliveryAssignment(
		id, branchID, dto.Name, courierID, status,
		points, dto.DistanceMeters, dto.TimeMinutes,
		dto.StartedAt, dto.CompletedAt, orderIDs,
	)
}

// routeFromJSON rebuilds the route points and derives the linked order ids
// from the stop sequence.
func routeFromJSON(raw []byte) ([]assignment.RoutePoint, []kernel.UUID, error) {
	var rows []routePointDTO
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, nil, errs.NewValueIsInvalidErrorWithCause("route_points", err)
	}

	points := make([]assignment.RoutePoint, 0, len(rows))
	orderIDs := make([]kernel.UUID, 0, len(rows))

	for _, row := range rows {
		point, err := kernel.NewGeoPoint(row.Lat, row.Lng)
		if err != nil {
			return nil, nil, err
		}

		if row.IsOrigin {
			origin, originErr := assignment.NewOriginRoutePoint(point, row.Address, row.Label)
			if originErr != nil {
				return nil, nil, originErr
			}
			points = append(points, origin)
			continue
		}

		if row.OrderID == nil {
			return nil, nil, errs.NewValueIsRequiredError("route point order_id")
		}

		orderID, err := kernel.UUIDFromBytes(row.OrderID[:])
		if err != nil {
			return nil, nil, err
		}

		stop, err := assignment.NewRoutePoint(orderID, point, row.Address, row.Label)
		if err != nil {
			return nil, nil, err
		}

		points = append(points, stop)
		orderIDs = append(orderIDs, orderID)
	}

	return points, orderIDs, nil
}
