package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// routePointRow is the JSON shape route points are persisted in.
type routePointRow struct {
	OrderID  *uuid.UUID `json:"order_id"`
	Lat      float64    `json:"lat"`
	Lng      float64    `json:"lng"`
	Address  string     `json:"address"`
	Label    string     `json:"label"`
	IsOrigin bool       `json:"is_origin"`
}

// GetAssignmentQueryHandler reads one assignment with its route and linked
// orders from the database.
type GetAssignmentQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignmentQueryHandler creates a handler for assignment detail reads.
func NewGetAssignmentQueryHandler(db *gorm.DB) GetAssignmentQueryHandler {
	return GetAssignmentQueryHandler{db: db}
}

// Handle fetches the assignment. Orders are returned in delivery sequence,
// matching the route's stop order.
func (h GetAssignmentQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentQuery,
) (*GetAssignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.name,
			a.status,
			a.courier_id,
			COALESCE(c.name, ''),
			a.distance_meters,
			a.time_minutes,
			a.started_at,
			a.completed_at,
			a.route_points
		FROM assignments a
		LEFT JOIN couriers c ON c.id = a.courier_id
		WHERE a.id = ? AND a.branch_id = ?
	`, query.AssignmentID().String(), query.BranchID().String()).Row()

	var (
		id          uuid.UUID
		courierID   uuid.NullUUID
		routePoints []byte
		resp        GetAssignmentQueryResponse
		startedAt   *time.Time
		completedAt *time.Time
	)

	err := row.Scan(
		&id,
		&resp.Name,
		&resp.Status,
		&courierID,
		&resp.CourierName,
		&resp.DistanceMeters,
		&resp.TimeMinutes,
		&startedAt,
		&completedAt,
		&routePoints,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundErrorWithCause("assignmentID", query.AssignmentID(), err)
	}
	if err != nil {
		return nil, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	resp.StartedAt = startedAt
	resp.CompletedAt = completedAt

	if courierID.Valid {
		cid, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.CourierID = &cid
	}

	resp.RoutePoints, err = decodeRoutePoints(routePoints)
	if err != nil {
		return nil, err
	}

	resp.Orders, err = h.loadOrders(ctx, query.AssignmentID(), resp.RoutePoints)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func decodeRoutePoints(raw []byte) ([]RoutePointResponse, error) {
	var rows []routePointRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("route_points", err)
	}

	points := make([]RoutePointResponse, 0, len(rows))
	for _, r := range rows {
		p := RoutePointResponse{
			Lat:      r.Lat,
			Lng:      r.Lng,
			Address:  r.Address,
			Label:    r.Label,
			IsOrigin: r.IsOrigin,
		}

		if r.OrderID != nil {
			oid, err := kernel.UUIDFromBytes(r.OrderID[:])
			if err != nil {
				return nil, err
			}
			p.OrderID = &oid
		}

		points = append(points, p)
	}

	return points, nil
}

// loadOrders fetches the linked orders and sorts them into the route's stop
// sequence.
func (h GetAssignmentQueryHandler) loadOrders(
	ctx context.Context,
	assignmentID kernel.UUID,
	points []RoutePointResponse,
) ([]AssignmentOrderResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			address_text,
			status,
			total_cents
		FROM orders
		WHERE assignment_id = ?
	`, assignmentID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]AssignmentOrderResponse)
	for rows.Next() {
		var (
			id   uuid.UUID
			resp AssignmentOrderResponse
		)

		if err = rows.Scan(&id, &resp.CustomerName, &resp.AddressText, &resp.Status, &resp.TotalCents); err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		byID[resp.ID.String()] = resp
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	orders := make([]AssignmentOrderResponse, 0, len(byID))
	for _, p := range points {
		if p.OrderID == nil {
			continue
		}
		if o, ok := byID[p.OrderID.String()]; ok {
			orders = append(orders, o)
			delete(byID, p.OrderID.String())
		}
	}

	// Orders missing from the route still show up, at the end.
	for _, o := range byID {
		orders = append(orders, o)
	}

	return orders, nil
}
