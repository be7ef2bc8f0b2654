package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
)

// Error is the JSON error body returned by every failure path.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateAssignmentRequest is the body of POST /assignments.
type CreateAssignmentRequest struct {
	Name      string   `json:"name"`
	CourierID *string  `json:"courier_id"`
	OrderIDs  []string `json:"order_ids"`
}

// AutoCreateRequest is the optional body of POST /assignments/auto.
type AutoCreateRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// ChangeStatusRequest is the body of PATCH /assignments/:id/status.
type ChangeStatusRequest struct {
	Action string `json:"action"`
}

// AssignCourierRequest is the body of PUT /assignments/:id/courier.
type AssignCourierRequest struct {
	CourierID string `json:"courier_id"`
}

// RoutePoint is one stop of an assignment route.
type RoutePoint struct {
	OrderID  *string `json:"order_id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Address  string  `json:"address"`
	Label    string  `json:"label"`
	IsOrigin bool    `json:"is_origin"`
}

// Assignment is the full assignment representation returned by the write
// endpoints and the detail view.
type Assignment struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Status         string            `json:"status"`
	CourierID      *string           `json:"courier_id"`
	CourierName    string            `json:"courier_name,omitempty"`
	DistanceMeters int               `json:"distance_meters"`
	TimeMinutes    int               `json:"time_minutes"`
	StartedAt      *time.Time        `json:"started_at"`
	CompletedAt    *time.Time        `json:"completed_at"`
	OrderIDs       []string          `json:"order_ids"`
	RoutePoints    []RoutePoint      `json:"route_points"`
	Orders         []AssignmentOrder `json:"orders,omitempty"`
}

// AssignmentOrder is the order summary embedded in the detail view.
type AssignmentOrder struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	AddressText  string `json:"address_text"`
	Status       string `json:"status"`
	TotalCents   int64  `json:"total_cents"`
}

// AssignmentListItem is one row of GET /assignments.
type AssignmentListItem struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	CourierID      *string    `json:"courier_id"`
	CourierName    string     `json:"courier_name,omitempty"`
	DistanceMeters int        `json:"distance_meters"`
	TimeMinutes    int        `json:"time_minutes"`
	OrderCount     int        `json:"order_count"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// AutoCreateResponse is the statistics block returned by the batch endpoint.
type AutoCreateResponse struct {
	TotalOrders      int          `json:"total_orders"`
	AssignedOrders   int          `json:"assigned_orders"`
	UnassignedOrders int          `json:"unassigned_orders"`
	RoutesCreated    int          `json:"routes_created"`
	Assignments      []Assignment `json:"assignments"`
}

func assignmentFromDomain(a *assignment.DeliveryAssignment) Assignment {
	var courierID *string
	if id := a.CourierID(); id != nil {
		s := id.String()
		courierID = &s
	}

	orderIDs := make([]string, 0, len(a.OrderIDs()))
	for _, id := range a.OrderIDs() {
		orderIDs = append(orderIDs, id.String())
	}

	points := make([]RoutePoint, 0, len(a.RoutePoints()))
	for _, p := range a.RoutePoints() {
		var orderID *string
		if id := p.OrderID(); id != nil {
			s := id.String()
			orderID = &s
		}

		points = append(points, RoutePoint{
			OrderID:  orderID,
			Lat:      p.Point().Lat(),
			Lng:      p.Point().Lng(),
			Address:  p.Address(),
			Label:    p.Label(),
			IsOrigin: p.IsOrigin(),
		})
	}

	return Assignment{
		ID:             a.ID().String(),
		Name:           a.Name(),
		Status:         a.Status().String(),
		CourierID:      courierID,
		DistanceMeters: a.DistanceMeters(),
		TimeMinutes:    a.TimeMinutes(),
		StartedAt:      a.StartedAt(),
		CompletedAt:    a.CompletedAt(),
		OrderIDs:       orderIDs,
		RoutePoints:    points,
	}
}

func assignmentFromQuery(resp *queries.GetAssignmentQueryResponse) Assignment {
	var courierID *string
	if resp.CourierID != nil {
		s := resp.CourierID.String()
		courierID = &s
	}

	points := make([]RoutePoint, 0, len(resp.RoutePoints))
	orderIDs := make([]string, 0, len(resp.RoutePoints))
	for _, p := range resp.RoutePoints {
		var orderID *string
		if p.OrderID != nil {
			s := p.OrderID.String()
			orderID = &s
			orderIDs = append(orderIDs, s)
		}

		points = append(points, RoutePoint{
			OrderID:  orderID,
			Lat:      p.Lat,
			Lng:      p.Lng,
			Address:  p.Address,
			Label:    p.Label,
			IsOrigin: p.IsOrigin,
		})
	}

	orders := make([]AssignmentOrder, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		orders = append(orders, AssignmentOrder{
			ID:           o.ID.String(),
			CustomerName: o.CustomerName,
			AddressText:  o.AddressText,
			Status:       o.Status,
			TotalCents:   o.TotalCents,
		})
	}

	return Assignment{
		ID:             resp.ID.String(),
		Name:           resp.Name,
		Status:         resp.Status,
		CourierID:      courierID,
		CourierName:    resp.CourierName,
		DistanceMeters: resp.DistanceMeters,
		TimeMinutes:    resp.TimeMinutes,
		StartedAt:      resp.StartedAt,
		CompletedAt:    resp.CompletedAt,
		OrderIDs:       orderIDs,
		RoutePoints:    points,
		Orders:         orders,
	}
}

func listItemFromQuery(resp queries.ListAssignmentsQueryResponse) AssignmentListItem {
	var courierID *string
	if resp.CourierID != nil {
		s := resp.CourierID.String()
		courierID = &s
	}

	return AssignmentListItem{
		ID:             resp.ID.String(),
		Name:           resp.Name,
		Status:         resp.Status,
		CourierID:      courierID,
		CourierName:    resp.CourierName,
		DistanceMeters: resp.DistanceMeters,
		TimeMinutes:    resp.TimeMinutes,
		OrderCount:     resp.OrderCount,
		StartedAt:      resp.StartedAt,
		CompletedAt:    resp.CompletedAt,
	}
}

func autoCreateResponseFromResult(result commands.AutoCreateRoutesResult) AutoCreateResponse {
	assignments := make([]Assignment, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		assignments = append(assignments, assignmentFromDomain(a))
	}

	return AutoCreateResponse{
		TotalOrders:      result.TotalOrders,
		AssignedOrders:   result.AssignedOrders,
		UnassignedOrders: result.UnassignedOrders,
		RoutesCreated:    result.RoutesCreated,
		Assignments:      assignments,
	}
}
