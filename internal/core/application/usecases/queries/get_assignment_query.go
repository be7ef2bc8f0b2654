// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read projections straight from
// the database.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentQueryIsNotConstructed = errors.New(
	"GetAssignmentQuery must be created via NewGetAssignmentQuery constructor",
)

// GetAssignmentQuery retrieves one assignment with its route and orders.
type GetAssignmentQuery struct {
	branchID     kernel.UUID
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAssignmentQuery creates a branch-scoped single assignment query.
func NewGetAssignmentQuery(branchID kernel.UUID, assignmentID kernel.UUID) (GetAssignmentQuery, error) {
	if err := errors.Join(branchID.Validate(), assignmentID.Validate()); err != nil {
		return GetAssignmentQuery{}, err
	}

	return GetAssignmentQuery{
		branchID:     branchID,
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentQueryIsNotConstructed)
}

// BranchID returns the branch scope of the query.
func (q GetAssignmentQuery) BranchID() kernel.UUID {
	return q.branchID
}

// AssignmentID returns the assignment to fetch.
func (q GetAssignmentQuery) AssignmentID() kernel.UUID {
	return q.assignmentID
}

// RoutePointResponse is one stop of an assignment's route. OrderID is nil for
// the branch origin point.
type RoutePointResponse struct {
	OrderID  *kernel.UUID
	Lat      float64
	Lng      float64
	Address  string
	Label    string
	IsOrigin bool
}

// AssignmentOrderResponse is the order summary embedded in the assignment
// detail view.
type AssignmentOrderResponse struct {
	ID           kernel.UUID
	CustomerName string
	AddressText  string
	Status       string
	TotalCents   int64
}

// GetAssignmentQueryResponse is the assignment detail view: header fields,
// the ordered route and the linked orders in delivery sequence.
type GetAssignmentQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Status         string
	CourierID      *kernel.UUID
	CourierName    string
	DistanceMeters int
	TimeMinutes    int
	StartedAt      *time.Time
	CompletedAt    *time.Time
	RoutePoints    []RoutePointResponse
	Orders         []AssignmentOrderResponse
}
