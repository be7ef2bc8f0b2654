package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListAssignmentsQueryIsNotConstructed = errors.New(
	"ListAssignmentsQuery must be created via NewListAssignmentsQuery constructor",
)

// ListAssignmentsQuery retrieves a branch's assignments, newest first, with
// an optional status filter.
type ListAssignmentsQuery struct {
	branchID kernel.UUID
	status   *assignment.Status

	guard guard.ConstructorGuard
}

// NewListAssignmentsQuery creates a branch-scoped listing query. statusName
// optionally filters by assignment status; empty means all statuses.
func NewListAssignmentsQuery(branchID kernel.UUID, statusName string) (ListAssignmentsQuery, error) {
	if err := branchID.Validate(); err != nil {
		return ListAssignmentsQuery{}, err
	}

	q := ListAssignmentsQuery{
		branchID: branchID,
		guard:    guard.NewConstructorGuard(),
	}

	if statusName != "" {
		status, err := assignment.StatusFromString(statusName)
		if err != nil {
			return ListAssignmentsQuery{}, err
		}
		q.status = &status
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrListAssignmentsQueryIsNotConstructed)
}

// BranchID returns the branch scope of the query.
func (q ListAssignmentsQuery) BranchID() kernel.UUID {
	return q.branchID
}

// Status returns the optional status filter, nil when all statuses.
func (q ListAssignmentsQuery) Status() *assignment.Status {
	if q.status == nil {
		return nil
	}
	status := *q.status
	return &status
}

// ListAssignmentsQueryResponse is one row of the assignment listing.
type ListAssignmentsQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Status         string
	CourierID      *kernel.UUID
	CourierName    string
	DistanceMeters int
	TimeMinutes    int
	OrderCount     int
	StartedAt      *time.Time
	CompletedAt    *time.Time
}
