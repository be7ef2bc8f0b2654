package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository is the persistence contract for the
// DeliveryAssignment aggregate.
type AssignmentRepository interface {
	// Add persists a new assignment aggregate.
	Add(ctx context.Context, aggregate *assignment.DeliveryAssignment) error

	// Update persists changes to an existing assignment aggregate.
	Update(ctx context.Context, aggregate *assignment.DeliveryAssignment) error

	// Get retrieves an assignment by id, scoped to the branch. An assignment
	// belonging to another branch is reported as not found.
	Get(ctx context.Context, branchID kernel.UUID, id kernel.UUID) (*assignment.DeliveryAssignment, error)

	// Delete removes the assignment row. Order detachment is the caller's
	// responsibility and must run in the same transaction.
	Delete(ctx context.Context, id kernel.UUID) error
}
