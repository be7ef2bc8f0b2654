// Package ports defines repository and unit-of-work interfaces for the
// dispatch engine. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for the order collaborator.
// The engine reads deliverable projections and writes only the assignment
// linkage and the delivery-status cascade.
type OrderRepository interface {
	// GetDeliverable retrieves the branch's orders eligible for routing:
	// status PREPARING or READY and not linked to a non-cancelled assignment.
	// When orderIDs is non-empty the result is restricted to those ids.
	GetDeliverable(ctx context.Context, branchID kernel.UUID, orderIDs []kernel.UUID) ([]*order.DeliverableOrder, error)

	// GetByIDs retrieves projections for the given branch-scoped order ids.
	// Orders already linked to a non-cancelled assignment are excluded.
	GetByIDs(ctx context.Context, branchID kernel.UUID, orderIDs []kernel.UUID) ([]*order.DeliverableOrder, error)

	// LinkToAssignment links the orders to an assignment, optionally setting
	// the courier and cascading a new delivery status in the same write.
	LinkToAssignment(
		ctx context.Context,
		orderIDs []kernel.UUID,
		assignmentID kernel.UUID,
		courierID *kernel.UUID,
		newStatus *order.Status,
	) error

	// SetCourier propagates a courier to the given orders without touching
	// their assignment linkage or status.
	SetCourier(ctx context.Context, orderIDs []kernel.UUID, courierID kernel.UUID) error

	// UpdateStatus cascades a delivery status to the given orders.
	UpdateStatus(ctx context.Context, orderIDs []kernel.UUID, newStatus order.Status) error

	// DetachFromAssignment releases the orders from their assignment:
	// clears assignment and courier linkage and resets status to PREPARING.
	DetachFromAssignment(ctx context.Context, orderIDs []kernel.UUID) error
}
