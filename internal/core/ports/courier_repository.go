package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"
)

// CourierRepository is the persistence contract for the courier collaborator.
// The engine only reads couriers; the assignment linkage is written through
// the order and assignment repositories.
type CourierRepository interface {
	// Get retrieves a courier by id, scoped to the branch. A courier
	// belonging to another branch is reported as not found.
	Get(ctx context.Context, branchID kernel.UUID, id kernel.UUID) (*courier.Courier, error)

	// GetAvailable retrieves the branch's active and online couriers that
	// satisfy the availability rule, loaded together with their open-trip
	// and delivering-order counts. Returns an empty slice (not an error)
	// when no courier qualifies.
	GetAvailable(ctx context.Context, branchID kernel.UUID, rule policy.AvailabilityRule) ([]*courier.Courier, error)
}
