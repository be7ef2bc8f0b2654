package ports

import (
	"context"

	"dispatch/internal/core/domain/model/branch"
	"dispatch/internal/core/domain/model/kernel"
)

// BranchRepository is the persistence contract for the branch collaborator.
type BranchRepository interface {
	// Get retrieves the branch projection, including both coordinate sources
	// used by the route origin fallback chain.
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)

	// GetAutoDispatchBranchIDs lists branches whose policy has autoDispatch
	// enabled; consumed by the background auto-routing job.
	GetAutoDispatchBranchIDs(ctx context.Context) ([]kernel.UUID, error)
}
