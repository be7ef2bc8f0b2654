package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"
)

// PolicyRepository is the persistence contract for per-branch dispatch
// policies.
type PolicyRepository interface {
	// GetOrCreate returns the branch's policy, lazily inserting the default
	// policy on first access. The insert is conflict-tolerant: two
	// concurrent first calls yield the same single row.
	GetOrCreate(ctx context.Context, branchID kernel.UUID) (*policy.DispatchPolicy, error)
}
