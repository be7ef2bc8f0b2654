package policyrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPolicyRepository implements PolicyRepository using GORM.
type GormPolicyRepository struct {
	db *gorm.DB
}

// NewGormPolicyRepository creates a new GORM policy repository.
func NewGormPolicyRepository(db *gorm.DB) *GormPolicyRepository {
	return &GormPolicyRepository{db: db}
}

// GetOrCreate returns the branch's policy, lazily inserting the default on
// first access. The insert uses ON CONFLICT DO NOTHING so two concurrent
// first calls converge on one row.
func (r *GormPolicyRepository) GetOrCreate(ctx context.Context, branchID kernel.UUID) (*policy.DispatchPolicy, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dto PolicyDTO
	err := r.db.WithContext(ctx).First(&dto, "branch_id = ?", branchID.Bytes()).Error
	if err == nil {
		return toDomain(dto)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults, err := policy.NewDefaultDispatchPolicy(branchID)
	if err != nil {
		return nil, err
	}

	dto = fromDomain(defaults)
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	// Re-read in case a concurrent insert won the conflict.
	if err = r.db.WithContext(ctx).First(&dto, "branch_id = ?", branchID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
