// Package policyrepo persists per-branch dispatch policies. The row is
// created lazily with defaults on first access.
package policyrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"

	"github.com/google/uuid"
)

// PolicyDTO represents the database structure for dispatch policies. The
// branch id is the primary key: exactly one policy per branch.
type PolicyDTO struct {
	BranchID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	AutoDispatch             bool
	MaxPerTrip               int
	MaxClusterDistanceMeters int
	MaxClusterTimeMinutes    int
	AvailabilityRule         string `gorm:"type:text"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName overrides GORM's naming convention to use "dispatch_policies".
func (PolicyDTO) TableName() string {
	return "dispatch_policies"
}

func fromDomain(p *policy.DispatchPolicy) PolicyDTO {
	return PolicyDTO{
		BranchID:                 p.BranchID().Bytes(),
		AutoDispatch:             p.AutoDispatch(),
		MaxPerTrip:               p.MaxPerTrip(),
		MaxClusterDistanceMeters: p.MaxClusterDistanceMeters(),
		MaxClusterTimeMinutes:    p.MaxClusterTimeMinutes(),
		AvailabilityRule:         p.AvailabilityRule().String(),
	}
}

func toDomain(dto PolicyDTO) (*policy.DispatchPolicy, error) {
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	rule, err := policy.AvailabilityRuleFromString(dto.AvailabilityRule)
	if err != nil {
		return nil, err
	}

	return policy.RestoreDispatchPolicy(
		branchID,
		dto.AutoDispatch,
		dto.MaxPerTrip,
		dto.MaxClusterDistanceMeters,
		dto.MaxClusterTimeMinutes,
		rule,
	)
}
