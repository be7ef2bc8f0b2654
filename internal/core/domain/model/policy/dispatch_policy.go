package policy

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// DefaultMaxPerTrip is the default maximum number of orders per trip.
	DefaultMaxPerTrip = 5
	// DefaultMaxClusterDistanceMeters is the default clustering radius.
	DefaultMaxClusterDistanceMeters = 3000
	// DefaultMaxClusterTimeMinutes is the default time window hint per cluster.
	DefaultMaxClusterTimeMinutes = 30

	// MinPerTrip is the smallest allowed trip capacity.
	MinPerTrip = 1
	// MinClusterDistanceMeters is the smallest allowed clustering radius.
	MinClusterDistanceMeters = 100
)

// ErrPolicyIsNotConstructed is returned when a DispatchPolicy instance was not
// created through one of its factory methods.
var ErrPolicyIsNotConstructed = errors.New(
	"DispatchPolicy must be created via NewDefaultDispatchPolicy or RestoreDispatchPolicy")

// DispatchPolicy is the per-branch configuration that bounds route planning:
// trip capacity, clustering radius, courier availability rule and whether
// newly created assignments start immediately. Exactly one policy exists per
// branch; it is created lazily with defaults on first access.
//
// The engine reads the policy; mutation happens through the branch settings
// surface, which is outside this core.
type DispatchPolicy struct {
	// branchID identifies the branch this policy configures (1:1)
	branchID kernel.UUID

	// autoDispatch controls whether new assignments start in progress
	autoDispatch bool

	// maxPerTrip bounds the number of orders grouped into one trip
	maxPerTrip int

	// maxClusterDistanceMeters bounds the seed-to-member distance within a cluster
	maxClusterDistanceMeters int

	// maxClusterTimeMinutes is a planning hint carried by the policy;
	// clustering itself does not consume it
	maxClusterTimeMinutes int

	// availabilityRule decides when a courier is free for new work
	availabilityRule AvailabilityRule

	// isConstructed ensures the policy was created via a factory method
	isConstructed bool
}

// NewDefaultDispatchPolicy creates the policy a branch gets on first access:
// manual dispatch, five orders per trip, a 3 km clustering radius and the
// AfterAllDelivered availability rule.
func NewDefaultDispatchPolicy(branchID kernel.UUID) (*DispatchPolicy, error) {
	return RestoreDispatchPolicy(
		branchID,
		false,
		DefaultMaxPerTrip,
		DefaultMaxClusterDistanceMeters,
		DefaultMaxClusterTimeMinutes,
		AfterAllDelivered,
	)
}

// RestoreDispatchPolicy reconstructs a policy from persisted state, re-running
// all bounds validation so invalid rows never reach business logic.
func RestoreDispatchPolicy(
	branchID kernel.UUID,
	autoDispatch bool,
	maxPerTrip int,
	maxClusterDistanceMeters int,
	maxClusterTimeMinutes int,
	availabilityRule AvailabilityRule,
) (*DispatchPolicy, error) {
	if err := errors.Join(branchID.Validate(), availabilityRule.Validate()); err != nil {
		return nil, err
	}

	if maxPerTrip < MinPerTrip {
		return nil, errs.NewValueIsOutOfRangeError("maxPerTrip", maxPerTrip, MinPerTrip, "unbounded")
	}

	if maxClusterDistanceMeters < MinClusterDistanceMeters {
		return nil, errs.NewValueIsOutOfRangeError(
			"maxClusterDistanceMeters", maxClusterDistanceMeters, MinClusterDistanceMeters, "unbounded")
	}

	if maxClusterTimeMinutes <= 0 {
		return nil, errs.NewValueIsInvalidError("maxClusterTimeMinutes must be positive")
	}

	return &DispatchPolicy{
		branchID:                 branchID,
		autoDispatch:             autoDispatch,
		maxPerTrip:               maxPerTrip,
		maxClusterDistanceMeters: maxClusterDistanceMeters,
		maxClusterTimeMinutes:    maxClusterTimeMinutes,
		availabilityRule:         availabilityRule,
		isConstructed:            true,
	}, nil
}

// Validate ensures the policy was created via a factory method.
func (p *DispatchPolicy) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPolicyIsNotConstructed
	}

	return nil
}

// BranchID returns the branch this policy configures.
func (p *DispatchPolicy) BranchID() kernel.UUID {
	return p.branchID
}

// AutoDispatch reports whether new assignments start immediately.
func (p *DispatchPolicy) AutoDispatch() bool {
	return p.autoDispatch
}

// MaxPerTrip returns the maximum number of orders per trip.
func (p *DispatchPolicy) MaxPerTrip() int {
	return p.maxPerTrip
}

// MaxClusterDistanceMeters returns the clustering radius.
func (p *DispatchPolicy) MaxClusterDistanceMeters() int {
	return p.maxClusterDistanceMeters
}

// MaxClusterTimeMinutes returns the time window hint per cluster.
func (p *DispatchPolicy) MaxClusterTimeMinutes() int {
	return p.maxClusterTimeMinutes
}

// AvailabilityRule returns the courier availability rule.
func (p *DispatchPolicy) AvailabilityRule() AvailabilityRule {
	return p.availabilityRule
}
