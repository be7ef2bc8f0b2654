package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"
	"dispatch/internal/pkg/errs"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is the dispatch engine's read model of a delivery courier. The
// courier record itself is owned by the courier service; the engine reads it
// together with two workload counters and only ever writes the assignment
// linkage back.
//
// Business rules:
//   - A courier must belong to a branch and carry a non-empty name
//   - Only active and online couriers can be considered for new work
//   - Availability further depends on the branch policy's availability rule
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID

	// branchID scopes the courier to its branch
	branchID kernel.UUID

	// name is the courier's display name
	name string

	// active marks whether the courier is enabled at all
	active bool

	// online marks whether the courier is currently on shift
	online bool

	// openTripCount is the number of assignments in PENDING or IN_PROGRESS
	// status currently referencing this courier
	openTripCount int

	// deliveringOrderCount is the number of orders in DELIVERING status
	// currently carried by this courier
	deliveringOrderCount int

	// isConstructed ensures the courier was created via NewCourier
	isConstructed bool
}

// NewCourier creates a courier read model with validation. The workload
// counters are the availability snapshot taken when the courier was loaded;
// they are advisory within a planning batch (see the auto-create handler).
func NewCourier(
	id kernel.UUID,
	branchID kernel.UUID,
	name string,
	active bool,
	online bool,
	openTripCount int,
	deliveringOrderCount int,
) (*Courier, error) {
	if err := errors.Join(id.Validate(), branchID.Validate()); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, ErrNameIsRequired
	}

	if openTripCount < 0 || deliveringOrderCount < 0 {
		return nil, errs.NewValueIsInvalidError("workload counters must not be negative")
	}

	return &Courier{
		id:                   id,
		branchID:             branchID,
		name:                 name,
		active:               active,
		online:               online,
		openTripCount:        openTripCount,
		deliveringOrderCount: deliveringOrderCount,
		isConstructed:        true,
	}, nil
}

// Validate ensures the courier was created via NewCourier.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}

	return nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// BranchID returns the branch the courier belongs to.
func (c *Courier) BranchID() kernel.UUID {
	return c.branchID
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// IsActive reports whether the courier is enabled.
func (c *Courier) IsActive() bool {
	return c.active
}

// IsOnline reports whether the courier is currently on shift.
func (c *Courier) IsOnline() bool {
	return c.online
}

// OpenTripCount returns the number of open assignments referencing this courier.
func (c *Courier) OpenTripCount() int {
	return c.openTripCount
}

// DeliveringOrderCount returns the number of orders this courier has in DELIVERING status.
func (c *Courier) DeliveringOrderCount() int {
	return c.deliveringOrderCount
}

// BelongsTo reports whether the courier belongs to the given branch.
func (c *Courier) BelongsTo(branchID kernel.UUID) bool {
	return c.branchID.IsEqual(branchID)
}

// IsAvailable evaluates the branch policy's availability rule against the
// courier's workload snapshot. Inactive or offline couriers are never available.
//
// Rules:
//   - AfterAllDelivered: no orders currently in DELIVERING status
//   - AfterTripCompleted: no assignments in PENDING or IN_PROGRESS status
func (c *Courier) IsAvailable(rule policy.AvailabilityRule) (bool, error) {
	if err := errors.Join(c.Validate(), rule.Validate()); err != nil {
		return false, err
	}

	if !c.active || !c.online {
		return false, nil
	}

	switch rule {
	case policy.AfterAllDelivered:
		return c.deliveringOrderCount == 0, nil
	case policy.AfterTripCompleted:
		return c.openTripCount == 0, nil
	default:
		return false, errs.NewValueIsInvalidError("availability rule is invalid")
	}
}
