package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAutoCreateRoutesCommandIsNotConstructed = errors.New(
	"AutoCreateRoutesCommand must be created via NewAutoCreateRoutesCommand constructor",
)

// AutoCreateRoutesCommand requests the batch auto-routing operation for a
// branch: cluster the deliverable orders, pair clusters with available
// couriers, and create one assignment per pair.
//
// Example:
//
//	cmd, err := NewAutoCreateRoutesCommand(branchID, nil)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoAvailableCouriers) {
//	    // nothing to dispatch right now
//	}
type AutoCreateRoutesCommand struct { //nolint:recvcheck //using for validation
	branchID kernel.UUID
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoCreateRoutesCommand creates an auto-routing command for the branch.
// orderIDs optionally restricts planning to the given orders; nil or empty
// means every deliverable order of the branch.
func NewAutoCreateRoutesCommand(branchID kernel.UUID, orderIDs []kernel.UUID) (AutoCreateRoutesCommand, error) {
	cmd := AutoCreateRoutesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setBranchID(branchID), cmd.setOrderIDs(orderIDs)); err != nil {
		return AutoCreateRoutesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoCreateRoutesCommand) Validate() error {
	return c.guard.Validate(ErrAutoCreateRoutesCommandIsNotConstructed)
}

// BranchID returns the branch to plan routes for.
func (c AutoCreateRoutesCommand) BranchID() kernel.UUID {
	return c.branchID
}

// OrderIDs returns the optional order-id restriction (empty means all).
func (c AutoCreateRoutesCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

func (c *AutoCreateRoutesCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}

func (c *AutoCreateRoutesCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}
