package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateAssignmentCommandIsNotConstructed = errors.New(
	"CreateAssignmentCommand must be created via NewCreateAssignmentCommand constructor",
)

// CreateAssignmentCommand requests manual creation of a delivery assignment
// from an explicit set of orders. The operator picks the orders, so no
// clustering and no courier capacity check applies; the optional courier is
// still validated for branch membership and active status.
type CreateAssignmentCommand struct { //nolint:recvcheck //using for validation
	branchID  kernel.UUID
	orderIDs  []kernel.UUID
	courierID *kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewCreateAssignmentCommand creates a manual assignment command. At least
// one order id is required; courierID and name are optional.
func NewCreateAssignmentCommand(
	branchID kernel.UUID,
	orderIDs []kernel.UUID,
	courierID *kernel.UUID,
	name string,
) (CreateAssignmentCommand, error) {
	cmd := CreateAssignmentCommand{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBranchID(branchID),
		cmd.setOrderIDs(orderIDs),
		cmd.setCourierID(courierID),
	); err != nil {
		return CreateAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAssignmentCommandIsNotConstructed)
}

// BranchID returns the branch the assignment belongs to.
func (c CreateAssignmentCommand) BranchID() kernel.UUID {
	return c.branchID
}

// OrderIDs returns the orders to include, in delivery sequence.
func (c CreateAssignmentCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// CourierID returns the optional courier to assign, nil when none.
func (c CreateAssignmentCommand) CourierID() *kernel.UUID {
	if c.courierID == nil {
		return nil
	}
	id := *c.courierID
	return &id
}

// Name returns the optional display name of the assignment.
func (c CreateAssignmentCommand) Name() string {
	return c.name
}

func (c *CreateAssignmentCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}

func (c *CreateAssignmentCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}

	seen := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id.String()]; dup {
			return errs.NewValueIsInvalidError("orderIDs must not contain duplicates")
		}
		seen[id.String()] = struct{}{}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}

func (c *CreateAssignmentCommand) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}

	if err := courierID.Validate(); err != nil {
		return err
	}

	id := *courierID
	c.courierID = &id
	return nil
}
