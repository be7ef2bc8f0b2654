package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteAssignmentCommandIsNotConstructed = errors.New(
	"DeleteAssignmentCommand must be created via NewDeleteAssignmentCommand constructor",
)

// DeleteAssignmentCommand requests removal of an assignment. Its orders are
// detached and return to the planning pool in the same transaction.
type DeleteAssignmentCommand struct { //nolint:recvcheck //using for validation
	branchID     kernel.UUID
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteAssignmentCommand creates a deletion command.
func NewDeleteAssignmentCommand(branchID kernel.UUID, assignmentID kernel.UUID) (DeleteAssignmentCommand, error) {
	cmd := DeleteAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setBranchID(branchID), cmd.setAssignmentID(assignmentID)); err != nil {
		return DeleteAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAssignmentCommandIsNotConstructed)
}

// BranchID returns the branch scope of the request.
func (c DeleteAssignmentCommand) BranchID() kernel.UUID {
	return c.branchID
}

// AssignmentID returns the assignment to delete.
func (c DeleteAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

func (c *DeleteAssignmentCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}

func (c *DeleteAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}
