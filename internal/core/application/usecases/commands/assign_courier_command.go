package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand requests (re)assignment of a courier to an existing
// assignment. The courier propagates to the linked orders in the same
// transaction.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	branchID     kernel.UUID
	assignmentID kernel.UUID
	courierID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a courier assignment command.
func NewAssignCourierCommand(
	branchID kernel.UUID,
	assignmentID kernel.UUID,
	courierID kernel.UUID,
) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBranchID(branchID),
		cmd.setAssignmentID(assignmentID),
		cmd.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// BranchID returns the branch scope of the request.
func (c AssignCourierCommand) BranchID() kernel.UUID {
	return c.branchID
}

// AssignmentID returns the assignment receiving the courier.
func (c AssignCourierCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// CourierID returns the courier to assign.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AssignCourierCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}

func (c *AssignCourierCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
