package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrChangeAssignmentStatusCommandIsNotConstructed = errors.New(
	"ChangeAssignmentStatusCommand must be created via NewChangeAssignmentStatusCommand constructor",
)

// StatusAction is the lifecycle transition requested on an assignment.
type StatusAction int

const (
	ActionUnknown StatusAction = iota
	ActionStart
	ActionComplete
	ActionCancel
)

const (
	actionStartName    = "start"
	actionCompleteName = "complete"
	actionCancelName   = "cancel"
)

// Validate checks the action is one of the known transitions.
func (a StatusAction) Validate() error {
	switch a {
	case ActionStart, ActionComplete, ActionCancel:
		return nil
	case ActionUnknown:
		return errs.NewValueIsRequiredError("statusAction")
	default:
		return errs.NewValueIsInvalidError("statusAction")
	}
}

func (a StatusAction) String() string {
	switch a {
	case ActionStart:
		return actionStartName
	case ActionComplete:
		return actionCompleteName
	case ActionCancel:
		return actionCancelName
	default:
		return "unknown"
	}
}

// StatusActionFromString parses a transition from the API surface. Both the
// action verbs and the target status wire values are accepted; they name the
// same transitions.
func StatusActionFromString(name string) (StatusAction, error) {
	switch name {
	case actionStartName, assignment.InProgress.String():
		return ActionStart, nil
	case actionCompleteName, assignment.Completed.String():
		return ActionComplete, nil
	case actionCancelName, assignment.Cancelled.String():
		return ActionCancel, nil
	default:
		return ActionUnknown, errs.NewValueIsInvalidError("statusAction")
	}
}

// ChangeAssignmentStatusCommand requests a lifecycle transition on an
// assignment. The matching order cascade (delivering, delivered or detach)
// runs in the same transaction as the status write.
type ChangeAssignmentStatusCommand struct { //nolint:recvcheck //using for validation
	branchID     kernel.UUID
	assignmentID kernel.UUID
	action       StatusAction

	guard guard.ConstructorGuard
}

// NewChangeAssignmentStatusCommand creates a status transition command.
func NewChangeAssignmentStatusCommand(
	branchID kernel.UUID,
	assignmentID kernel.UUID,
	action StatusAction,
) (ChangeAssignmentStatusCommand, error) {
	cmd := ChangeAssignmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBranchID(branchID),
		cmd.setAssignmentID(assignmentID),
		cmd.setAction(action),
	); err != nil {
		return ChangeAssignmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeAssignmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeAssignmentStatusCommandIsNotConstructed)
}

// BranchID returns the branch scope of the request.
func (c ChangeAssignmentStatusCommand) BranchID() kernel.UUID {
	return c.branchID
}

// AssignmentID returns the assignment to transition.
func (c ChangeAssignmentStatusCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// Action returns the requested transition.
func (c ChangeAssignmentStatusCommand) Action() StatusAction {
	return c.action
}

func (c *ChangeAssignmentStatusCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}

func (c *ChangeAssignmentStatusCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *ChangeAssignmentStatusCommand) setAction(action StatusAction) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}
