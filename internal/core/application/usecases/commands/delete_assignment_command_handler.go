package commands

import (
	"context"
)

// DeleteAssignmentCommandHandler removes an assignment. The linked orders are
// detached first so they return to the planning pool; both writes commit as
// a unit. Deletion is allowed in any status.
type DeleteAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewDeleteAssignmentCommandHandler creates a deletion handler.
func NewDeleteAssignmentCommandHandler(uowFactory AssignmentUoWFactory) *DeleteAssignmentCommandHandler {
	return &DeleteAssignmentCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the assignment, detaching its orders in the same transaction.
func (h *DeleteAssignmentCommandHandler) Handle(ctx context.Context, cmd DeleteAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	a, err := uow.AssignmentRepository().Get(ctx, cmd.BranchID(), cmd.AssignmentID())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().DetachFromAssignment(ctx, a.OrderIDs()); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Delete(ctx, a.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
