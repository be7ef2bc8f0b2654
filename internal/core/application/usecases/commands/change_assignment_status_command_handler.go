package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/order"
)

// ChangeAssignmentStatusCommandHandler applies lifecycle transitions to an
// assignment and cascades the effect to its linked orders:
//
//	start    -> orders become DELIVERING
//	complete -> orders become DELIVERED
//	cancel   -> orders are detached and return to PREPARING
type ChangeAssignmentStatusCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewChangeAssignmentStatusCommandHandler creates a status transition handler.
func NewChangeAssignmentStatusCommandHandler(uowFactory AssignmentUoWFactory) *ChangeAssignmentStatusCommandHandler {
	return &ChangeAssignmentStatusCommandHandler{uowFactory: uowFactory}
}

// Handle runs the transition. Invalid transitions surface the aggregate's
// status errors; the assignment write and the order cascade commit together.
func (h *ChangeAssignmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeAssignmentStatusCommand,
) (*assignment.DeliveryAssignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	a, err := uow.AssignmentRepository().Get(ctx, cmd.BranchID(), cmd.AssignmentID())
	if err != nil {
		return nil, err
	}

	switch cmd.Action() {
	case ActionStart:
		err = a.Start()
	case ActionComplete:
		err = a.Complete()
	case ActionCancel:
		err = a.Cancel()
	case ActionUnknown:
		err = cmd.Action().Validate()
	}
	if err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Update(ctx, a); err != nil {
		return nil, err
	}

	orderIDs := a.OrderIDs()
	switch cmd.Action() {
	case ActionStart:
		err = uow.OrderRepository().UpdateStatus(ctx, orderIDs, order.Delivering)
	case ActionComplete:
		err = uow.OrderRepository().UpdateStatus(ctx, orderIDs, order.Delivered)
	case ActionCancel:
		err = uow.OrderRepository().DetachFromAssignment(ctx, orderIDs)
	case ActionUnknown:
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
