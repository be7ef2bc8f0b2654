package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
)

// AssignCourierCommandHandler assigns a courier to an existing assignment and
// propagates the courier to the linked orders in the same transaction.
type AssignCourierCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewAssignCourierCommandHandler creates a courier assignment handler.
func NewAssignCourierCommandHandler(uowFactory DispatchUoWFactory) *AssignCourierCommandHandler {
	return &AssignCourierCommandHandler{uowFactory: uowFactory}
}

// Handle assigns the courier. The aggregate rejects couriers from another
// branch, inactive couriers and terminal assignments.
func (h *AssignCourierCommandHandler) Handle(
	ctx context.Context,
	cmd AssignCourierCommand,
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

	c, err := uow.CourierRepository().Get(ctx, cmd.BranchID(), cmd.CourierID())
	if err != nil {
		return nil, err
	}

	if err = a.AssignCourier(c); err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().SetCourier(ctx, a.OrderIDs(), cmd.CourierID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
