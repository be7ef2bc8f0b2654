package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// CreateAssignmentCommandHandler creates an assignment from operator-picked
// orders in a single transaction: route, aggregate, optional courier linkage
// and the order linkage commit as a unit.
type CreateAssignmentCommandHandler struct {
	uowFactory PlanningUoWFactory
	builder    services.RouteBuilder
}

// NewCreateAssignmentCommandHandler creates a handler for manual assignment
// creation.
func NewCreateAssignmentCommandHandler(uowFactory PlanningUoWFactory) *CreateAssignmentCommandHandler {
	return &CreateAssignmentCommandHandler{
		uowFactory: uowFactory,
		builder:    services.NewRouteBuilder(),
	}
}

// Handle creates the assignment. Every requested order must exist in the
// branch, be eligible and carry coordinates; the stops keep the order of the
// command's id list.
func (h *CreateAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateAssignmentCommand,
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

	b, err := uow.BranchRepository().Get(ctx, cmd.BranchID())
	if err != nil {
		return nil, err
	}

	pol, err := uow.PolicyRepository().GetOrCreate(ctx, cmd.BranchID())
	if err != nil {
		return nil, err
	}

	orderIDs := cmd.OrderIDs()

	found, err := uow.OrderRepository().GetByIDs(ctx, cmd.BranchID(), orderIDs)
	if err != nil {
		return nil, err
	}

	orders, err := sequenceOrders(orderIDs, found)
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		if !o.DeliveryType().RequiresDispatch() {
			return nil, errs.NewValueIsInvalidError(
				"order " + o.ID().String() + " has delivery type " + o.DeliveryType().String() +
					" and does not require dispatch")
		}

		if !o.IsRoutable() {
			return nil, errs.NewValueIsInvalidError(
				"order " + o.ID().String() + " has no coordinates or customer and cannot be routed")
		}
	}

	origin, err := services.ResolveBranchOrigin(b)
	if err != nil {
		return nil, err
	}

	originPoint, err := assignment.NewOriginRoutePoint(origin.Point, "", b.Name())
	if err != nil {
		return nil, err
	}

	route, err := h.builder.Build(originPoint, orders)
	if err != nil {
		return nil, err
	}

	a, err := assignment.NewDeliveryAssignment(
		kernel.NewUUID(), cmd.BranchID(), cmd.Name(), route.Points, route.DistanceMeters, route.TimeMinutes, orderIDs)
	if err != nil {
		return nil, err
	}

	if courierID := cmd.CourierID(); courierID != nil {
		c, courierErr := uow.CourierRepository().Get(ctx, cmd.BranchID(), *courierID)
		if courierErr != nil {
			return nil, courierErr
		}

		if err = a.AssignCourier(c); err != nil {
			return nil, err
		}
	}

	var cascade *order.Status
	if pol.AutoDispatch() {
		if err = a.Start(); err != nil {
			return nil, err
		}
		delivering := order.Delivering
		cascade = &delivering
	}

	if err = uow.AssignmentRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().LinkToAssignment(ctx, orderIDs, a.ID(), cmd.CourierID(), cascade); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// sequenceOrders reorders the fetched projections to the requested id
// sequence and reports the first id that was not found.
func sequenceOrders(
	orderIDs []kernel.UUID,
	found []*order.DeliverableOrder,
) ([]*order.DeliverableOrder, error) {
	byID := make(map[string]*order.DeliverableOrder, len(found))
	for _, o := range found {
		byID[o.ID().String()] = o
	}

	orders := make([]*order.DeliverableOrder, 0, len(orderIDs))
	for _, id := range orderIDs {
		o, ok := byID[id.String()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("orderID", id)
		}
		orders = append(orders, o)
	}

	return orders, nil
}
