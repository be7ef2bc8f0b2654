package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/policy"
	"dispatch/internal/core/domain/services"
)

// ErrCourierNoLongerAvailable is returned inside a cluster's transaction when
// the courier picked from the availability snapshot turned busy before the
// write. The cluster is skipped, not failed.
var ErrCourierNoLongerAvailable = errors.New("courier is no longer available")

// AutoCreateRoutesResult is the statistics block of a batch auto-routing run.
// RoutesCreated can be lower than the number of clusters when couriers ran
// out or individual clusters failed; callers detect soft degradation by
// comparing AssignedOrders against TotalOrders.
type AutoCreateRoutesResult struct {
	TotalOrders      int
	AssignedOrders   int
	UnassignedOrders int
	RoutesCreated    int
	Assignments      []*assignment.DeliveryAssignment
}

// AutoCreateRoutesCommandHandler orchestrates batch auto-routing for a branch:
// resolve the dispatch policy, load deliverable orders and available couriers,
// cluster the orders, and create one assignment per cluster/courier pair.
//
// Consistency model:
//   - Concurrent runs for the same branch are serialized by an in-process
//     per-branch mutex, so two batches cannot double-assign the same order.
//   - Each cluster commits in its own transaction; a failing cluster is
//     rolled back, logged, and skipped while its siblings proceed.
//   - The courier availability snapshot is re-checked inside each cluster's
//     transaction before the courier is linked.
type AutoCreateRoutesCommandHandler struct {
	uowFactory PlanningUoWFactory
	clusterer  services.ProximityClusterer
	builder    services.RouteBuilder
	logger     *slog.Logger
	locks      *branchLocks
}

// NewAutoCreateRoutesCommandHandler creates a handler for batch auto-routing.
// The handler must be shared across requests for the per-branch serialization
// to be effective; the composition root creates it once.
func NewAutoCreateRoutesCommandHandler(
	uowFactory PlanningUoWFactory,
	logger *slog.Logger,
) *AutoCreateRoutesCommandHandler {
	return &AutoCreateRoutesCommandHandler{
		uowFactory: uowFactory,
		clusterer:  services.NewProximityClusterer(),
		builder:    services.NewRouteBuilder(),
		logger:     logger.With("component", "auto_create_routes"),
		locks:      newBranchLocks(),
	}
}

// Handle runs the batch. Validation failures (unknown branch, no orders, no
// couriers) abort before any write; per-cluster write failures degrade the
// statistics instead of failing the batch.
func (h *AutoCreateRoutesCommandHandler) Handle(
	ctx context.Context,
	cmd AutoCreateRoutesCommand,
) (AutoCreateRoutesResult, error) {
	if err := cmd.Validate(); err != nil {
		return AutoCreateRoutesResult{}, err
	}

	unlock := h.locks.lock(cmd.BranchID())
	defer unlock()

	// Read phase runs outside any transaction; writes are per cluster.
	uow := h.uowFactory.Create()

	b, err := uow.BranchRepository().Get(ctx, cmd.BranchID())
	if err != nil {
		return AutoCreateRoutesResult{}, err
	}

	pol, err := uow.PolicyRepository().GetOrCreate(ctx, cmd.BranchID())
	if err != nil {
		return AutoCreateRoutesResult{}, err
	}

	orders, err := uow.OrderRepository().GetDeliverable(ctx, cmd.BranchID(), cmd.OrderIDs())
	if err != nil {
		return AutoCreateRoutesResult{}, err
	}
	if len(orders) == 0 {
		return AutoCreateRoutesResult{}, ErrNoDeliverableOrders
	}

	routable := make([]*order.DeliverableOrder, 0, len(orders))
	for _, o := range orders {
		if o.IsRoutable() {
			routable = append(routable, o)
		}
	}
	if len(routable) == 0 {
		return AutoCreateRoutesResult{}, ErrNoRoutableOrders
	}

	couriers, err := uow.CourierRepository().GetAvailable(ctx, cmd.BranchID(), pol.AvailabilityRule())
	if err != nil {
		return AutoCreateRoutesResult{}, err
	}
	if len(couriers) == 0 {
		return AutoCreateRoutesResult{}, ErrNoAvailableCouriers
	}

	groups, err := h.clusterer.Cluster(routable, pol.MaxPerTrip(), float64(pol.MaxClusterDistanceMeters()))
	if err != nil {
		return AutoCreateRoutesResult{}, err
	}

	origin, err := services.ResolveBranchOrigin(b)
	if err != nil {
		return AutoCreateRoutesResult{}, err
	}
	if origin.UsedFallback {
		h.logger.WarnContext(ctx, "branch has no coordinates, routing from fallback origin",
			"branch_id", cmd.BranchID().String())
	}

	originPoint, err := assignment.NewOriginRoutePoint(origin.Point, "", b.Name())
	if err != nil {
		return AutoCreateRoutesResult{}, err
	}

	result := AutoCreateRoutesResult{TotalOrders: len(routable)}

	for i := range min(len(groups), len(couriers)) {
		created, groupErr := h.createClusterAssignment(ctx, cmd.BranchID(), pol, originPoint, groups[i], couriers[i])
		if groupErr != nil {
			h.logger.ErrorContext(ctx, "skipping cluster: assignment creation failed",
				"branch_id", cmd.BranchID().String(),
				"courier_id", couriers[i].ID().String(),
				"orders", len(groups[i]),
				"error", groupErr)
			continue
		}

		result.RoutesCreated++
		result.AssignedOrders += len(groups[i])
		result.Assignments = append(result.Assignments, created)
	}

	result.UnassignedOrders = result.TotalOrders - result.AssignedOrders
	return result, nil
}

// createClusterAssignment builds and persists one cluster's assignment in its
// own transaction: route, aggregate, courier linkage, and order linkage with
// the optional auto-dispatch cascade commit or roll back as a unit.
func (h *AutoCreateRoutesCommandHandler) createClusterAssignment(
	ctx context.Context,
	branchID kernel.UUID,
	pol *policy.DispatchPolicy,
	origin assignment.RoutePoint,
	group []*order.DeliverableOrder,
	snapshot *courier.Courier,
) (*assignment.DeliveryAssignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The availability snapshot is advisory: re-check before linking.
	fresh, err := uow.CourierRepository().Get(ctx, branchID, snapshot.ID())
	if err != nil {
		return nil, err
	}

	available, err := fresh.IsAvailable(pol.AvailabilityRule())
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrCourierNoLongerAvailable
	}

	route, err := h.builder.Build(origin, group)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(group))
	for _, o := range group {
		orderIDs = append(orderIDs, o.ID())
	}

	a, err := assignment.NewDeliveryAssignment(
		kernel.NewUUID(), branchID, "", route.Points, route.DistanceMeters, route.TimeMinutes, orderIDs)
	if err != nil {
		return nil, err
	}

	if err = a.AssignCourier(fresh); err != nil {
		return nil, err
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

	courierID := fresh.ID()
	if err = uow.OrderRepository().LinkToAssignment(ctx, orderIDs, a.ID(), &courierID, cascade); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// branchLocks serializes auto-routing per branch within this process.
type branchLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newBranchLocks() *branchLocks {
	return &branchLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the branch's mutex and returns its unlock function.
func (l *branchLocks) lock(branchID kernel.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[branchID.String()]
	if !ok {
		m = &sync.Mutex{}
		l.locks[branchID.String()] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
