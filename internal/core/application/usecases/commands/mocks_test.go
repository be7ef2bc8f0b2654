package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/branch"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/policy"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) GetDeliverable(
	ctx context.Context, branchID kernel.UUID, orderIDs []kernel.UUID,
) ([]*order.DeliverableOrder, error) {
	args := m.Called(ctx, branchID, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.DeliverableOrder), args.Error(1)
}

func (m *MockOrderRepository) GetByIDs(
	ctx context.Context, branchID kernel.UUID, orderIDs []kernel.UUID,
) ([]*order.DeliverableOrder, error) {
	args := m.Called(ctx, branchID, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.DeliverableOrder), args.Error(1)
}

func (m *MockOrderRepository) LinkToAssignment(
	ctx context.Context,
	orderIDs []kernel.UUID,
	assignmentID kernel.UUID,
	courierID *kernel.UUID,
	newStatus *order.Status,
) error {
	args := m.Called(ctx, orderIDs, assignmentID, courierID, newStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) SetCourier(ctx context.Context, orderIDs []kernel.UUID, courierID kernel.UUID) error {
	args := m.Called(ctx, orderIDs, courierID)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderIDs []kernel.UUID, newStatus order.Status) error {
	args := m.Called(ctx, orderIDs, newStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) DetachFromAssignment(ctx context.Context, orderIDs []kernel.UUID) error {
	args := m.Called(ctx, orderIDs)
	return args.Error(0)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Get(ctx context.Context, branchID kernel.UUID, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, branchID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAvailable(
	ctx context.Context, branchID kernel.UUID, rule policy.AvailabilityRule,
) ([]*courier.Courier, error) {
	args := m.Called(ctx, branchID, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, aggregate *assignment.DeliveryAssignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, aggregate *assignment.DeliveryAssignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(
	ctx context.Context, branchID kernel.UUID, id kernel.UUID,
) (*assignment.DeliveryAssignment, error) {
	args := m.Called(ctx, branchID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.DeliveryAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPolicyRepository struct{ mock.Mock }

func (m *MockPolicyRepository) GetOrCreate(ctx context.Context, branchID kernel.UUID) (*policy.DispatchPolicy, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policy.DispatchPolicy), args.Error(1)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

func (m *MockBranchRepository) GetAutoDispatchBranchIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

// MockPlanningUoW satisfies every command UoW interface, so test files share
// it for planning, dispatch and assignment scoped handlers.
type MockPlanningUoW struct{ mock.Mock }

func (m *MockPlanningUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockPlanningUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockPlanningUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockPlanningUoW) PolicyRepository() ports.PolicyRepository {
	args := m.Called()
	return args.Get(0).(ports.PolicyRepository)
}

func (m *MockPlanningUoW) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}

type MockPlanningUoWFactory struct{ mock.Mock }

func (m *MockPlanningUoWFactory) Create() commands.PlanningUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanningUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}
