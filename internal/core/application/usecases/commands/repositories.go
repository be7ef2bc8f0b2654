// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// PolicyRepoFactory provides access to the policy repository within a transaction.
	PolicyRepoFactory interface {
		PolicyRepository() ports.PolicyRepository
	}

	// BranchRepoFactory provides access to the branch repository within a transaction.
	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	// AssignmentUoW manages transactions touching assignments and their
	// linked orders. Used by status changes and deletion, where the
	// assignment write and the order cascade must commit as a unit.
	AssignmentUoW interface {
		TxManager
		AssignmentRepoFactory
		OrderRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// DispatchUoW additionally exposes couriers, for commands that validate
	// and propagate courier linkage.
	DispatchUoW interface {
		TxManager
		AssignmentRepoFactory
		OrderRepoFactory
		CourierRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// PlanningUoW exposes every repository the route planners touch:
	// assignments, orders, couriers, the branch policy and the branch itself.
	PlanningUoW interface {
		TxManager
		AssignmentRepoFactory
		OrderRepoFactory
		CourierRepoFactory
		PolicyRepoFactory
		BranchRepoFactory
	}

	// PlanningUoWFactory creates new planning unit of work instances.
	// Auto-create consumes one instance per cluster so that each cluster's
	// writes commit or roll back independently.
	PlanningUoWFactory interface {
		Create() PlanningUoW
	}
)
