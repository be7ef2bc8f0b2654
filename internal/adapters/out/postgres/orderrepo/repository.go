package orderrepo

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// deliverableStatuses are the order statuses eligible for routing.
var deliverableStatuses = []string{order.Preparing.String(), order.Ready.String()}

// dispatchDeliveryTypes are the delivery types that need a courier trip.
// The orders table also holds pickup and dine-in orders.
var dispatchDeliveryTypes = order.DispatchDeliveryTypeNames()

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// GetDeliverable retrieves the branch's orders eligible for routing, oldest
// first so batch planning clusters in arrival order.
func (r *GormOrderRepository) GetDeliverable(
	ctx context.Context,
	branchID kernel.UUID,
	orderIDs []kernel.UUID,
) ([]*order.DeliverableOrder, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID.Bytes()).
		Where("delivery_type IN ?", dispatchDeliveryTypes).
		Where("status IN ?", deliverableStatuses).
		Where("assignment_id IS NULL")

	if len(orderIDs) > 0 {
		tx = tx.Where("id IN ?", rawIDs(orderIDs))
	}

	var dtos []OrderDTO
	if err := tx.Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByIDs retrieves eligible projections for the given branch-scoped ids.
// Orders already linked to an assignment are excluded.
func (r *GormOrderRepository) GetByIDs(
	ctx context.Context,
	branchID kernel.UUID,
	orderIDs []kernel.UUID,
) ([]*order.DeliverableOrder, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID.Bytes()).
		Where("id IN ?", rawIDs(orderIDs)).
		Where("status IN ?", deliverableStatuses).
		Where("assignment_id IS NULL").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// LinkToAssignment links the orders to an assignment, optionally setting the
// courier and cascading a new status in the same write. Only unlinked orders
// match, so a concurrent batch that already claimed one of the orders makes
// the write fail and the caller's transaction roll back.
func (r *GormOrderRepository) LinkToAssignment(
	ctx context.Context,
	orderIDs []kernel.UUID,
	assignmentID kernel.UUID,
	courierID *kernel.UUID,
	newStatus *order.Status,
) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	updates := map[string]any{"assignment_id": assignmentID.Bytes()}
	if courierID != nil {
		updates["courier_id"] = courierID.Bytes()
	}
	if newStatus != nil {
		updates["status"] = newStatus.String()
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id IN ?", rawIDs(orderIDs)).
		Where("assignment_id IS NULL").
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected != int64(len(orderIDs)) {
		return fmt.Errorf("linked %d of %d orders, aborting", result.RowsAffected, len(orderIDs))
	}

	return nil
}

// SetCourier propagates a courier to the given orders.
func (r *GormOrderRepository) SetCourier(ctx context.Context, orderIDs []kernel.UUID, courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id IN ?", rawIDs(orderIDs)).
		Update("courier_id", courierID.Bytes()).Error
}

// UpdateStatus cascades a delivery status to the given orders.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderIDs []kernel.UUID, newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id IN ?", rawIDs(orderIDs)).
		Update("status", newStatus.String()).Error
}

// DetachFromAssignment releases the orders back to the planning pool.
func (r *GormOrderRepository) DetachFromAssignment(ctx context.Context, orderIDs []kernel.UUID) error {
	return r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id IN ?", rawIDs(orderIDs)).
		Updates(map[string]any{
			"assignment_id": nil,
			"courier_id":    nil,
			"status":        order.Preparing.String(),
		}).Error
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}

func toDomainSlice(dtos []OrderDTO) ([]*order.DeliverableOrder, error) {
	orders := make([]*order.DeliverableOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
