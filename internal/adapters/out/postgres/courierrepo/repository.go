package courierrepo

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// courierWithWorkload joins a courier row with its computed workload: open
// trips (pending or in-progress assignments) and orders currently out for
// delivery.
const courierWithWorkload = `
	SELECT
		c.id,
		c.branch_id,
		c.name,
		c.active,
		c.online,
		COALESCE(t.open_trips, 0),
		COALESCE(d.delivering, 0)
	FROM couriers c
	LEFT JOIN (
		SELECT courier_id, COUNT(*) AS open_trips
		FROM assignments
		WHERE status IN ('PENDING', 'IN_PROGRESS') AND courier_id IS NOT NULL
		GROUP BY courier_id
	) t ON t.courier_id = c.id
	LEFT JOIN (
		SELECT courier_id, COUNT(*) AS delivering
		FROM orders
		WHERE status = 'DELIVERING' AND courier_id IS NOT NULL
		GROUP BY courier_id
	) d ON d.courier_id = c.id
`

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Get retrieves a courier with its workload counters, scoped to the branch.
func (r *GormCourierRepository) Get(
	ctx context.Context,
	branchID kernel.UUID,
	id kernel.UUID,
) (*courier.Courier, error) {
	if err := errors.Join(branchID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	row := r.db.WithContext(ctx).
		Raw(courierWithWorkload+" WHERE c.id = ? AND c.branch_id = ?", id.Bytes(), branchID.Bytes()).
		Row()

	c, err := scanCourier(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return c, nil
}

// GetAvailable retrieves the branch's active and online couriers that satisfy
// the availability rule, least busy first. Returns an empty slice when no
// courier qualifies.
func (r *GormCourierRepository) GetAvailable(
	ctx context.Context,
	branchID kernel.UUID,
	rule policy.AvailabilityRule,
) ([]*courier.Courier, error) {
	if err := errors.Join(branchID.Validate(), rule.Validate()); err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).
		Raw(courierWithWorkload+`
			WHERE c.branch_id = ? AND c.active AND c.online
			ORDER BY COALESCE(t.open_trips, 0) + COALESCE(d.delivering, 0), c.name
		`, branchID.Bytes()).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]*courier.Courier, 0)
	for rows.Next() {
		c, scanErr := scanCourier(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		available, availErr := c.IsAvailable(rule)
		if availErr != nil {
			return nil, availErr
		}
		if available {
			couriers = append(couriers, c)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourier(row rowScanner) (*courier.Courier, error) {
	var (
		id                   uuid.UUID
		branchID             uuid.UUID
		name                 string
		active               bool
		online               bool
		openTripCount        int
		deliveringOrderCount int
	)

	err := row.Scan(&id, &branchID, &name, &active, &online, &openTripCount, &deliveringOrderCount)
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	courierBranchID, err := kernel.UUIDFromBytes(branchID[:])
	if err != nil {
		return nil, err
	}

	return courier.NewCourier(courierID, courierBranchID, name, active, online, openTripCount, deliveringOrderCount)
}
