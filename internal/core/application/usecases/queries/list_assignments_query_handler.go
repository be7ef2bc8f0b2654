package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAssignmentsQueryHandler reads the branch's assignment listing from the
// database.
type ListAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewListAssignmentsQueryHandler creates a handler for assignment listings.
func NewListAssignmentsQueryHandler(db *gorm.DB) ListAssignmentsQueryHandler {
	return ListAssignmentsQueryHandler{db: db}
}

// Handle executes the listing, newest assignments first.
func (h ListAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query ListAssignmentsQuery,
) ([]ListAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			a.id,
			a.name,
			a.status,
			a.courier_id,
			COALESCE(c.name, ''),
			a.distance_meters,
			a.time_minutes,
			a.started_at,
			a.completed_at,
			COUNT(o.id)
		FROM assignments a
		LEFT JOIN couriers c ON c.id = a.courier_id
		LEFT JOIN orders o ON o.assignment_id = a.id
		WHERE a.branch_id = ?
	`
	args := []any{query.BranchID().String()}

	if status := query.Status(); status != nil {
		sql += " AND a.status = ?"
		args = append(args, status.String())
	}

	sql += `
		GROUP BY a.id, c.name
		ORDER BY a.created_at DESC
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]ListAssignmentsQueryResponse, 0)

	for rows.Next() {
		var (
			id          uuid.UUID
			courierID   uuid.NullUUID
			startedAt   *time.Time
			completedAt *time.Time
			resp        ListAssignmentsQueryResponse
		)

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Status,
			&courierID,
			&resp.CourierName,
			&resp.DistanceMeters,
			&resp.TimeMinutes,
			&startedAt,
			&completedAt,
			&resp.OrderCount,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.StartedAt = startedAt
		resp.CompletedAt = completedAt

		if courierID.Valid {
			cid, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CourierID = &cid
		}

		assignments = append(assignments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
