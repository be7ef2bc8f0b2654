// Package courierrepo gives the dispatch engine its read-only view of the
// shared couriers table. Workload counters are computed from the assignments
// and orders tables at read time, never stored.
package courierrepo

import (
	"time"

	"github.com/google/uuid"
)

// CourierDTO maps the columns of the couriers table the engine reads.
type CourierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID  uuid.UUID `gorm:"type:uuid;index"`
	Name      string    `gorm:"type:text"`
	Active    bool
	Online    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's naming convention to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}
