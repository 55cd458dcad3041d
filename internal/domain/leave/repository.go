package leave

import (
	"context"
	"time"
)

// Repository defines data access for leave applications.
type Repository interface {
	Create(ctx context.Context, app Application) (Application, error)

	GetByID(ctx context.Context, id string) (Application, error)

	// HasOverlapping reports whether any PENDING or APPROVED application of
	// the employee intersects [start, end] inclusively.
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	Update(ctx context.Context, app Application) (Application, error)

	List(ctx context.Context, filter Filter) ([]Application, int64, error)

	// UsedDaysByType sums total_days of APPROVED applications starting within
	// the calendar year, grouped by leave type.
	UsedDaysByType(ctx context.Context, employeeID string, year int) (map[Type]float64, error)

	// ApprovedInRange returns APPROVED applications overlapping [start, end].
	// Payroll reads its leave snapshot through this.
	ApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Application, error)

	// LockEmployee takes a per-employee advisory lock for the duration of the
	// surrounding transaction, serializing overlap-check-and-insert.
	LockEmployee(ctx context.Context, employeeID string) error
}
