package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records.
type Repository interface {
	// Create inserts a new record. The (employee_id, date) pair is unique at
	// the storage layer; a duplicate insert returns ErrAlreadyClockedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// GetOpenSession returns the record awaiting clock-out, nil when none.
	GetOpenSession(ctx context.Context, employeeID string) (*Attendance, error)

	Update(ctx context.Context, att Attendance) (Attendance, error)

	// List returns rows in [start, end] ordered ascending by date, paginated.
	List(ctx context.Context, employeeID string, start, end time.Time, page, limit int) ([]Attendance, int64, error)

	// ListByMonth returns every record whose date falls inside the calendar
	// month, ascending by date. Payroll reads its snapshot through this.
	ListByMonth(ctx context.Context, employeeID string, month, year int) ([]Attendance, error)
}
