package attendance

import (
	"context"
)

// Service is the time accounting component: it turns raw clock events into
// durations and aggregates per-employee per-period totals.
type Service interface {
	// ClockIn opens today's attendance record for the caller.
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the open session and computes total/overtime hours.
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// List returns records for a date range with an aggregate summary.
	List(ctx context.Context, filter Filter) (ListResponse, error)

	// Summarize aggregates one calendar month for an employee.
	Summarize(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)

	// MonthlyRecords returns the month's records ascending by date.
	MonthlyRecords(ctx context.Context, employeeID string, month, year int) ([]Attendance, error)

	// Update is the admin edit path for fixing wrong records.
	Update(ctx context.Context, req UpdateRequest) (AttendanceResponse, error)
}
