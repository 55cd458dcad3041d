package payroll

import "context"

// Repository defines data access for payroll records.
type Repository interface {
	// Create inserts a new record. The (employee_id, month, year) triple is
	// unique at the storage layer; a duplicate insert returns
	// ErrPayrollAlreadyExists.
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	GetByID(ctx context.Context, id string) (PayrollRecord, error)

	// GetByEmployeeAndPeriod returns nil when no record exists.
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*PayrollRecord, error)

	// UpdateStatus mutates status and payment fields only.
	UpdateStatus(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	List(ctx context.Context, filter Filter) ([]PayrollRecord, int64, error)

	// Summarize aggregates matching records. employeeIDs narrows the set when
	// non-nil (department filtering resolved by the caller).
	Summarize(ctx context.Context, month, year int, employeeIDs []string) (Summary, error)
}
