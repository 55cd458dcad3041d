package employee

import "context"

// Repository is the read side of the employee directory. The core components
// resolve caller identity through it; employee CRUD lives outside this service.
type Repository interface {
	// GetByEmployeeID looks up an employee by business key.
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)

	// GetByUserID resolves an authenticated user to their employee record.
	GetByUserID(ctx context.Context, userID string) (Employee, error)

	// EmployeeIDsByDepartment lists business keys for a department, used by
	// the payroll summary filter.
	EmployeeIDsByDepartment(ctx context.Context, department string) ([]string, error)
}
