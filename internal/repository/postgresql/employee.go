package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_id, user_id, email,
	first_name, last_name, date_of_birth, gender, phone, address,
	department, designation, hire_date, work_email,
	bank_name, account_number, ifsc_code,
	is_active, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeID, &emp.UserID, &emp.Email,
		&emp.Personal.FirstName, &emp.Personal.LastName, &emp.Personal.DateOfBirth,
		&emp.Personal.Gender, &emp.Personal.Phone, &emp.Personal.Address,
		&emp.Professional.Department, &emp.Professional.Designation,
		&emp.Professional.HireDate, &emp.Professional.WorkEmail,
		&emp.Bank.BankName, &emp.Bank.AccountNumber, &emp.Bank.IFSCCode,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByEmployeeID implements employee.Repository.
func (e *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by employee id: %w", err)
	}

	return emp, nil
}

// GetByUserID implements employee.Repository.
func (e *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNoEmployeeRecord
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}

	return emp, nil
}

// EmployeeIDsByDepartment implements employee.Repository.
func (e *employeeRepository) EmployeeIDsByDepartment(ctx context.Context, department string) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT employee_id FROM employees WHERE department = $1 AND is_active`

	rows, err := q.Query(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by department: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return ids, nil
}
