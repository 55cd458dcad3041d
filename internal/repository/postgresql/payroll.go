package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	id, employee_id, period_month, period_year, basic_salary,
	allowances, deductions, overtime_hours, overtime_rate, overtime_amount,
	bonus, incentives, working_days, actual_working_days, leave_days,
	gross_salary, net_salary, status, payment_date, payment_method,
	payment_reference, processed_by, processed_date, created_at, updated_at
`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var allowancesJSON, deductionsJSON []byte
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PayPeriod.Month, &rec.PayPeriod.Year, &rec.BasicSalary,
		&allowancesJSON, &deductionsJSON, &rec.Overtime.Hours, &rec.Overtime.Rate, &rec.Overtime.Amount,
		&rec.Bonus, &rec.Incentives, &rec.WorkingDays, &rec.ActualWorkingDays, &rec.LeaveDays,
		&rec.GrossSalary, &rec.NetSalary, &rec.Status, &rec.PaymentDate, &rec.PaymentMethod,
		&rec.PaymentReference, &rec.ProcessedBy, &rec.ProcessedDate, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if len(allowancesJSON) > 0 {
		if err := json.Unmarshal(allowancesJSON, &rec.Allowances); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode allowances: %w", err)
		}
	}
	if len(deductionsJSON) > 0 {
		if err := json.Unmarshal(deductionsJSON, &rec.Deductions); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode deductions: %w", err)
		}
	}
	return rec, nil
}

// Create implements payroll.Repository. The payrolls table carries a unique
// (employee_id, period_month, period_year) key; a violation reports
// ErrPayrollAlreadyExists.
func (p *payrollRepository) Create(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	allowancesJSON, err := json.Marshal(rec.Allowances)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode allowances: %w", err)
	}
	deductionsJSON, err := json.Marshal(rec.Deductions)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode deductions: %w", err)
	}

	query := `
		INSERT INTO payrolls (
			id, employee_id, period_month, period_year, basic_salary,
			allowances, deductions, overtime_hours, overtime_rate, overtime_amount,
			bonus, incentives, working_days, actual_working_days, leave_days,
			gross_salary, net_salary, status, processed_by, processed_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.PayPeriod.Month,
		rec.PayPeriod.Year,
		rec.BasicSalary,
		allowancesJSON,
		deductionsJSON,
		rec.Overtime.Hours,
		rec.Overtime.Rate,
		rec.Overtime.Amount,
		rec.Bonus,
		rec.Incentives,
		rec.WorkingDays,
		rec.ActualWorkingDays,
		rec.LeaveDays,
		rec.GrossSalary,
		rec.NetSalary,
		rec.Status,
		rec.ProcessedBy,
		rec.ProcessedDate,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return payroll.PayrollRecord{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

// GetByID implements payroll.Repository.
func (p *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE id = $1`

	rec, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll by id: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndPeriod implements payroll.Repository.
func (p *payrollRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
		LIMIT 1
	`

	rec, err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll by employee and period: %w", err)
	}

	return &rec, nil
}

// UpdateStatus implements payroll.Repository.
func (p *payrollRepository) UpdateStatus(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payrolls
		SET status = $2, payment_date = $3, payment_method = $4,
			payment_reference = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.Status,
		rec.PaymentDate,
		rec.PaymentMethod,
		rec.PaymentReference,
	).Scan(&rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	return rec, nil
}

// List implements payroll.Repository.
func (p *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, p.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	addArg := func(clause string, value interface{}) {
		where += fmt.Sprintf(clause, argPos)
		args = append(args, value)
		argPos++
	}

	if filter.EmployeeID != "" {
		addArg(" AND employee_id = $%d", filter.EmployeeID)
	}
	if filter.Month != 0 {
		addArg(" AND period_month = $%d", filter.Month)
	}
	if filter.Year != 0 {
		addArg(" AND period_year = $%d", filter.Year)
	}
	if filter.Status != "" {
		addArg(" AND status = $%d", filter.Status)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payrolls"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	query := "SELECT " + payrollColumns + " FROM payrolls" + where +
		fmt.Sprintf(" ORDER BY period_year DESC, period_month DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll rows: %w", err)
	}

	return records, total, nil
}

// Summarize implements payroll.Repository.
func (p *payrollRepository) Summarize(ctx context.Context, month, year int, employeeIDs []string) (payroll.Summary, error) {
	q := GetQuerier(ctx, p.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if month != 0 {
		where += fmt.Sprintf(" AND period_month = $%d", argPos)
		args = append(args, month)
		argPos++
	}
	if year != 0 {
		where += fmt.Sprintf(" AND period_year = $%d", argPos)
		args = append(args, year)
		argPos++
	}
	if employeeIDs != nil {
		where += fmt.Sprintf(" AND employee_id = ANY($%d)", argPos)
		args = append(args, employeeIDs)
		argPos++
	}

	query := `
		SELECT
			COALESCE(SUM(gross_salary), 0),
			COALESCE(SUM(net_salary), 0),
			COALESCE(SUM(basic_salary), 0),
			COALESCE(AVG(gross_salary), 0),
			COALESCE(AVG(net_salary), 0),
			COUNT(*)
		FROM payrolls` + where

	var summary payroll.Summary
	err := q.QueryRow(ctx, query, args...).Scan(
		&summary.SumGross,
		&summary.SumNet,
		&summary.SumBasic,
		&summary.AvgGross,
		&summary.AvgNet,
		&summary.Count,
	)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to summarize payrolls: %w", err)
	}

	return summary, nil
}
