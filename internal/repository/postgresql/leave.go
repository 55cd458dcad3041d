package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	id, employee_id, leave_type, start_date, end_date, is_half_day,
	total_days, reason, status, approved_by, approved_date,
	rejection_reason, applied_date, created_at, updated_at
`

func scanLeave(row pgx.Row) (leave.Application, error) {
	var app leave.Application
	err := row.Scan(
		&app.ID, &app.EmployeeID, &app.LeaveType, &app.StartDate, &app.EndDate, &app.IsHalfDay,
		&app.TotalDays, &app.Reason, &app.Status, &app.ApprovedBy, &app.ApprovedDate,
		&app.RejectionReason, &app.AppliedDate, &app.CreatedAt, &app.UpdatedAt,
	)
	return app, err
}

// Create implements leave.Repository.
func (l *leaveRepository) Create(ctx context.Context, app leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	if app.ID == "" {
		app.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leaves (
			id, employee_id, leave_type, start_date, end_date, is_half_day,
			total_days, reason, status, applied_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		app.ID,
		app.EmployeeID,
		app.LeaveType,
		app.StartDate,
		app.EndDate,
		app.IsHalfDay,
		app.TotalDays,
		app.Reason,
		app.Status,
		app.AppliedDate,
	).Scan(&app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return app, nil
}

// GetByID implements leave.Repository.
func (l *leaveRepository) GetByID(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE id = $1`

	app, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrLeaveNotFound
		}
		return leave.Application{}, fmt.Errorf("failed to get leave by id: %w", err)
	}

	return app, nil
}

// HasOverlapping implements leave.Repository. The test is inclusive on both
// bounds: existing.start <= new.end AND existing.end >= new.start.
func (l *leaveRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leaves
			WHERE employee_id = $1
			  AND status IN ('PENDING', 'APPROVED')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}

	return exists, nil
}

// Update implements leave.Repository. Only workflow fields mutate.
func (l *leaveRepository) Update(ctx context.Context, app leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leaves
		SET status = $2, approved_by = $3, approved_date = $4,
			rejection_reason = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		app.ID,
		app.Status,
		app.ApprovedBy,
		app.ApprovedDate,
		app.RejectionReason,
	).Scan(&app.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrLeaveNotFound
		}
		return leave.Application{}, fmt.Errorf("failed to update leave application: %w", err)
	}

	return app, nil
}

// List implements leave.Repository.
func (l *leaveRepository) List(ctx context.Context, filter leave.Filter) ([]leave.Application, int64, error) {
	q := GetQuerier(ctx, l.db)

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
	if filter.Status != "" {
		addArg(" AND status = $%d", filter.Status)
	}
	if filter.LeaveType != "" {
		addArg(" AND leave_type = $%d", filter.LeaveType)
	}
	if filter.StartDate != "" {
		addArg(" AND start_date >= $%d", filter.StartDate)
	}
	if filter.EndDate != "" {
		addArg(" AND end_date <= $%d", filter.EndDate)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM leaves"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	query := "SELECT " + leaveColumns + " FROM leaves" + where +
		fmt.Sprintf(" ORDER BY applied_date DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var apps []leave.Application
	for rows.Next() {
		app, err := scanLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave rows: %w", err)
	}

	return apps, total, nil
}

// UsedDaysByType implements leave.Repository.
func (l *leaveRepository) UsedDaysByType(ctx context.Context, employeeID string, year int) (map[leave.Type]float64, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT leave_type, COALESCE(SUM(total_days), 0)
		FROM leaves
		WHERE employee_id = $1
		  AND status = 'APPROVED'
		  AND start_date >= $2
		  AND start_date <= $3
		GROUP BY leave_type
	`

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	rows, err := q.Query(ctx, query, employeeID, yearStart, yearEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum used leave days: %w", err)
	}
	defer rows.Close()

	used := make(map[leave.Type]float64)
	for rows.Next() {
		var leaveType leave.Type
		var days float64
		if err := rows.Scan(&leaveType, &days); err != nil {
			return nil, fmt.Errorf("failed to scan used days row: %w", err)
		}
		used[leaveType] = days
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate used days rows: %w", err)
	}

	return used, nil
}

// ApprovedInRange implements leave.Repository.
func (l *leaveRepository) ApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves
		WHERE employee_id = $1
		  AND status = 'APPROVED'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves in range: %w", err)
	}
	defer rows.Close()

	var apps []leave.Application
	for rows.Next() {
		app, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave rows: %w", err)
	}

	return apps, nil
}

// LockEmployee implements leave.Repository. The advisory lock is transaction
// scoped; overlap range checks cannot ride on a unique index, so the check
// and insert are serialized per employee instead.
func (l *leaveRepository) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, l.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("failed to acquire employee leave lock: %w", err)
	}
	return nil
}
