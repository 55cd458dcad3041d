package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peopleops/hrms-backend-go/internal/domain/attendance"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

const uniqueViolation = "23505"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, clock_in, clock_out, break_minutes,
	total_hours, overtime_hours, status, location, notes,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var locationJSON []byte
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut, &att.BreakMinutes,
		&att.TotalHours, &att.OvertimeHours, &att.Status, &locationJSON, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if len(locationJSON) > 0 {
		var loc attendance.Location
		if err := json.Unmarshal(locationJSON, &loc); err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to decode attendance location: %w", err)
		}
		att.Location = &loc
	}
	return att, nil
}

func marshalLocation(loc *attendance.Location) ([]byte, error) {
	if loc == nil {
		return nil, nil
	}
	return json.Marshal(loc)
}

// Create implements attendance.Repository. The attendances table carries a
// unique (employee_id, date) key; a violation reports ErrAlreadyClockedIn.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	locationJSON, err := marshalLocation(att.Location)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to encode attendance location: %w", err)
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, clock_in, clock_out, break_minutes,
			total_hours, overtime_hours, status, location, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.ClockIn,
		att.ClockOut,
		att.BreakMinutes,
		att.TotalHours,
		att.OvertimeHours,
		att.Status,
		locationJSON,
		att.Notes,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetOpenSession implements attendance.Repository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &att, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	locationJSON, err := marshalLocation(att.Location)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to encode attendance location: %w", err)
	}

	query := `
		UPDATE attendances
		SET clock_in = $2, clock_out = $3, break_minutes = $4,
			total_hours = $5, overtime_hours = $6, status = $7,
			location = $8, notes = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = q.QueryRow(ctx, query,
		att.ID,
		att.ClockIn,
		att.ClockOut,
		att.BreakMinutes,
		att.TotalHours,
		att.OvertimeHours,
		att.Status,
		locationJSON,
		att.Notes,
	).Scan(&att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return att, nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, employeeID string, start, end time.Time, page, limit int) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	countQuery := `
		SELECT COUNT(*)
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`
	var total int64
	if err := q.QueryRow(ctx, countQuery, employeeID, start, end).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
		LIMIT $4 OFFSET $5
	`

	rows, err := q.Query(ctx, query, employeeID, start, end, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return records, total, nil
}

// ListByMonth implements attendance.Repository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return records, nil
}
