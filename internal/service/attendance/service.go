package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/peopleops/hrms-backend-go/internal/domain/attendance"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
	"github.com/peopleops/hrms-backend-go/internal/pkg/identity"
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

const standardWorkDayHours = 8.0

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository

	// now is swapped in tests
	now func() time.Time
}

func NewAttendanceService(db *database.DB, attendanceRepo attendance.Repository, employeeRepo employee.Repository) attendance.Service {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// ComputeHours derives total and overtime hours from a closed session.
// Negative spans and breaks longer than the shift clamp to zero; overtime is
// whatever exceeds the standard eight hour day.
func ComputeHours(clockIn, clockOut time.Time, breakMinutes int) (totalHours, overtimeHours float64) {
	totalHours = clockOut.Sub(clockIn).Hours() - float64(breakMinutes)/60
	totalHours = math.Max(0, totalHours)
	overtimeHours = math.Max(0, totalHours-standardWorkDayHours)
	return roundHours(totalHours), roundHours(overtimeHours)
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// dayOf truncates a timestamp to UTC midnight, the storage granularity of the
// attendance date column.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveEmployee maps the request (or the caller's token) to an employee
// record. Explicit employee ids are for admin edits on behalf of others.
func (s *AttendanceServiceImpl) resolveEmployee(ctx context.Context, explicit *string) (employee.Employee, error) {
	if explicit != nil && *explicit != "" {
		return s.employeeRepo.GetByEmployeeID(ctx, *explicit)
	}

	id, err := identity.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	if id.EmployeeID != nil {
		return s.employeeRepo.GetByEmployeeID(ctx, *id.EmployeeID)
	}
	return s.employeeRepo.GetByUserID(ctx, id.UserID)
}

// ClockIn implements attendance.Service.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := dayOf(now)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	open, err := s.attendanceRepo.GetOpenSession(ctx, emp.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}
	if open != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	status := attendance.StatusPresent
	if req.Location != nil && req.Location.Type == attendance.LocationTypeRemote {
		status = attendance.StatusWorkFromHome
	}

	record := attendance.Attendance{
		EmployeeID: emp.EmployeeID,
		Date:       today,
		ClockIn:    now,
		Status:     status,
		Location:   req.Location,
		Notes:      req.Notes,
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(created), nil
}

// ClockOut implements attendance.Service.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	open, err := s.attendanceRepo.GetOpenSession(ctx, emp.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}
	now := s.now()
	// A session left open on a prior day is not closable here; the admin
	// update path fixes those. Closing it with today's clock would book the
	// whole gap as worked hours.
	if open == nil || !open.Date.Equal(dayOf(now)) {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenClockIn
	}

	record := *open
	record.ClockOut = &now
	record.BreakMinutes = req.BreakMinutes
	record.TotalHours, record.OvertimeHours = ComputeHours(record.ClockIn, now, req.BreakMinutes)
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	updated, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(updated), nil
}

// List implements attendance.Service.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	emp, err := s.resolveEmployeeForFilter(ctx, filter.EmployeeID)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if filter.StartDate != "" {
		parsed, ok := validator.IsValidDate(filter.StartDate)
		if !ok {
			return attendance.ListResponse{}, validator.ValidationErrors{{Field: "start_date", Message: "must be a YYYY-MM-DD date"}}
		}
		start = parsed
	}
	if filter.EndDate != "" {
		parsed, ok := validator.IsValidDate(filter.EndDate)
		if !ok {
			return attendance.ListResponse{}, validator.ValidationErrors{{Field: "end_date", Message: "must be a YYYY-MM-DD date"}}
		}
		end = parsed
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 31
	}

	records, total, err := s.attendanceRepo.List(ctx, emp.EmployeeID, start, end, page, limit)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	resp := attendance.ListResponse{
		Data:       make([]attendance.AttendanceResponse, 0, len(records)),
		Summary:    summarize(records),
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}
	for _, rec := range records {
		resp.Data = append(resp.Data, toResponse(rec))
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) resolveEmployeeForFilter(ctx context.Context, employeeID string) (employee.Employee, error) {
	if employeeID != "" {
		return s.employeeRepo.GetByEmployeeID(ctx, employeeID)
	}
	return s.resolveEmployee(ctx, nil)
}

// Summarize implements attendance.Service.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	if !validator.IsValidMonth(month) || year < 2000 {
		return attendance.MonthlySummary{}, attendance.ErrInvalidPeriod
	}

	records, err := s.attendanceRepo.ListByMonth(ctx, employeeID, month, year)
	if err != nil {
		return attendance.MonthlySummary{}, err
	}

	return summarize(records), nil
}

// MonthlyRecords implements attendance.Service.
func (s *AttendanceServiceImpl) MonthlyRecords(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	if !validator.IsValidMonth(month) || year < 2000 {
		return nil, attendance.ErrInvalidPeriod
	}
	return s.attendanceRepo.ListByMonth(ctx, employeeID, month, year)
}

// Update implements attendance.Service. Admin edit path: recomputes hours
// whenever the span or break changes.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ClockIn != nil {
		t, _ := validator.IsValidDateTime(*req.ClockIn)
		record.ClockIn = t.UTC()
	}
	if req.ClockOut != nil {
		t, _ := validator.IsValidDateTime(*req.ClockOut)
		utc := t.UTC()
		record.ClockOut = &utc
	}
	if req.BreakMinutes != nil {
		record.BreakMinutes = *req.BreakMinutes
	}
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if record.ClockOut != nil {
		if record.ClockOut.Before(record.ClockIn) {
			return attendance.AttendanceResponse{}, attendance.ErrClockOutBeforeIn
		}
		record.TotalHours, record.OvertimeHours = ComputeHours(record.ClockIn, *record.ClockOut, record.BreakMinutes)
	}

	updated, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(updated), nil
}

func summarize(records []attendance.Attendance) attendance.MonthlySummary {
	var sum attendance.MonthlySummary
	for _, rec := range records {
		sum.TotalDays++
		if rec.Status == attendance.StatusPresent || rec.Status == attendance.StatusWorkFromHome {
			sum.PresentDays++
		}
		sum.TotalHours += rec.TotalHours
		sum.OvertimeHours += rec.OvertimeHours
	}
	sum.TotalHours = roundHours(sum.TotalHours)
	sum.OvertimeHours = roundHours(sum.OvertimeHours)
	return sum
}

func toResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		Date:          rec.Date.Format("2006-01-02"),
		ClockIn:       rec.ClockIn.Format(time.RFC3339),
		BreakMinutes:  rec.BreakMinutes,
		TotalHours:    rec.TotalHours,
		OvertimeHours: rec.OvertimeHours,
		Status:        string(rec.Status),
		Location:      rec.Location,
		Notes:         rec.Notes,
	}
	if rec.ClockOut != nil {
		out := rec.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &out
	}
	return resp
}
