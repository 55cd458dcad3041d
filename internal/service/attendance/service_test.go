package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/domain/attendance"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	byEmployeeID map[string]employee.Employee
	byUserID     map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByEmployeeID(_ context.Context, employeeID string) (employee.Employee, error) {
	emp, ok := f.byEmployeeID[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	emp, ok := f.byUserID[userID]
	if !ok {
		return employee.Employee{}, employee.ErrNoEmployeeRecord
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) EmployeeIDsByDepartment(_ context.Context, department string) ([]string, error) {
	var ids []string
	for _, emp := range f.byEmployeeID {
		if emp.Professional.Department == department {
			ids = append(ids, emp.EmployeeID)
		}
	}
	return ids, nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == att.EmployeeID && existing.Date.Equal(att.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	f.nextID++
	att.ID = string(rune('a' + f.nextID))
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.Date.Equal(date) {
			found := att
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(_ context.Context, employeeID string) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.IsOpen() {
			found := att
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, employeeID string, start, end time.Time, _, _ int) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && !att.Date.Before(start) && !att.Date.After(end) {
			out = append(out, att)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && int(att.Date.Month()) == month && att.Date.Year() == year {
			out = append(out, att)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func newTestService(repo *fakeAttendanceRepo, fixedNow time.Time) *AttendanceServiceImpl {
	emps := &fakeEmployeeRepo{
		byEmployeeID: map[string]employee.Employee{
			"EMP-0001": {
				ID:         "u1",
				EmployeeID: "EMP-0001",
				Email:      "ada@example.com",
				Personal:   employee.PersonalInfo{FirstName: "Ada", LastName: "Lovelace"},
			},
		},
		byUserID: map[string]employee.Employee{},
	}
	return &AttendanceServiceImpl{
		attendanceRepo: repo,
		employeeRepo:   emps,
		now:            func() time.Time { return fixedNow },
	}
}

func TestComputeHours(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		out          time.Time
		breakMinutes int
		wantTotal    float64
		wantOvertime float64
	}{
		{"standard day", in.Add(9 * time.Hour), 60, 8, 0},
		{"overtime", in.Add(11 * time.Hour), 30, 10.5, 2.5},
		{"exactly eight hours", in.Add(8 * time.Hour), 0, 8, 0},
		{"short day", in.Add(4 * time.Hour), 0, 4, 0},
		{"break longer than shift clamps to zero", in.Add(1 * time.Hour), 120, 0, 0},
		{"clock out before clock in clamps to zero", in.Add(-1 * time.Hour), 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, overtime := ComputeHours(in, tt.out, tt.breakMinutes)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantOvertime, overtime)
		})
	}
}

func TestClockIn(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 2, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("opens today's record", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		svc := newTestService(repo, now)

		resp, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: strPtr("EMP-0001")})
		require.NoError(t, err)

		assert.Equal(t, "EMP-0001", resp.EmployeeID)
		assert.Equal(t, "2025-03-10", resp.Date)
		assert.Equal(t, string(attendance.StatusPresent), resp.Status)
		assert.Nil(t, resp.ClockOut)
	})

	t.Run("remote location marks work from home", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		svc := newTestService(repo, now)

		resp, err := svc.ClockIn(ctx, attendance.ClockInRequest{
			EmployeeID: strPtr("EMP-0001"),
			Location:   &attendance.Location{Type: attendance.LocationTypeRemote},
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusWorkFromHome), resp.Status)
	})

	t.Run("rejects a second clock-in on the same day", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		svc := newTestService(repo, now)

		_, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: strPtr("EMP-0001")})
		require.NoError(t, err)

		_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: strPtr("EMP-0001")})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	})

	t.Run("rejects while an older session is still open", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		_, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID: "EMP-0001",
			Date:       time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			ClockIn:    time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC),
			Status:     attendance.StatusPresent,
		})
		require.NoError(t, err)

		svc := newTestService(repo, now)
		_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: strPtr("EMP-0001")})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), now)
		_, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: strPtr("EMP-9999")})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestClockOut(t *testing.T) {
	ctx := context.Background()
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("closes the session and computes hours", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		created, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID: "EMP-0001",
			Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			ClockIn:    clockIn,
			Status:     attendance.StatusPresent,
		})
		require.NoError(t, err)

		svc := newTestService(repo, clockIn.Add(10*time.Hour))
		resp, err := svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID:   strPtr("EMP-0001"),
			BreakMinutes: 60,
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, resp.ID)
		require.NotNil(t, resp.ClockOut)
		assert.Equal(t, 9.0, resp.TotalHours)
		assert.Equal(t, 1.0, resp.OvertimeHours)
		assert.Equal(t, 60, resp.BreakMinutes)
	})

	t.Run("no open session", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), clockIn.Add(8*time.Hour))
		_, err := svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: strPtr("EMP-0001")})
		assert.ErrorIs(t, err, attendance.ErrNoOpenClockIn)
	})

	t.Run("a session left open yesterday is not closable", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		created, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID: "EMP-0001",
			Date:       time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			ClockIn:    time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC),
			Status:     attendance.StatusPresent,
		})
		require.NoError(t, err)

		svc := newTestService(repo, time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC))
		_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: strPtr("EMP-0001")})
		assert.ErrorIs(t, err, attendance.ErrNoOpenClockIn)

		stale, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, stale.ClockOut)
		assert.Zero(t, stale.TotalHours)
	})

	t.Run("negative break rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), clockIn)
		_, err := svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID:   strPtr("EMP-0001"),
			BreakMinutes: -5,
		})
		assert.Error(t, err)
	})
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()

	days := []struct {
		day      int
		status   attendance.Status
		total    float64
		overtime float64
	}{
		{3, attendance.StatusPresent, 8, 0},
		{4, attendance.StatusWorkFromHome, 9.5, 1.5},
		{5, attendance.StatusOnLeave, 0, 0},
		{6, attendance.StatusAbsent, 0, 0},
	}
	for _, d := range days {
		_, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID:    "EMP-0001",
			Date:          time.Date(2025, 3, d.day, 0, 0, 0, 0, time.UTC),
			ClockIn:       time.Date(2025, 3, d.day, 9, 0, 0, 0, time.UTC),
			TotalHours:    d.total,
			OvertimeHours: d.overtime,
			Status:        d.status,
		})
		require.NoError(t, err)
	}

	svc := newTestService(repo, time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC))

	summary, err := svc.Summarize(ctx, "EMP-0001", 3, 2025)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalDays)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 17.5, summary.TotalHours)
	assert.Equal(t, 1.5, summary.OvertimeHours)
}

func TestSummarizeInvalidPeriod(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), time.Now().UTC())

	_, err := svc.Summarize(context.Background(), "EMP-0001", 13, 2025)
	assert.ErrorIs(t, err, attendance.ErrInvalidPeriod)

	_, err = svc.Summarize(context.Background(), "EMP-0001", 1, 1999)
	assert.ErrorIs(t, err, attendance.ErrInvalidPeriod)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*fakeAttendanceRepo, string) {
		repo := newFakeAttendanceRepo()
		out := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
		created, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID:   "EMP-0001",
			Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			ClockIn:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			ClockOut:     &out,
			BreakMinutes: 60,
			TotalHours:   7,
			Status:       attendance.StatusPresent,
		})
		require.NoError(t, err)
		return repo, created.ID
	}

	t.Run("recomputes hours after edit", func(t *testing.T) {
		repo, id := seed(t)
		svc := newTestService(repo, time.Now().UTC())

		resp, err := svc.Update(ctx, attendance.UpdateRequest{
			ID:       id,
			ClockOut: strPtr("2025-03-10T19:00:00Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, 9.0, resp.TotalHours)
		assert.Equal(t, 1.0, resp.OvertimeHours)
	})

	t.Run("rejects clock-out before clock-in", func(t *testing.T) {
		repo, id := seed(t)
		svc := newTestService(repo, time.Now().UTC())

		_, err := svc.Update(ctx, attendance.UpdateRequest{
			ID:       id,
			ClockOut: strPtr("2025-03-10T08:00:00Z"),
		})
		assert.ErrorIs(t, err, attendance.ErrClockOutBeforeIn)
	})

	t.Run("unknown record", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), time.Now().UTC())
		_, err := svc.Update(ctx, attendance.UpdateRequest{ID: "missing"})
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})
}
