package leave

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/domain/audit"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops/hrms-backend-go/internal/pkg/email"
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

func (f *fakeEmployeeRepo) EmployeeIDsByDepartment(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type fakeLeaveRepo struct {
	apps   map[string]leave.Application
	nextID int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{apps: make(map[string]leave.Application)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, app leave.Application) (leave.Application, error) {
	f.nextID++
	app.ID = "leave-" + strconv.Itoa(f.nextID)
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return leave.Application{}, leave.ErrLeaveNotFound
	}
	return app, nil
}

func (f *fakeLeaveRepo) HasOverlapping(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, app := range f.apps {
		if app.EmployeeID != employeeID {
			continue
		}
		if app.Status != leave.StatusPending && app.Status != leave.StatusApproved {
			continue
		}
		if app.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, app leave.Application) (leave.Application, error) {
	if _, ok := f.apps[app.ID]; !ok {
		return leave.Application{}, leave.ErrLeaveNotFound
	}
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, filter leave.Filter) ([]leave.Application, int64, error) {
	var out []leave.Application
	for _, app := range f.apps {
		if filter.EmployeeID != "" && app.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && string(app.Status) != filter.Status {
			continue
		}
		out = append(out, app)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) UsedDaysByType(_ context.Context, employeeID string, year int) (map[leave.Type]float64, error) {
	used := make(map[leave.Type]float64)
	for _, app := range f.apps {
		if app.EmployeeID == employeeID && app.Status == leave.StatusApproved && app.StartDate.Year() == year {
			used[app.LeaveType] += app.TotalDays
		}
	}
	return used, nil
}

func (f *fakeLeaveRepo) ApprovedInRange(_ context.Context, employeeID string, start, end time.Time) ([]leave.Application, error) {
	var out []leave.Application
	for _, app := range f.apps {
		if app.EmployeeID == employeeID && app.Status == leave.StatusApproved && app.Overlaps(start, end) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) LockEmployee(_ context.Context, _ string) error {
	return nil
}

type noopAuditRepo struct{}

func (noopAuditRepo) Record(_ context.Context, _ audit.Entry) error { return nil }

type noopEmailService struct{}

func (noopEmailService) SendLeaveNotification(_, _ string, _ email.LeaveDetails, _ email.LeaveNotificationKind) error {
	return nil
}

func (noopEmailService) SendPayrollNotification(_, _ string, _ email.PayrollDetails) error {
	return nil
}

func authedContext(t *testing.T, userID, role, employeeID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	claims := map[string]interface{}{
		"user_id": userID,
		"email":   "test@example.com",
		"role":    role,
		"type":    "access",
	}
	if employeeID != "" {
		claims["employee_id"] = employeeID
	}
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeLeaveRepo) *LeaveServiceImpl {
	emps := &fakeEmployeeRepo{
		byEmployeeID: map[string]employee.Employee{
			"EMP-0001": {
				ID:         "e1",
				EmployeeID: "EMP-0001",
				Email:      "ada@example.com",
				Personal:   employee.PersonalInfo{FirstName: "Ada", LastName: "Lovelace"},
			},
			"EMP-0002": {
				ID:         "e2",
				EmployeeID: "EMP-0002",
				Email:      "grace@example.com",
				Personal:   employee.PersonalInfo{FirstName: "Grace", LastName: "Hopper"},
			},
		},
		byUserID: map[string]employee.Employee{},
	}
	return &LeaveServiceImpl{
		leaveRepo:    repo,
		employeeRepo: emps,
		auditRepo:    noopAuditRepo{},
		emailService: noopEmailService{},
		now:          func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) },
		runTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func strPtr(s string) *string { return &s }

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("files a pending application", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		resp, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeEarned),
			StartDate:  "2025-03-10",
			EndDate:    "2025-03-14",
			Reason:     "family trip",
		})
		require.NoError(t, err)

		assert.Equal(t, string(leave.StatusPending), resp.Status)
		assert.Equal(t, 5.0, resp.TotalDays)
		assert.Equal(t, "EMP-0001", resp.EmployeeID)
	})

	t.Run("half day collapses to half a day", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		resp, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeCasual),
			StartDate:  "2025-03-10",
			EndDate:    "2025-03-10",
			IsHalfDay:  true,
			Reason:     "appointment",
		})
		require.NoError(t, err)
		assert.Equal(t, 0.5, resp.TotalDays)
	})

	t.Run("half day flag on a multi-day span books full days", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		resp, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeCasual),
			StartDate:  "2025-03-10",
			EndDate:    "2025-03-12",
			IsHalfDay:  true,
			Reason:     "appointment",
		})
		require.NoError(t, err)
		assert.Equal(t, 3.0, resp.TotalDays)
	})

	t.Run("rejects overlap with pending or approved leave", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		svc := newTestService(repo)

		_, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeEarned),
			StartDate:  "2025-03-10",
			EndDate:    "2025-03-14",
			Reason:     "family trip",
		})
		require.NoError(t, err)

		_, err = svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeSick),
			StartDate:  "2025-03-14",
			EndDate:    "2025-03-16",
			Reason:     "flu",
		})
		assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	})

	t.Run("another employee may overlap freely", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		svc := newTestService(repo)

		_, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeEarned),
			StartDate:  "2025-03-10",
			EndDate:    "2025-03-14",
			Reason:     "family trip",
		})
		require.NoError(t, err)

		_, err = svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0002"),
			LeaveType:  string(leave.TypeEarned),
			StartDate:  "2025-03-12",
			EndDate:    "2025-03-13",
			Reason:     "conference",
		})
		assert.NoError(t, err)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		_, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeEarned),
			StartDate:  "2025-03-14",
			EndDate:    "2025-03-10",
			Reason:     "time travel",
		})
		assert.Error(t, err)
	})
}

func TestDecide(t *testing.T) {
	seed := func(t *testing.T) (*LeaveServiceImpl, string) {
		repo := newFakeLeaveRepo()
		svc := newTestService(repo)
		resp, err := svc.Apply(context.Background(), leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeEarned),
			StartDate:  "2025-03-10",
			EndDate:    "2025-03-12",
			Reason:     "family trip",
		})
		require.NoError(t, err)
		return svc, resp.ID
	}

	t.Run("approver role required", func(t *testing.T) {
		svc, id := seed(t)
		ctx := authedContext(t, "u-emp", "EMPLOYEE", "EMP-0002")

		_, err := svc.Decide(ctx, leave.DecideRequest{LeaveID: id, Status: "APPROVED"})
		assert.Error(t, err)
	})

	t.Run("approves and stamps the approver", func(t *testing.T) {
		svc, id := seed(t)
		ctx := authedContext(t, "u-hr", "HR", "")

		resp, err := svc.Decide(ctx, leave.DecideRequest{LeaveID: id, Status: "APPROVED"})
		require.NoError(t, err)

		assert.Equal(t, string(leave.StatusApproved), resp.Status)
		require.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, "u-hr", *resp.ApprovedBy)
		assert.NotNil(t, resp.ApprovedDate)
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		svc, id := seed(t)
		ctx := authedContext(t, "u-hr", "HR", "")

		_, err := svc.Decide(ctx, leave.DecideRequest{LeaveID: id, Status: "REJECTED"})
		assert.ErrorIs(t, err, leave.ErrRejectionReasonRequired)
	})

	t.Run("rejects with a reason", func(t *testing.T) {
		svc, id := seed(t)
		ctx := authedContext(t, "u-manager", "MANAGER", "")

		resp, err := svc.Decide(ctx, leave.DecideRequest{
			LeaveID:         id,
			Status:          "REJECTED",
			RejectionReason: strPtr("short staffed that week"),
		})
		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusRejected), resp.Status)
		require.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "short staffed that week", *resp.RejectionReason)
	})

	t.Run("decided applications are terminal", func(t *testing.T) {
		svc, id := seed(t)
		ctx := authedContext(t, "u-hr", "HR", "")

		_, err := svc.Decide(ctx, leave.DecideRequest{LeaveID: id, Status: "APPROVED"})
		require.NoError(t, err)

		_, err = svc.Decide(ctx, leave.DecideRequest{LeaveID: id, Status: "REJECTED", RejectionReason: strPtr("n/a")})
		assert.ErrorIs(t, err, leave.ErrLeaveAlreadyDecided)
	})
}

func TestCancel(t *testing.T) {
	seed := func(t *testing.T) (*LeaveServiceImpl, string) {
		svc := newTestService(newFakeLeaveRepo())
		resp, err := svc.Apply(context.Background(), leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leave.TypeCasual),
			StartDate:  "2025-03-20",
			EndDate:    "2025-03-21",
			Reason:     "moving day",
		})
		require.NoError(t, err)
		return svc, resp.ID
	}

	t.Run("applicant cancels a pending application", func(t *testing.T) {
		svc, id := seed(t)
		ctx := authedContext(t, "u1", "EMPLOYEE", "EMP-0001")

		resp, err := svc.Cancel(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusCancelled), resp.Status)
	})

	t.Run("only the applicant may cancel", func(t *testing.T) {
		svc, id := seed(t)
		ctx := authedContext(t, "u2", "EMPLOYEE", "EMP-0002")

		_, err := svc.Cancel(ctx, id)
		assert.ErrorIs(t, err, leave.ErrNotLeaveOwner)
	})

	t.Run("cancelled applications are terminal", func(t *testing.T) {
		svc, id := seed(t)
		ctx := authedContext(t, "u1", "EMPLOYEE", "EMP-0001")

		_, err := svc.Cancel(ctx, id)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, id)
		assert.ErrorIs(t, err, leave.ErrLeaveAlreadyDecided)
	})
}

func TestBalance(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	apply := func(t *testing.T, leaveType leave.Type, start, end string) string {
		resp, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: strPtr("EMP-0001"),
			LeaveType:  string(leaveType),
			StartDate:  start,
			EndDate:    end,
			Reason:     "test",
		})
		require.NoError(t, err)
		return resp.ID
	}

	approve := func(t *testing.T, id string) {
		hrCtx := authedContext(t, "u-hr", "HR", "")
		_, err := svc.Decide(hrCtx, leave.DecideRequest{LeaveID: id, Status: "APPROVED"})
		require.NoError(t, err)
	}

	approve(t, apply(t, leave.TypeEarned, "2025-03-10", "2025-03-14"))
	approve(t, apply(t, leave.TypeSick, "2025-04-01", "2025-04-02"))
	// Pending applications don't reduce the balance.
	apply(t, leave.TypeEarned, "2025-06-02", "2025-06-06")

	balance, err := svc.Balance(ctx, "EMP-0001", 2025)
	require.NoError(t, err)

	assert.Equal(t, leave.TypeBalance{Total: 21, Used: 5, Remaining: 16}, balance[leave.TypeEarned])
	assert.Equal(t, leave.TypeBalance{Total: 12, Used: 2, Remaining: 10}, balance[leave.TypeSick])
	assert.Equal(t, leave.TypeBalance{Total: 7, Used: 0, Remaining: 7}, balance[leave.TypeCasual])

	_, tracked := balance[leave.TypeUnpaid]
	assert.False(t, tracked, "UNPAID must stay untracked")
}
