package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/peopleops/hrms-backend-go/internal/domain/audit"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
	"github.com/peopleops/hrms-backend-go/internal/pkg/email"
	"github.com/peopleops/hrms-backend-go/internal/pkg/identity"
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
	"github.com/peopleops/hrms-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db           *database.DB
	leaveRepo    leave.Repository
	employeeRepo employee.Repository
	auditRepo    audit.Repository
	emailService email.Service

	now func() time.Time

	// runTx wraps the overlap-check-and-insert in a database transaction.
	runTx func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.Repository,
	employeeRepo employee.Repository,
	auditRepo audit.Repository,
	emailService email.Service,
) leave.Service {
	return &LeaveServiceImpl{
		db:           db,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		emailService: emailService,
		now:          func() time.Time { return time.Now().UTC() },
		runTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

func (s *LeaveServiceImpl) resolveEmployee(ctx context.Context, explicit *string) (employee.Employee, error) {
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

// Apply implements leave.Service. The overlap check and the insert run under a
// per-employee advisory lock so two concurrent applications cannot both pass
// the check.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	emp, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	app := leave.Application{
		EmployeeID:  emp.EmployeeID,
		LeaveType:   leave.Type(req.LeaveType),
		StartDate:   start,
		EndDate:     end,
		IsHalfDay:   req.IsHalfDay,
		TotalDays:   leave.TotalDaysFor(start, end, req.IsHalfDay),
		Reason:      req.Reason,
		Status:      leave.StatusPending,
		AppliedDate: s.now(),
	}

	var created leave.Application
	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.leaveRepo.LockEmployee(txCtx, emp.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		overlapping, err := s.leaveRepo.HasOverlapping(txCtx, emp.EmployeeID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		created, err = s.leaveRepo.Create(txCtx, app)
		return err
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	s.notifyLeave(emp, created, email.LeaveApplied)

	return toResponse(created), nil
}

// Decide implements leave.Service.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	id, err := identity.FromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !user.Role(id.Role).CanDecideLeave() {
		return leave.ApplicationResponse{}, user.ErrInsufficientRole
	}

	app, err := s.leaveRepo.GetByID(ctx, req.LeaveID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if app.Status != leave.StatusPending {
		return leave.ApplicationResponse{}, leave.ErrLeaveAlreadyDecided
	}

	status := leave.Status(req.Status)
	if status == leave.StatusRejected && (req.RejectionReason == nil || validator.IsEmpty(*req.RejectionReason)) {
		return leave.ApplicationResponse{}, leave.ErrRejectionReasonRequired
	}

	before := app.Status

	now := s.now()
	app.Status = status
	app.ApprovedBy = &id.UserID
	app.ApprovedDate = &now
	if status == leave.StatusRejected {
		app.RejectionReason = req.RejectionReason
	}

	updated, err := s.leaveRepo.Update(ctx, app)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	s.recordAudit(id.UserID, audit.ActionLeaveDecision, updated.ID,
		map[string]any{"status": string(before)},
		map[string]any{"status": string(updated.Status)},
	)

	kind := email.LeaveApproved
	if status == leave.StatusRejected {
		kind = email.LeaveRejected
	}
	if emp, err := s.employeeRepo.GetByEmployeeID(ctx, updated.EmployeeID); err == nil {
		s.notifyLeave(emp, updated, kind)
	}

	return toResponse(updated), nil
}

// Cancel implements leave.Service. Applicant only, PENDING only.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, leaveID string) (leave.ApplicationResponse, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	emp, err := s.resolveEmployee(ctx, nil)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	app, err := s.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if app.EmployeeID != emp.EmployeeID {
		return leave.ApplicationResponse{}, leave.ErrNotLeaveOwner
	}
	if app.Status != leave.StatusPending {
		return leave.ApplicationResponse{}, leave.ErrLeaveAlreadyDecided
	}

	before := app.Status
	app.Status = leave.StatusCancelled

	updated, err := s.leaveRepo.Update(ctx, app)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	s.recordAudit(id.UserID, audit.ActionLeaveCancel, updated.ID,
		map[string]any{"status": string(before)},
		map[string]any{"status": string(updated.Status)},
	)

	return toResponse(updated), nil
}

// Balance implements leave.Service. Quota minus APPROVED usage per type for
// the calendar year; UNPAID is untracked and omitted.
func (s *LeaveServiceImpl) Balance(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	if employeeID == "" {
		emp, err := s.resolveEmployee(ctx, nil)
		if err != nil {
			return nil, err
		}
		employeeID = emp.EmployeeID
	}

	used, err := s.leaveRepo.UsedDaysByType(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum used leave days: %w", err)
	}

	balance := make(leave.BalanceResponse, len(annualQuota))
	for leaveType, quota := range annualQuota {
		balance[leaveType] = leave.TypeBalance{
			Total:     quota,
			Used:      used[leaveType],
			Remaining: quota - used[leaveType],
		}
	}

	return balance, nil
}

// Get implements leave.Service.
func (s *LeaveServiceImpl) Get(ctx context.Context, leaveID string) (leave.ApplicationResponse, error) {
	app, err := s.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	return toResponse(app), nil
}

// List implements leave.Service.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.Filter) (leave.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	apps, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, err
	}

	resp := leave.ListResponse{
		Data:       make([]leave.ApplicationResponse, 0, len(apps)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, app := range apps {
		resp.Data = append(resp.Data, toResponse(app))
	}

	return resp, nil
}

// notifyLeave sends the workflow email in the background. Delivery failures
// only get logged.
func (s *LeaveServiceImpl) notifyLeave(emp employee.Employee, app leave.Application, kind email.LeaveNotificationKind) {
	details := email.LeaveDetails{
		LeaveType: string(app.LeaveType),
		StartDate: app.StartDate.Format("2006-01-02"),
		EndDate:   app.EndDate.Format("2006-01-02"),
		TotalDays: app.TotalDays,
		Status:    string(app.Status),
	}
	if app.RejectionReason != nil {
		details.RejectionReason = *app.RejectionReason
	}

	go func() {
		if err := s.emailService.SendLeaveNotification(emp.Email, emp.FullName(), details, kind); err != nil {
			slog.Error("failed to send leave notification",
				"employee_id", emp.EmployeeID,
				"leave_id", app.ID,
				"kind", string(kind),
				"error", err,
			)
		}
	}()
}

func (s *LeaveServiceImpl) recordAudit(actorID, action, resourceID string, before, after map[string]any) {
	entry := audit.Entry{
		ActorID:    actorID,
		Action:     action,
		Resource:   "leave",
		ResourceID: &resourceID,
		BeforeData: before,
		AfterData:  after,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.auditRepo.Record(ctx, entry); err != nil {
			slog.Error("failed to record audit entry",
				"action", action,
				"resource_id", resourceID,
				"error", err,
			)
		}
	}()
}

func toResponse(app leave.Application) leave.ApplicationResponse {
	resp := leave.ApplicationResponse{
		ID:              app.ID,
		EmployeeID:      app.EmployeeID,
		LeaveType:       string(app.LeaveType),
		StartDate:       app.StartDate.Format("2006-01-02"),
		EndDate:         app.EndDate.Format("2006-01-02"),
		IsHalfDay:       app.IsHalfDay,
		TotalDays:       app.TotalDays,
		Reason:          app.Reason,
		Status:          string(app.Status),
		ApprovedBy:      app.ApprovedBy,
		RejectionReason: app.RejectionReason,
		AppliedDate:     app.AppliedDate.Format(time.RFC3339),
	}
	if app.ApprovedDate != nil {
		d := app.ApprovedDate.Format(time.RFC3339)
		resp.ApprovedDate = &d
	}
	return resp
}
