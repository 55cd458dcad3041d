package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peopleops/hrms-backend-go/internal/domain/attendance"
	"github.com/peopleops/hrms-backend-go/internal/domain/audit"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/email"
	"github.com/peopleops/hrms-backend-go/internal/pkg/identity"
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.Repository
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository
	employeeRepo   employee.Repository
	auditRepo      audit.Repository
	emailService   email.Service

	now func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.Repository,
	attendanceRepo attendance.Repository,
	leaveRepo leave.Repository,
	employeeRepo employee.Repository,
	auditRepo audit.Repository,
	emailService email.Service,
) payroll.Service {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		auditRepo:      auditRepo,
		emailService:   emailService,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// BuildRecord assembles a payroll record from processing-time snapshots. The
// record is self-contained: later attendance or leave edits never change it.
func BuildRecord(req payroll.ProcessRequest, attRecords []attendance.Attendance, approvedLeaves []leave.Application, processedBy string, processedAt time.Time) payroll.PayrollRecord {
	var overtimeHours float64
	actualWorkingDays := 0
	for _, rec := range attRecords {
		overtimeHours += rec.OvertimeHours
		if rec.Status == attendance.StatusPresent || rec.Status == attendance.StatusWorkFromHome {
			actualWorkingDays++
		}
	}

	var leaveDays float64
	for _, app := range approvedLeaves {
		leaveDays += app.TotalDays
	}

	record := payroll.PayrollRecord{
		EmployeeID:  req.EmployeeID,
		PayPeriod:   req.PayPeriod,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Overtime: payroll.Overtime{
			Hours:  overtimeHours,
			Rate:   req.OvertimeRate,
			Amount: req.OvertimeRate.Mul(decimal.NewFromFloat(overtimeHours)),
		},
		Bonus:      req.Bonus,
		Incentives: req.Incentives,

		WorkingDays:       req.PayPeriod.Days(),
		ActualWorkingDays: actualWorkingDays,
		LeaveDays:         leaveDays,

		Status:        payroll.StatusDraft,
		ProcessedBy:   processedBy,
		ProcessedDate: processedAt,
	}
	record.ComputeTotals()
	return record
}

// Process implements payroll.Service.
func (s *PayrollServiceImpl) Process(ctx context.Context, req payroll.ProcessRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	id, err := identity.FromContext(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if !user.Role(id.Role).CanProcessPayroll() {
		return payroll.RecordResponse{}, user.ErrInsufficientRole
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	existing, err := s.payrollRepo.GetByEmployeeAndPeriod(ctx, emp.EmployeeID, req.PayPeriod.Month, req.PayPeriod.Year)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if existing != nil {
		return payroll.RecordResponse{}, payroll.ErrPayrollAlreadyExists
	}

	attRecords, err := s.attendanceRepo.ListByMonth(ctx, emp.EmployeeID, req.PayPeriod.Month, req.PayPeriod.Year)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to snapshot attendance: %w", err)
	}

	start, end := req.PayPeriod.Bounds()
	approvedLeaves, err := s.leaveRepo.ApprovedInRange(ctx, emp.EmployeeID, start, end)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to snapshot approved leave: %w", err)
	}

	record := BuildRecord(req, attRecords, approvedLeaves, id.UserID, s.now())

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	s.notifyPayroll(emp, created)

	return toResponse(created), nil
}

// UpdateStatus implements payroll.Service.
func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, req payroll.UpdateStatusRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	id, err := identity.FromContext(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if !user.Role(id.Role).CanProcessPayroll() {
		return payroll.RecordResponse{}, user.ErrInsufficientRole
	}

	record, err := s.payrollRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	before := record.Status
	record.Status = payroll.Status(req.Status)

	if record.Status == payroll.StatusPaid {
		paymentDate := s.now()
		if req.PaymentDate != nil {
			if t, ok := validator.IsValidDateTime(*req.PaymentDate); ok {
				paymentDate = t.UTC()
			}
		}
		record.PaymentDate = &paymentDate
		if req.PaymentMethod != nil {
			record.PaymentMethod = req.PaymentMethod
		}
		if req.PaymentReference != nil {
			record.PaymentReference = req.PaymentReference
		}
	}

	updated, err := s.payrollRepo.UpdateStatus(ctx, record)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	s.recordAudit(id.UserID, updated.ID,
		map[string]any{"status": string(before)},
		map[string]any{"status": string(updated.Status)},
	)

	return toResponse(updated), nil
}

// Get implements payroll.Service.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return toResponse(record), nil
}

// List implements payroll.Service.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.Filter) (payroll.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListResponse{}, err
	}

	resp := payroll.ListResponse{
		Data:       make([]payroll.RecordResponse, 0, len(records)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, record := range records {
		resp.Data = append(resp.Data, toResponse(record))
	}

	return resp, nil
}

// Summary implements payroll.Service. Month, year and department are all
// optional; unset filters widen the aggregate.
func (s *PayrollServiceImpl) Summary(ctx context.Context, filter payroll.SummaryFilter) (payroll.Summary, error) {
	if filter.Month != 0 && !validator.IsValidMonth(filter.Month) {
		return payroll.Summary{}, payroll.ErrInvalidPeriod
	}
	if filter.Year != 0 && filter.Year < 2000 {
		return payroll.Summary{}, payroll.ErrInvalidPeriod
	}

	var employeeIDs []string
	if filter.Department != "" {
		ids, err := s.employeeRepo.EmployeeIDsByDepartment(ctx, filter.Department)
		if err != nil {
			return payroll.Summary{}, fmt.Errorf("failed to resolve department employees: %w", err)
		}
		// An empty department still scopes the summary to nothing.
		if ids == nil {
			ids = []string{}
		}
		employeeIDs = ids
	}

	return s.payrollRepo.Summarize(ctx, filter.Month, filter.Year, employeeIDs)
}

// Payslip implements payroll.Service.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, record.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return payroll.PayslipResponse{
		Record:        toResponse(record),
		EmployeeName:  emp.FullName(),
		Department:    emp.Professional.Department,
		Designation:   emp.Professional.Designation,
		BankName:      emp.Bank.BankName,
		AccountNumber: emp.Bank.AccountNumber,
	}, nil
}

func (s *PayrollServiceImpl) notifyPayroll(emp employee.Employee, record payroll.PayrollRecord) {
	details := email.PayrollDetails{
		Month:     record.PayPeriod.Month,
		Year:      record.PayPeriod.Year,
		NetSalary: record.NetSalary.StringFixed(2),
		Status:    string(record.Status),
	}

	go func() {
		if err := s.emailService.SendPayrollNotification(emp.Email, emp.FullName(), details); err != nil {
			slog.Error("failed to send payroll notification",
				"employee_id", emp.EmployeeID,
				"payroll_id", record.ID,
				"error", err,
			)
		}
	}()
}

func (s *PayrollServiceImpl) recordAudit(actorID, resourceID string, before, after map[string]any) {
	entry := audit.Entry{
		ActorID:    actorID,
		Action:     audit.ActionPayrollStatus,
		Resource:   "payroll",
		ResourceID: &resourceID,
		BeforeData: before,
		AfterData:  after,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.auditRepo.Record(ctx, entry); err != nil {
			slog.Error("failed to record audit entry",
				"action", audit.ActionPayrollStatus,
				"resource_id", resourceID,
				"error", err,
			)
		}
	}()
}

func toResponse(record payroll.PayrollRecord) payroll.RecordResponse {
	resp := payroll.RecordResponse{
		ID:                record.ID,
		EmployeeID:        record.EmployeeID,
		PayPeriod:         record.PayPeriod,
		BasicSalary:       record.BasicSalary,
		Allowances:        record.Allowances,
		Deductions:        record.Deductions,
		Overtime:          record.Overtime,
		Bonus:             record.Bonus,
		Incentives:        record.Incentives,
		WorkingDays:       record.WorkingDays,
		ActualWorkingDays: record.ActualWorkingDays,
		LeaveDays:         record.LeaveDays,
		GrossSalary:       record.GrossSalary,
		NetSalary:         record.NetSalary,
		Status:            string(record.Status),
		PaymentMethod:     record.PaymentMethod,
		PaymentReference:  record.PaymentReference,
	}
	if record.PaymentDate != nil {
		d := record.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &d
	}
	return resp
}
