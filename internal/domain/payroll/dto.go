package payroll

import (
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ProcessRequest struct {
	EmployeeID   string                     `json:"employee_id"`
	PayPeriod    PayPeriod                  `json:"pay_period"`
	BasicSalary  decimal.Decimal            `json:"basic_salary"`
	Allowances   map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions   map[string]decimal.Decimal `json:"deductions,omitempty"`
	OvertimeRate decimal.Decimal            `json:"overtime_rate"`
	Bonus        decimal.Decimal            `json:"bonus"`
	Incentives   decimal.Decimal            `json:"incentives"`
}

func (r *ProcessRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.PayPeriod.Month < 1 || r.PayPeriod.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "pay_period.month", Message: "must be between 1 and 12"})
	}
	if r.PayPeriod.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "pay_period.year", Message: "must be 2000 or later"})
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "must be non-negative"})
	}
	for name, v := range r.Allowances {
		if v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "allowances." + name, Message: "must be non-negative"})
		}
	}
	for name, v := range r.Deductions {
		if v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "deductions." + name, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID               string  `json:"-"`
	Status           string  `json:"status"`
	PaymentDate      *string `json:"payment_date,omitempty"` // RFC3339, defaults to now when status is PAID
	PaymentMethod    *string `json:"payment_method,omitempty"`
	PaymentReference *string `json:"payment_reference,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a valid payroll status"})
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDateTime(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be an RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter selects payroll records for listing.
type Filter struct {
	EmployeeID string
	Month      int
	Year       int
	Status     string
	Page       int
	Limit      int
}

// SummaryFilter scopes the aggregate summary. Department filters through the
// employee directory.
type SummaryFilter struct {
	Month      int
	Year       int
	Department string
}

type RecordResponse struct {
	ID                string                     `json:"id"`
	EmployeeID        string                     `json:"employee_id"`
	PayPeriod         PayPeriod                  `json:"pay_period"`
	BasicSalary       decimal.Decimal            `json:"basic_salary"`
	Allowances        map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions        map[string]decimal.Decimal `json:"deductions,omitempty"`
	Overtime          Overtime                   `json:"overtime"`
	Bonus             decimal.Decimal            `json:"bonus"`
	Incentives        decimal.Decimal            `json:"incentives"`
	WorkingDays       int                        `json:"working_days"`
	ActualWorkingDays int                        `json:"actual_working_days"`
	LeaveDays         float64                    `json:"leave_days"`
	GrossSalary       decimal.Decimal            `json:"gross_salary"`
	NetSalary         decimal.Decimal            `json:"net_salary"`
	Status            string                     `json:"status"`
	PaymentDate       *string                    `json:"payment_date,omitempty"`
	PaymentMethod     *string                    `json:"payment_method,omitempty"`
	PaymentReference  *string                    `json:"payment_reference,omitempty"`
}

type ListResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// Summary aggregates payroll records matching a filter.
type Summary struct {
	SumGross decimal.Decimal `json:"sum_gross"`
	SumNet   decimal.Decimal `json:"sum_net"`
	SumBasic decimal.Decimal `json:"sum_basic"`
	AvgGross decimal.Decimal `json:"avg_gross"`
	AvgNet   decimal.Decimal `json:"avg_net"`
	Count    int64           `json:"count"`
}

// PayslipResponse is the payslip view: the stored record joined with employee
// identity and bank details.
type PayslipResponse struct {
	Record        RecordResponse `json:"record"`
	EmployeeName  string         `json:"employee_name"`
	Department    string         `json:"department"`
	Designation   string         `json:"designation"`
	BankName      *string        `json:"bank_name,omitempty"`
	AccountNumber *string        `json:"account_number,omitempty"`
}
