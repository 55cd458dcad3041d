package leave

import (
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	// EmployeeID is resolved from the caller's token when empty.
	EmployeeID *string `json:"employee_id,omitempty"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	IsHalfDay  bool    `json:"is_half_day"`
	Reason     string  `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.LeaveType, ValidTypes) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is not a valid leave type"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a YYYY-MM-DD date"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a YYYY-MM-DD date"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not precede start_date"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	LeaveID         string  `json:"-"`
	Status          string  `json:"status"` // APPROVED or REJECTED
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Status != string(StatusApproved) && r.Status != string(StatusRejected) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be APPROVED or REJECTED"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter selects leave applications for listing.
type Filter struct {
	EmployeeID string
	Status     string
	LeaveType  string
	StartDate  string // YYYY-MM-DD, lower bound on start_date
	EndDate    string // YYYY-MM-DD, upper bound on end_date
	Page       int
	Limit      int
}

type ApplicationResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	IsHalfDay       bool    `json:"is_half_day"`
	TotalDays       float64 `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedDate    *string `json:"approved_date,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	AppliedDate     string  `json:"applied_date"`
}

type ListResponse struct {
	Data       []ApplicationResponse `json:"data"`
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
}

// TypeBalance is one leave type's annual accounting.
type TypeBalance struct {
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

// BalanceResponse maps leave type to its balance for a calendar year. UNPAID
// is untracked and never appears.
type BalanceResponse map[Type]TypeBalance
