package leave

import (
	"time"
)

type Type string

const (
	TypeSick         Type = "SICK"
	TypeCasual       Type = "CASUAL"
	TypeEarned       Type = "EARNED"
	TypeMaternity    Type = "MATERNITY"
	TypePaternity    Type = "PATERNITY"
	TypeBereavement  Type = "BEREAVEMENT"
	TypeCompensatory Type = "COMPENSATORY"
	TypeUnpaid       Type = "UNPAID"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// Application is one leave request. PENDING transitions once, to APPROVED,
// REJECTED (approver) or CANCELLED (applicant); all three are terminal.
type Application struct {
	ID         string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time // day granularity, inclusive
	EndDate    time.Time // day granularity, inclusive
	IsHalfDay  bool
	TotalDays  float64
	Reason     string

	Status          Status
	ApprovedBy      *string
	ApprovedDate    *time.Time
	RejectionReason *string

	AppliedDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalDaysFor derives the day count per the balance rules: inclusive span in
// days, collapsed to 0.5 for a single-day half-day request.
func TotalDaysFor(start, end time.Time, isHalfDay bool) float64 {
	days := end.Sub(start).Hours()/24 + 1
	if isHalfDay && days == 1 {
		return 0.5
	}
	return days
}

// Overlaps reports whether [start, end] shares at least one calendar day with
// the application's own range.
func (a Application) Overlaps(start, end time.Time) bool {
	return !a.StartDate.After(end) && !a.EndDate.Before(start)
}

// ValidTypes is used by DTO validation.
var ValidTypes = []string{
	string(TypeSick),
	string(TypeCasual),
	string(TypeEarned),
	string(TypeMaternity),
	string(TypePaternity),
	string(TypeBereavement),
	string(TypeCompensatory),
	string(TypeUnpaid),
}
