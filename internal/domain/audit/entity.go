package audit

import (
	"time"
)

// Entry is one audit trail row recorded around identity-changing operations.
type Entry struct {
	ID         string
	ActorID    string
	Action     string
	Resource   string
	ResourceID *string
	BeforeData map[string]any
	AfterData  map[string]any
	CreatedAt  time.Time
}

// Actions recorded by the core services.
const (
	ActionLogin         = "LOGIN"
	ActionLeaveDecision = "LEAVE_DECISION"
	ActionLeaveCancel   = "LEAVE_CANCEL"
	ActionPayrollStatus = "PAYROLL_STATUS"
)
