package leave

import (
	"context"
)

// Service is the leave ledger: request validation, the approval state machine
// and balance accounting.
type Service interface {
	// Apply files a new application after the overlap check.
	Apply(ctx context.Context, req ApplyRequest) (ApplicationResponse, error)

	// Decide moves a PENDING application to APPROVED or REJECTED.
	Decide(ctx context.Context, req DecideRequest) (ApplicationResponse, error)

	// Cancel moves a PENDING application to CANCELLED; applicant only.
	Cancel(ctx context.Context, leaveID string) (ApplicationResponse, error)

	// Balance reports per-type totals for a calendar year.
	Balance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)

	Get(ctx context.Context, leaveID string) (ApplicationResponse, error)

	List(ctx context.Context, filter Filter) (ListResponse, error)
}
