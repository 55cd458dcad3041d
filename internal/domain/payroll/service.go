package payroll

import "context"

// Service is the payroll assembler: it combines attendance totals, leave days
// and compensation inputs into one record per employee per period.
type Service interface {
	// Process builds and persists the period's record from snapshots of
	// attendance and approved leave taken at processing time.
	Process(ctx context.Context, req ProcessRequest) (RecordResponse, error)

	// UpdateStatus moves a record between DRAFT/PROCESSED/PAID/ON_HOLD and
	// stamps payment fields when it turns PAID.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (RecordResponse, error)

	Get(ctx context.Context, id string) (RecordResponse, error)

	List(ctx context.Context, filter Filter) (ListResponse, error)

	// Summary aggregates records for a period and optional department.
	Summary(ctx context.Context, filter SummaryFilter) (Summary, error)

	// Payslip assembles the payslip view for a processed record.
	Payslip(ctx context.Context, id string) (PayslipResponse, error)
}
