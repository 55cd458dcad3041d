package audit

import "context"

// Repository is the audit sink. Writes are best effort: callers log failures
// and never abort the triggering operation.
type Repository interface {
	Record(ctx context.Context, entry Entry) error
}
