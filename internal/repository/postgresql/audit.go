package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/peopleops/hrms-backend-go/internal/domain/audit"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepository{db: db}
}

// Record implements audit.Repository.
func (a *auditRepository) Record(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, a.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	var beforeJSON, afterJSON []byte
	var err error
	if entry.BeforeData != nil {
		if beforeJSON, err = json.Marshal(entry.BeforeData); err != nil {
			return fmt.Errorf("failed to encode audit before data: %w", err)
		}
	}
	if entry.AfterData != nil {
		if afterJSON, err = json.Marshal(entry.AfterData); err != nil {
			return fmt.Errorf("failed to encode audit after data: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (
			id, actor_id, action, resource, resource_id, before_data, after_data
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err = q.Exec(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.Resource,
		entry.ResourceID,
		beforeJSON,
		afterJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}
