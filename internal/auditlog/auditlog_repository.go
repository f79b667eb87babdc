package auditlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

const table = "audit_logs"

// AuditLogRepository mirrors committed ledger entries into Postgres. It never reads them back.
type AuditLogRepository struct {
	db *goqu.Database
}

func NewRepository(db *goqu.Database) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) insertQuery(logs []models.AuditLog) (*goqu.InsertDataset, error) {
	rows := make([]interface{}, 0, len(logs))
	for _, entry := range logs {
		dataJSON, err := json.Marshal(entry.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit log data: %w", err)
		}
		rows = append(rows, goqu.Record{
			"resource_id":   entry.ResourceID,
			"resource_type": entry.ResourceType,
			"action":        entry.Action,
			"data":          string(dataJSON),
			"created_at":    entry.CreatedAt,
		})
	}

	return r.db.Insert(table).Prepared(true).Rows(rows...), nil
}

func (r *AuditLogRepository) PersistLogs(ctx context.Context, logs []models.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	query, err := r.insertQuery(logs)
	if err != nil {
		return err
	}

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}
