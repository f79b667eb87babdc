package models

import "time"

type AuditLog struct {
	ID           int                    `json:"id" db:"id"`
	ResourceID   string                 `json:"resource_id" db:"resource_id"`
	ResourceType string                 `json:"resource_type" db:"resource_type"`
	Action       string                 `json:"action" db:"action"` // ledger entry type, e.g. RESTOCK, PRODUCTION_START
	Data         map[string]interface{} `json:"data" db:"data"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
}
