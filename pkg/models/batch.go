package models

import (
	"time"

	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"

	"github.com/shopspring/decimal"
)

// Batch is one in-flight production run. EstimatedCost is frozen when the batch starts.
type Batch struct {
	ID            string               `json:"id"`
	ProductID     string               `json:"product_id"`
	Quantity      int                  `json:"quantity"`
	StartedAt     time.Time            `json:"started_at"`
	EstimatedCost decimal.Decimal      `json:"estimated_cost"`
	Status        metadata.BatchStatus `json:"status"`
}
