package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionRestock          TransactionType = "RESTOCK"
	TransactionProductionStart  TransactionType = "PRODUCTION_START"
	TransactionProductionFinish TransactionType = "PRODUCTION_FINISH"
	TransactionAdjustment       TransactionType = "ADJUSTMENT"
)

const SystemActor = "System"

// Event is the type-specific payload of a ledger entry. The set of variants is closed:
// RestockEvent, ProductionStartEvent, ProductionFinishEvent and AdjustmentEvent.
type Event interface {
	Type() TransactionType
	isEvent()
}

type RestockEvent struct {
	ItemID string
	Amount decimal.Decimal
}

type ProductionStartEvent struct {
	BatchID       string
	ProductID     string
	Quantity      int
	EstimatedCost decimal.Decimal
}

type ProductionFinishEvent struct {
	BatchID   string
	ProductID string
	Quantity  int
	Cost      decimal.Decimal
}

// AdjustmentEvent covers catalog, recipe and system administration changes.
type AdjustmentEvent struct {
	Subject string
	Amount  *decimal.Decimal
}

func (RestockEvent) Type() TransactionType          { return TransactionRestock }
func (ProductionStartEvent) Type() TransactionType  { return TransactionProductionStart }
func (ProductionFinishEvent) Type() TransactionType { return TransactionProductionFinish }
func (AdjustmentEvent) Type() TransactionType       { return TransactionAdjustment }

func (RestockEvent) isEvent()          {}
func (ProductionStartEvent) isEvent()  {}
func (ProductionFinishEvent) isEvent() {}
func (AdjustmentEvent) isEvent()       {}

// Transaction is an immutable ledger entry.
type Transaction struct {
	ID          string
	Timestamp   time.Time
	PerformedBy string
	Details     string
	Event       Event
}

func (t Transaction) Type() TransactionType {
	return t.Event.Type()
}

func (t Transaction) Amount() *decimal.Decimal {
	switch e := t.Event.(type) {
	case RestockEvent:
		return &e.Amount
	case ProductionStartEvent:
		amount := decimal.NewFromInt(int64(e.Quantity))
		return &amount
	case ProductionFinishEvent:
		amount := decimal.NewFromInt(int64(e.Quantity))
		return &amount
	case AdjustmentEvent:
		return e.Amount
	}
	return nil
}

func (t Transaction) BatchID() string {
	switch e := t.Event.(type) {
	case ProductionStartEvent:
		return e.BatchID
	case ProductionFinishEvent:
		return e.BatchID
	case RestockEvent, AdjustmentEvent:
		return ""
	}
	return ""
}

// Cost is only carried by finished batches.
func (t Transaction) Cost() *decimal.Decimal {
	switch e := t.Event.(type) {
	case ProductionFinishEvent:
		return &e.Cost
	case RestockEvent, ProductionStartEvent, AdjustmentEvent:
		return nil
	}
	return nil
}

type transactionJSON struct {
	ID          string           `json:"id"`
	Timestamp   time.Time        `json:"timestamp"`
	Type        TransactionType  `json:"type"`
	Details     string           `json:"details"`
	PerformedBy string           `json:"performed_by"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	BatchID     string           `json:"batch_id,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		ID:          t.ID,
		Timestamp:   t.Timestamp,
		Type:        t.Type(),
		Details:     t.Details,
		PerformedBy: t.PerformedBy,
		Amount:      t.Amount(),
		BatchID:     t.BatchID(),
		Cost:        t.Cost(),
	})
}

func (t *Transaction) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   t.ID,
		ResourceType: "transaction",
		Action:       string(t.Type()),
		Data: map[string]interface{}{
			"details":      t.Details,
			"performed_by": t.PerformedBy,
			"amount":       t.Amount(),
			"batch_id":     t.BatchID(),
			"cost":         t.Cost(),
		},
		CreatedAt: t.Timestamp,
	}
}
