package auditlog

import (
	"context"
	"sync"
	"time"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"go.uber.org/zap"
)

const defaultWriteTimeout = 5 * time.Second

type Auditable interface {
	CreateLogView() models.AuditLog
}

type Sink interface {
	PersistLogs(ctx context.Context, logs []models.AuditLog) error
}

// Auditlog forwards committed ledger entries to a sink in the background.
// Sink failures are logged and never reach the caller.
type Auditlog struct {
	sink    Sink
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAuditLog(sink Sink, log *zap.Logger) *Auditlog {
	return &Auditlog{sink: sink, log: log, timeout: defaultWriteTimeout}
}

func (a *Auditlog) Log(operation string, items ...Auditable) {
	if len(items) == 0 {
		return
	}

	logs := make([]models.AuditLog, 0, len(items))
	for _, item := range items {
		entry := item.CreateLogView()
		if entry.Data == nil {
			entry.Data = map[string]interface{}{}
		}
		entry.Data["operation"] = operation
		logs = append(logs, entry)
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.sink.PersistLogs(ctx, logs); err != nil {
			a.log.Error("Unable to create AuditLog entries", zap.String("operation", operation), zap.Int("entries", len(logs)), zap.Error(err))
			return
		}
		a.log.Debug("Created AuditLog entries", zap.String("operation", operation), zap.Int("entries", len(logs)))
	}()
}

// OnCommit has the shape of repository.CommitHook.
func (a *Auditlog) OnCommit(operation string, appended []models.Transaction) {
	items := make([]Auditable, 0, len(appended))
	for i := range appended {
		items = append(items, &appended[i])
	}
	a.Log(operation, items...)
}

// Wait blocks until pending writes finish.
func (a *Auditlog) Wait() {
	a.wg.Wait()
}
