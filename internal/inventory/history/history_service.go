package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Filter struct {
	Type      models.TransactionType
	Search    string
	Ascending bool
	Limit     int
}

type Page struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	TotalCost    decimal.Decimal      `json:"total_cost"`
}

// SheetWriter appends rows to an external spreadsheet.
type SheetWriter interface {
	AppendRows(ctx context.Context, rows [][]interface{}) (int, error)
}

type HistoryService struct {
	r      *repository.Repository
	log    *zap.Logger
	sheets SheetWriter
}

// NewHistoryService accepts a nil sheets writer when no spreadsheet is configured.
func NewHistoryService(r *repository.Repository, log *zap.Logger, sheets SheetWriter) *HistoryService {
	return &HistoryService{r: r, log: log, sheets: sheets}
}

// List filters the ledger, newest first unless Ascending is set. TotalCost is summed
// over every matching entry, before Limit is applied.
func (s *HistoryService) List(filter Filter) Page {
	ledger := s.r.Snapshot().Ledger
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	page := Page{Transactions: []models.Transaction{}, TotalCost: decimal.Zero}
	for i := range ledger {
		entry := ledger[len(ledger)-1-i]
		if filter.Ascending {
			entry = ledger[i]
		}
		if filter.Type != "" && entry.Type() != filter.Type {
			continue
		}
		if search != "" && !matches(entry, search) {
			continue
		}
		if cost := entry.Cost(); cost != nil {
			page.TotalCost = page.TotalCost.Add(*cost)
		}
		if filter.Limit <= 0 || len(page.Transactions) < filter.Limit {
			page.Transactions = append(page.Transactions, entry)
		}
		page.Count++
	}
	return page
}

// ClearHistory empties the ledger without recording an entry of its own.
func (s *HistoryService) ClearHistory(actor string) error {
	var removed int
	err := s.r.WithTransaction("history.clear", func(tx *repository.Tx) error {
		removed = tx.LedgerLen()
		tx.ClearLedger()
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Transaction history cleared", zap.String("actor", actor), zap.Int("removed", removed))
	return nil
}

// PushToSheets appends the filtered ledger to the configured spreadsheet.
func (s *HistoryService) PushToSheets(ctx context.Context, filter Filter) (int, error) {
	if s.sheets == nil {
		return 0, custom_error.New(custom_error.ReasonExternalUnavailable, "google_sheets", "Google Sheets export is not configured")
	}

	page := s.List(filter)
	rows := make([][]interface{}, 0, len(page.Transactions)+1)
	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	rows = append(rows, header)
	for _, record := range Records(page.Transactions) {
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = v
		}
		rows = append(rows, row)
	}

	updated, err := s.sheets.AppendRows(ctx, rows)
	if err != nil {
		s.log.Error("Unable to push ledger to Google Sheets", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", custom_error.ErrUnavailable, err)
	}

	s.log.Info("Ledger pushed to Google Sheets", zap.Int("rows", updated))
	return updated, nil
}

func matches(entry models.Transaction, search string) bool {
	return strings.Contains(strings.ToLower(entry.Details), search) ||
		strings.Contains(strings.ToLower(entry.PerformedBy), search) ||
		strings.Contains(strings.ToLower(string(entry.Type())), search) ||
		strings.Contains(strings.ToLower(entry.ID), search)
}
