package googlesheets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const DefaultRange = "Ledger!A1"

// LedgerWriter appends exported ledger rows to one spreadsheet range.
type LedgerWriter struct {
	sheetsService *sheets.Service
	spreadsheetID string
	writeRange    string
}

// NewLedgerWriter authenticates with a service-account JSON key.
func NewLedgerWriter(ctx context.Context, credentialsJSON, spreadsheetID, writeRange string) (*LedgerWriter, error) {
	if credentialsJSON == "" {
		return nil, errors.New("google sheets credentials are not set")
	}

	credentials, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	return newLedgerWriter(ctx, spreadsheetID, writeRange, option.WithHTTPClient(client))
}

func newLedgerWriter(ctx context.Context, spreadsheetID, writeRange string, opts ...option.ClientOption) (*LedgerWriter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is not set")
	}
	if writeRange == "" {
		writeRange = DefaultRange
	}

	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client: %w", err)
	}

	return &LedgerWriter{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
	}, nil
}

// AppendRows returns the number of rows the API reports as written.
func (w *LedgerWriter) AppendRows(ctx context.Context, rows [][]interface{}) (int, error) {
	resp, err := w.sheetsService.Spreadsheets.Values.
		Append(w.spreadsheetID, w.writeRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("unable to append to spreadsheet %s: %w", w.spreadsheetID, err)
	}
	if resp.Updates == nil {
		return 0, nil
	}
	return int(resp.Updates.UpdatedRows), nil
}
