// Package sheets exports transactions to a Google spreadsheet for people
// who keep their books there.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"fintrack/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Transactions"
	}

	opts := []goption.ClientOption{goption.WithScopes(gsheet.SpreadsheetsScope)}
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, goption.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		opts = append(opts, goption.WithCredentialsJSON(data))
	}
	// With no explicit credentials the client falls back to ADC.

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Exporter{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

var headerRow = []any{"Date", "Title", "Category", "Type", "Payment Mode", "Amount (INR)"}

// Export appends the given transactions to the configured sheet, one row
// each, preceded by a header row. Returns the number of rows written.
func (e *Exporter) Export(ctx context.Context, txs []core.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	values := make([][]any, 0, len(txs)+1)
	values = append(values, headerRow)
	for _, t := range txs {
		values = append(values, exportRow(t))
	}

	rng := fmt.Sprintf("%s!A:F", e.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	_, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append rows: %w", err)
	}

	slog.InfoContext(ctx, "Exported transactions to spreadsheet",
		"count", len(txs), "spreadsheet_id", e.spreadsheetID, "sheet", e.sheetName)
	return len(txs), nil
}

func exportRow(t core.Transaction) []any {
	mode := ""
	if t.Payment != nil {
		mode = string(t.Payment.Mode)
	}
	return []any{
		t.Date.String(),
		t.Title,
		core.CategoryName(t.Category),
		string(t.Kind),
		mode,
		t.Amount.Rupees(),
	}
}
