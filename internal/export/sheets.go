package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"cashbook/internal/config"
	"cashbook/internal/core"
)

// SheetsAppender writes ledger rows to a Google Sheets spreadsheet
// using service account credentials.
type SheetsAppender struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetsAppender(ctx context.Context, cfg *config.Config) (*SheetsAppender, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := cfg.GoogleSheetName
	if sheetName == "" {
		sheetName = "Ledger"
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsAppender{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets service from the configured
// service account credentials, inline JSON taking precedence.
func newSheetsService(ctx context.Context, cfg *config.Config) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case cfg.GoogleCredentialsJSON != "":
		credentialsJSON = []byte(cfg.GoogleCredentialsJSON)
	case cfg.GoogleCredentialsFile != "":
		data, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Append writes one row for the transaction at the bottom of the
// ledger sheet.
func (c *SheetsAppender) Append(ctx context.Context, t core.Transaction) error {
	values := &gsheet.ValueRange{
		Values: [][]any{{
			t.PaymentDate.String(),
			t.DueDate.String(),
			t.Description,
			string(t.Kind),
			t.Category,
			t.Amount.Units(),
			t.StatusLabel(),
			t.Counterparty,
		}},
	}

	_, err := c.svc.Spreadsheets.Values.Append(
		c.spreadsheetID,
		fmt.Sprintf("%s!A:H", c.sheetName),
		values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}

	slog.InfoContext(ctx, "Appended transaction to sheet",
		"transaction_id", t.ID,
		"sheet", c.sheetName)
	return nil
}

var _ RowAppender = (*SheetsAppender)(nil)
