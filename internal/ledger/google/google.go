package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"quickledger/internal/core"
	"quickledger/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client is the Google Sheets implementation of the transaction store.
// One worksheet holds the canonical header plus one row per transaction.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var (
	_ ledger.RowReader   = (*Client)(nil)
	_ ledger.RowAppender = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "Transactions") and service account
// credentials via GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadAll returns every persisted row with the header stripped. Malformed
// cells are passed through untouched; coercion belongs to the engine.
func (c *Client) ReadAll(ctx context.Context) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:H", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, ledger.Unavailable("read "+rng, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for i, raw := range resp.Values {
		cols := toStrings(raw)
		if i == 0 && isHeader(cols) {
			continue
		}
		rows = append(rows, cols)
	}
	slog.DebugContext(ctx, "Read transaction rows", "sheet", c.sheetName, "rows", len(rows))
	return rows, nil
}

// Append adds one row after the last table row of the worksheet and returns
// the updated range as the row reference.
func (c *Client) Append(ctx context.Context, row []string) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if len(row) != core.ColumnCount {
		return "", fmt.Errorf("expected %d columns, got %d", core.ColumnCount, len(row))
	}

	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}

	rng := fmt.Sprintf("%s!A:H", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", ledger.Unavailable("append "+rng, err)
	}

	ref := rng
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Transaction appended to sheet", "sheet", c.sheetName, "ref", ref)
	return ref, nil
}

// EnsureHeader writes the canonical header row into an empty worksheet.
// Used by the one-shot sheet-init command; a populated sheet is left alone.
func (c *Client) EnsureHeader(ctx context.Context) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A1:H1", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return ledger.Unavailable("read "+rng, err)
	}
	if len(resp.Values) > 0 && isHeader(toStrings(resp.Values[0])) {
		slog.InfoContext(ctx, "Header already present", "sheet", c.sheetName)
		return nil
	}
	if len(resp.Values) > 0 {
		return fmt.Errorf("sheet %s row 1 holds data, refusing to overwrite", c.sheetName)
	}

	header := make([]any, len(core.Header))
	for i, h := range core.Header {
		header[i] = h
	}
	vr := &gsheet.ValueRange{Values: [][]any{header}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return ledger.Unavailable("write header "+rng, err)
	}
	slog.InfoContext(ctx, "Header written", "sheet", c.sheetName)
	return nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// isHeader recognizes the canonical header row so reads can skip it without
// relying on a fixed row offset.
func isHeader(cols []string) bool {
	if len(cols) == 0 {
		return false
	}
	return strings.EqualFold(cols[0], core.Header[0])
}
