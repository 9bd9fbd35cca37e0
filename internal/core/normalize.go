package core

import (
	"strings"
	"time"
)

// Canonical column order of the row store. Append and read both follow it.
const (
	ColDate = iota
	ColType
	ColAmount
	ColMode
	ColDescription
	ColAccount
	ColSubAccount
	ColCreatedAt
	ColumnCount
)

// Header is the canonical header row of the transaction store.
var Header = []string{
	"txn_date", "type", "amount", "payment_mode",
	"description", "account", "sub_account", "created_at",
}

// RowIssues names the fields of a row that were coerced to a safe default
// during normalization. Callers may log it; the row itself is always kept.
type RowIssues []string

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02/01/2006",
}

// NormalizeRow converts one raw row from the store into a Transaction.
// It never fails: an unparsable date becomes the null-date sentinel, an
// unparsable or missing amount becomes 0 cents, and missing text fields
// become empty strings. One malformed row must never abort a snapshot load,
// since a spreadsheet-backed store cannot guarantee schema integrity.
func NormalizeRow(cols []string) (Transaction, RowIssues) {
	var issues RowIssues

	get := func(i int) string {
		if i < 0 || i >= len(cols) {
			return ""
		}
		return strings.TrimSpace(cols[i])
	}

	var txn Transaction

	if raw := get(ColDate); raw == "" {
		issues = append(issues, "txn_date")
	} else if d, ok := parseDate(raw); ok {
		txn.Date = d
	} else {
		issues = append(issues, "txn_date")
	}

	txn.Type = TxnType(strings.ToLower(get(ColType)))
	if !txn.Type.Valid() {
		// Left as-is: Signed treats anything but credit as debit.
		issues = append(issues, "type")
	}

	if cents, err := ParseDecimalToCents(get(ColAmount)); err == nil {
		txn.Amount = Money{Cents: cents}
	} else {
		issues = append(issues, "amount")
	}

	txn.Mode = PaymentMode(strings.ToLower(get(ColMode)))
	txn.Description = get(ColDescription)
	txn.Account = get(ColAccount)
	txn.SubAccount = get(ColSubAccount)

	if raw := get(ColCreatedAt); raw != "" {
		if ts, ok := parseTimestamp(raw); ok {
			txn.CreatedAt = ts
		} else {
			issues = append(issues, "created_at")
		}
	}

	return txn, issues
}

// NormalizeRows converts a whole snapshot, row by row. The ledger engine
// always works on the returned slice, never on raw store rows.
func NormalizeRows(rows [][]string) []Transaction {
	out := make([]Transaction, 0, len(rows))
	for _, cols := range rows {
		txn, _ := NormalizeRow(cols)
		out = append(out, txn)
	}
	return out
}

// Row renders the transaction in canonical column order for an append.
func (t Transaction) Row() []string {
	created := ""
	if !t.CreatedAt.IsZero() {
		created = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	date := ""
	if !t.Date.IsNull() {
		date = t.Date.Format("2006-01-02")
	}
	return []string{
		date,
		string(t.Type),
		t.Amount.String(),
		string(t.Mode),
		t.Description,
		t.Account,
		t.SubAccount,
		created,
	}
}

func parseDate(s string) (Date, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return NewDate(ts.Year(), int(ts.Month()), ts.Day()), true
		}
	}
	return Date{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
