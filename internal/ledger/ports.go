// Package ledger defines the ports the engine and UI use to talk to a
// transaction row store.
package ledger

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks a store failure (network, auth, quota). Reads and
// appends wrap it so callers can halt the current operation and surface the
// failure; nothing is retried and no partial state is committed.
var ErrUnavailable = errors.New("transaction store unavailable")

// Unavailable wraps err as a store-unavailable failure.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// Ports for outbound adapters.
type (
	// RowReader returns every persisted row, header excluded, columns in
	// canonical order. An empty store yields an empty slice, not an error.
	RowReader interface {
		ReadAll(ctx context.Context) ([][]string, error)
	}

	// RowAppender adds one row in canonical column order. Appends are
	// assumed atomic at the row level; there is no cross-row transaction.
	RowAppender interface {
		Append(ctx context.Context, row []string) (rowRef string, err error)
	}

	// Store is the full transaction-store contract.
	Store interface {
		RowReader
		RowAppender
	}
)
