package worker

import (
	"context"
	"fmt"
	"log/slog"

	"quickledger/internal/amqp"
	"quickledger/internal/ledger"
	"quickledger/internal/storage"
)

// RowSource is the slice of the SQLite repository the worker needs.
type RowSource interface {
	GetRow(ctx context.Context, id int64) ([]string, error)
	ListPendingSync(ctx context.Context, limit int) ([]storage.PendingRow, error)
	MarkSynced(ctx context.Context, id int64) error
}

// SyncWorker copies buffered transactions from SQLite to the spreadsheet.
type SyncWorker struct {
	source    RowSource
	sheet     ledger.RowAppender
	batchSize int
}

func NewSyncWorker(source RowSource, sheet ledger.RowAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		source:    source,
		sheet:     sheet,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TxnSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	row, err := w.source.GetRow(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.sheet.Append(ctx, row)
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.source.MarkSynced(ctx, msg.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced to sheet", "id", msg.ID, "ref", ref)
	return nil
}

// SweepPending pushes transactions whose sync message was lost (broker down
// at publish time, worker crash between append and ack). Returns how many
// rows reached the sheet.
func (w *SyncWorker) SweepPending(ctx context.Context) (int, error) {
	pending, err := w.source.ListPendingSync(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	synced := 0
	for _, p := range pending {
		if _, err := w.sheet.Append(ctx, p.Row); err != nil {
			// Stop the sweep, keep the batch order intact for the next run
			return synced, fmt.Errorf("append transaction %d: %w", p.ID, err)
		}
		if err := w.source.MarkSynced(ctx, p.ID); err != nil {
			return synced, fmt.Errorf("mark transaction %d synced: %w", p.ID, err)
		}
		synced++
	}

	slog.InfoContext(ctx, "Pending sweep completed", "synced", synced)
	return synced, nil
}
