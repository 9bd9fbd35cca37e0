package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"quickledger/internal/amqp"
	"quickledger/internal/storage"
)

type fakeSource struct {
	rows    map[int64][]string
	pending []int64
	synced  []int64
}

func (f *fakeSource) GetRow(_ context.Context, id int64) ([]string, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("row %d not found", id)
	}
	return row, nil
}

func (f *fakeSource) ListPendingSync(_ context.Context, limit int) ([]storage.PendingRow, error) {
	var out []storage.PendingRow
	for _, id := range f.pending {
		if len(out) >= limit {
			break
		}
		out = append(out, storage.PendingRow{ID: id, Row: f.rows[id]})
	}
	return out, nil
}

func (f *fakeSource) MarkSynced(_ context.Context, id int64) error {
	f.synced = append(f.synced, id)
	return nil
}

type fakeSheet struct {
	appended [][]string
	fail     bool
}

func (f *fakeSheet) Append(_ context.Context, row []string) (string, error) {
	if f.fail {
		return "", errors.New("sheet down")
	}
	f.appended = append(f.appended, row)
	return fmt.Sprintf("sheet:%d", len(f.appended)), nil
}

func sampleRow(account string) []string {
	return []string{"2024-02-10", "debit", "30.00", "cash", "", account, "", "2024-02-10T09:00:00Z"}
}

func TestHandleSyncMessage(t *testing.T) {
	source := &fakeSource{rows: map[int64][]string{7: sampleRow("main")}}
	sheet := &fakeSheet{}
	w := NewSyncWorker(source, sheet, 10)

	if err := w.HandleSyncMessage(context.Background(), amqp.NewTxnSyncMessage(7)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sheet.appended) != 1 {
		t.Fatalf("expected one append, got %d", len(sheet.appended))
	}
	if len(source.synced) != 1 || source.synced[0] != 7 {
		t.Fatalf("expected row 7 marked synced, got %v", source.synced)
	}
}

func TestHandleSyncMessageMissingRow(t *testing.T) {
	w := NewSyncWorker(&fakeSource{rows: map[int64][]string{}}, &fakeSheet{}, 10)
	if err := w.HandleSyncMessage(context.Background(), amqp.NewTxnSyncMessage(99)); err == nil {
		t.Fatalf("expected error for missing row")
	}
}

func TestHandleSyncMessageAppendFailure(t *testing.T) {
	source := &fakeSource{rows: map[int64][]string{7: sampleRow("main")}}
	w := NewSyncWorker(source, &fakeSheet{fail: true}, 10)
	if err := w.HandleSyncMessage(context.Background(), amqp.NewTxnSyncMessage(7)); err == nil {
		t.Fatalf("expected error when the sheet append fails")
	}
	if len(source.synced) != 0 {
		t.Fatalf("failed append must not mark the row synced")
	}
}

func TestSweepPending(t *testing.T) {
	source := &fakeSource{
		rows: map[int64][]string{
			1: sampleRow("a"),
			2: sampleRow("b"),
			3: sampleRow("c"),
		},
		pending: []int64{1, 2, 3},
	}
	sheet := &fakeSheet{}
	w := NewSyncWorker(source, sheet, 2)

	synced, err := w.SweepPending(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if synced != 2 {
		t.Fatalf("batch size must cap the sweep: expected 2, got %d", synced)
	}
	if len(source.synced) != 2 {
		t.Fatalf("expected 2 rows marked synced, got %v", source.synced)
	}
}

func TestSweepPendingEmpty(t *testing.T) {
	w := NewSyncWorker(&fakeSource{rows: map[int64][]string{}}, &fakeSheet{}, 10)
	synced, err := w.SweepPending(context.Background())
	if err != nil || synced != 0 {
		t.Fatalf("empty sweep should be a no-op, got synced=%d err=%v", synced, err)
	}
}
