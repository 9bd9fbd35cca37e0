// Package adapters bridges the SQLite buffer and the ledger store ports.
package adapters

import (
	"context"

	"quickledger/internal/ledger"
	"quickledger/internal/services"
	"quickledger/internal/storage"
)

// SQLiteAdapter exposes the buffered SQLite backend as a ledger.Store.
// Reads come straight from the repository; appends go through the service
// so every write also schedules a sheet sync.
type SQLiteAdapter struct {
	repo    *storage.SQLiteRepository
	service *services.LedgerService
}

var _ ledger.Store = (*SQLiteAdapter)(nil)

func NewSQLiteAdapter(repo *storage.SQLiteRepository, service *services.LedgerService) *SQLiteAdapter {
	return &SQLiteAdapter{repo: repo, service: service}
}

func (a *SQLiteAdapter) ReadAll(ctx context.Context) ([][]string, error) {
	return a.repo.ReadAll(ctx)
}

func (a *SQLiteAdapter) Append(ctx context.Context, row []string) (string, error) {
	return a.service.AppendRow(ctx, row)
}
