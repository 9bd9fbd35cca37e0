package memory

import (
	"context"
	"fmt"
	"sync"

	"quickledger/internal/core"
)

// Store is an in-memory row store for development and tests.
type Store struct {
	mu   sync.Mutex
	rows [][]string
}

func New() *Store {
	return &Store{}
}

// NewWithRows seeds the store with raw rows in canonical column order.
func NewWithRows(rows [][]string) *Store {
	s := &Store{}
	for _, r := range rows {
		s.rows = append(s.rows, append([]string(nil), r...))
	}
	return s
}

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row []string) (string, error) {
	if len(row) != core.ColumnCount {
		return "", fmt.Errorf("expected %d columns, got %d", core.ColumnCount, len(row))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, append([]string(nil), row...))
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// ReadAll returns a copy of every stored row.
func (s *Store) ReadAll(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, append([]string(nil), r...))
	}
	return out, nil
}
