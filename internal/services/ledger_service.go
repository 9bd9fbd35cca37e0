package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"quickledger/internal/amqp"
	"quickledger/internal/storage"
)

// LedgerService orchestrates transaction appends across SQLite and AMQP.
type LedgerService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewLedgerService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// AppendRow saves a transaction row locally and requests an async sheet
// sync. A publish failure is logged, never surfaced: the row is durable in
// SQLite and the worker's periodic sweep will pick it up.
func (s *LedgerService) AppendRow(ctx context.Context, row []string) (string, error) {
	ref, err := s.storage.Append(ctx, row)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to parse transaction ID", "ref", ref, "error", err)
		return ref, nil
	}

	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message", "id", id)
		return ref, nil
	}
	if err := s.amqpClient.PublishTxnSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}

	return ref, nil
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close amqp: %w", err))
		}
	}
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}
