// Package services orchestrates transaction writes across the local store
// and the AMQP sync queue.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/store"
	"fintrack/internal/store/sqlite"
)

// TransactionService persists transactions locally and publishes a sync
// message per mutation so the worker can mirror it to the remote backend.
// A failed publish never fails the request; the worker's catch-up sweep
// picks the row up later.
type TransactionService struct {
	repo       *sqlite.Repository
	amqpClient *amqp.Client
}

var _ store.TransactionStore = (*TransactionService)(nil)

func NewTransactionService(repo *sqlite.Repository, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		repo:       repo,
		amqpClient: amqpClient,
	}
}

func (s *TransactionService) LoadAll(ctx context.Context) ([]core.Transaction, error) {
	return s.repo.LoadAll(ctx)
}

func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	saved, err := s.repo.Create(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.publish(ctx, saved.ID, amqp.OpCreate)
	return saved, nil
}

func (s *TransactionService) Update(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	saved, err := s.repo.Update(ctx, t)
	if err != nil {
		return core.Transaction{}, err
	}
	s.publish(ctx, saved.ID, amqp.OpUpdate)
	return saved, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, amqp.OpDelete)
	return nil
}

func (s *TransactionService) publish(ctx context.Context, id string, op amqp.SyncOp) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message", "id", id, "op", op)
		return
	}
	if err := s.amqpClient.PublishSync(ctx, id, op); err != nil {
		// Local write already succeeded; the sweep will retry.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "op", op, "error", err)
	}
}

// Close closes both the repository and the AMQP connection
func (s *TransactionService) Close() error {
	var errs []error

	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("repository: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}

	return nil
}
