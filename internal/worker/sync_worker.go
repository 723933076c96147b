// Package worker mirrors locally persisted transactions to the remote
// backend, driven by AMQP messages with a periodic catch-up sweep.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/store"
	"fintrack/internal/store/sqlite"
)

// LocalStore is the slice of the sqlite repository the worker needs.
type LocalStore interface {
	GetRow(ctx context.Context, id string) (sqlite.Row, error)
	ListUnsynced(ctx context.Context, limit int) ([]sqlite.Row, error)
	MarkSynced(ctx context.Context, id, remoteID string) error
	Purge(ctx context.Context, id string) error
}

// SyncWorker mirrors local rows to the remote TransactionStore.
type SyncWorker struct {
	local     LocalStore
	remote    store.TransactionStore
	batchSize int
}

func NewSyncWorker(local LocalStore, remote store.TransactionStore, batchSize int) *SyncWorker {
	return &SyncWorker{
		local:     local,
		remote:    remote,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes one AMQP sync message. A missing local row
// is not an error: the sweep or a later message already handled it.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID, "op", msg.Op)

	row, err := w.local.GetRow(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "Local row gone, skipping sync", "id", msg.ID, "op", msg.Op)
			return nil
		}
		return fmt.Errorf("get local row: %w", err)
	}

	return w.syncRow(ctx, row)
}

// Sweep mirrors any rows the message path missed, oldest first.
func (w *SyncWorker) Sweep(ctx context.Context) error {
	rows, err := w.local.ListUnsynced(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced rows: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Sweeping unsynced transactions", "count", len(rows))

	var failed int
	for _, row := range rows {
		if err := w.syncRow(ctx, row); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction",
				"id", row.Transaction.ID, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("sweep: %d of %d rows failed", failed, len(rows))
	}
	return nil
}

func (w *SyncWorker) syncRow(ctx context.Context, row sqlite.Row) error {
	switch {
	case row.Deleted:
		return w.mirrorDelete(ctx, row)
	case row.RemoteID != "":
		return w.mirrorUpdate(ctx, row)
	default:
		return w.mirrorCreate(ctx, row)
	}
}

func (w *SyncWorker) mirrorCreate(ctx context.Context, row sqlite.Row) error {
	created, err := w.remote.Create(ctx, row.Transaction)
	if err != nil {
		return fmt.Errorf("remote create: %w", err)
	}
	if err := w.local.MarkSynced(ctx, row.Transaction.ID, created.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	slog.InfoContext(ctx, "Mirrored transaction to remote",
		"id", row.Transaction.ID, "remote_id", created.ID)
	return nil
}

func (w *SyncWorker) mirrorUpdate(ctx context.Context, row sqlite.Row) error {
	t := row.Transaction
	t.ID = row.RemoteID
	if _, err := w.remote.Update(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Remote row disappeared; recreate it.
			return w.recreate(ctx, row)
		}
		return fmt.Errorf("remote update: %w", err)
	}
	if err := w.local.MarkSynced(ctx, row.Transaction.ID, row.RemoteID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	slog.InfoContext(ctx, "Mirrored transaction update to remote",
		"id", row.Transaction.ID, "remote_id", row.RemoteID)
	return nil
}

func (w *SyncWorker) recreate(ctx context.Context, row sqlite.Row) error {
	created, err := w.remote.Create(ctx, row.Transaction)
	if err != nil {
		return fmt.Errorf("remote recreate: %w", err)
	}
	if err := w.local.MarkSynced(ctx, row.Transaction.ID, created.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	slog.WarnContext(ctx, "Remote row was missing, recreated",
		"id", row.Transaction.ID, "remote_id", created.ID)
	return nil
}

func (w *SyncWorker) mirrorDelete(ctx context.Context, row sqlite.Row) error {
	if row.RemoteID != "" {
		if err := w.remote.Delete(ctx, row.RemoteID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("remote delete: %w", err)
		}
	}
	if err := w.local.Purge(ctx, row.Transaction.ID); err != nil {
		return fmt.Errorf("purge local row: %w", err)
	}
	slog.InfoContext(ctx, "Mirrored transaction deletion to remote",
		"id", row.Transaction.ID, "remote_id", row.RemoteID)
	return nil
}
