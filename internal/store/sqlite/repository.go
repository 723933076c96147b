// Package sqlite is the locally persisted TransactionStore backend. It
// additionally tracks sync state so the worker can mirror local writes to
// the remote backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

var _ store.TransactionStore = (*Repository)(nil)

const selectColumns = `id, title, description, category, amount_cents, kind,
	occurred_on, payment_mode, upi_provider, bank, income_source, remote_id`

func (r *Repository) LoadAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM transactions
		WHERE deleted_at IS NULL
		ORDER BY occurred_on DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, _, err := scanTransaction(rows)
		if err != nil {
			slog.WarnContext(ctx, "Dropping unreadable transaction row", "error", err)
			continue
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func (r *Repository) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = store.NewID()

	payment, upi, bank, source := detailColumns(t)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, title, description, category, amount_cents, kind, occurred_on,
			 payment_mode, upi_provider, bank, income_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Category), t.Amount.Cents,
		string(t.Kind), t.Date.String(), payment, upi, bank, source)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID, "title", t.Title, "amount_cents", t.Amount.Cents, "kind", t.Kind)
	return t, nil
}

func (r *Repository) Update(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	payment, upi, bank, source := detailColumns(t)
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET title = ?, description = ?, category = ?, amount_cents = ?, kind = ?,
		    occurred_on = ?, payment_mode = ?, upi_provider = ?, bank = ?,
		    income_source = ?, synced_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND deleted_at IS NULL`,
		t.Title, t.Description, string(t.Category), t.Amount.Cents, string(t.Kind),
		t.Date.String(), payment, upi, bank, source, t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Transaction{}, store.ErrNotFound
	}
	return t, nil
}

// Delete soft-deletes so the sync worker can still read the row and
// mirror the deletion remotely before it is purged.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET deleted_at = CURRENT_TIMESTAMP, synced_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Row is a transaction together with its sync bookkeeping.
type Row struct {
	Transaction core.Transaction
	RemoteID    string
	Deleted     bool
}

// GetRow fetches one row by id, deleted or not.
func (r *Repository) GetRow(ctx context.Context, id string) (Row, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`, deleted_at IS NOT NULL
		FROM transactions WHERE id = ?`, id)

	var deleted bool
	t, remoteID, err := scanTransactionFull(row, &deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Row{}, store.ErrNotFound
		}
		return Row{}, fmt.Errorf("get transaction: %w", err)
	}
	return Row{Transaction: t, RemoteID: remoteID, Deleted: deleted}, nil
}

// ListUnsynced returns rows awaiting a remote mirror, oldest first.
func (r *Repository) ListUnsynced(ctx context.Context, limit int) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectColumns+`, deleted_at IS NOT NULL
		FROM transactions
		WHERE synced_at IS NULL
		ORDER BY updated_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query unsynced: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var deleted bool
		t, remoteID, err := scanTransactionFull(rows, &deleted)
		if err != nil {
			return nil, fmt.Errorf("scan unsynced row: %w", err)
		}
		out = append(out, Row{Transaction: t, RemoteID: remoteID, Deleted: deleted})
	}
	return out, rows.Err()
}

// MarkSynced records a successful remote mirror, storing the remote id
// assigned on create.
func (r *Repository) MarkSynced(ctx context.Context, id, remoteID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET synced_at = CURRENT_TIMESTAMP, remote_id = ?
		WHERE id = ?`, remoteID, id)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return nil
}

// Purge removes a soft-deleted row once its remote deletion went through.
func (r *Repository) Purge(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("purge transaction: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (core.Transaction, string, error) {
	var (
		t                                 core.Transaction
		category, kind, date              string
		payment, upi, bank, source, remID string
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &category, &t.Amount.Cents,
		&kind, &date, &payment, &upi, &bank, &source, &remID); err != nil {
		return core.Transaction{}, "", err
	}
	return assemble(t, category, kind, date, payment, upi, bank, source, remID)
}

func scanTransactionFull(s scanner, deleted *bool) (core.Transaction, string, error) {
	var (
		t                                 core.Transaction
		category, kind, date              string
		payment, upi, bank, source, remID string
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &category, &t.Amount.Cents,
		&kind, &date, &payment, &upi, &bank, &source, &remID, deleted); err != nil {
		return core.Transaction{}, "", err
	}
	return assemble(t, category, kind, date, payment, upi, bank, source, remID)
}

func assemble(t core.Transaction, category, kind, date, payment, upi, bank, source, remoteID string) (core.Transaction, string, error) {
	t.Category = core.CategoryID(category)
	t.Kind = core.Kind(kind)
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, "", fmt.Errorf("row %s: %w", t.ID, err)
	}
	t.Date = d
	if t.Kind == core.KindExpense && payment != "" {
		t.Payment = &core.PaymentDetails{Mode: core.PaymentMode(payment), UPIProvider: upi, Bank: bank}
	}
	if t.Kind == core.KindIncome && source != "" {
		t.Income = &core.IncomeDetails{Source: source}
	}
	return t, remoteID, nil
}

func detailColumns(t core.Transaction) (payment, upi, bank, source string) {
	if t.Payment != nil {
		payment = string(t.Payment.Mode)
		upi = t.Payment.UPIProvider
		bank = t.Payment.Bank
	}
	if t.Income != nil {
		source = t.Income.Source
	}
	return payment, upi, bank, source
}
