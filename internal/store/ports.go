// Package store defines the transaction persistence port and its error
// taxonomy. Concrete backends live in the subpackages rest, sqlite and
// memory.
package store

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/core"
)

// TransactionStore is the capability the analytics views need from any
// persistence backend. LoadAll must tolerate an empty result; zero
// transactions is valid. None of the methods retry — retrying is the
// transport's business, not the accessor's.
type TransactionStore interface {
	// LoadAll returns every stored transaction as an ordered sequence.
	LoadAll(ctx context.Context) ([]core.Transaction, error)

	// Create persists a new transaction (ID unset) and returns the
	// store's confirmed representation, ID included.
	Create(ctx context.Context, t core.Transaction) (core.Transaction, error)

	// Update replaces the stored transaction with the given one
	// (full replace, not a partial patch) and returns the confirmed
	// representation.
	Update(ctx context.Context, t core.Transaction) (core.Transaction, error)

	// Delete removes a transaction by identifier.
	Delete(ctx context.Context, id string) error
}

// ErrNotFound reports an identifier the store does not know.
var ErrNotFound = errors.New("transaction not found")

// TransportError wraps a failure to reach the backing store (network
// error or non-2xx response). Callers present a degraded empty view
// instead of crashing.
type TransportError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
