// Package analytics turns a raw transaction list into filtered subsets,
// category rollups and derived insights for the dashboard views.
package analytics

import (
	"time"

	"fintrack/internal/core"
)

// Criteria is the active year/month/category selection narrowing which
// transactions are summarized. Kind and PaymentMode are optional
// restrictions; their zero values mean "no restriction".
type Criteria struct {
	Year        int
	Month       int // 1-12
	Category    core.CategoryID
	Kind        core.Kind
	PaymentMode core.PaymentMode
}

// CurrentMonth returns the reset state: current calendar month, all
// categories, no kind or payment restriction.
func CurrentMonth(now time.Time) Criteria {
	return Criteria{
		Year:     now.Year(),
		Month:    int(now.Month()),
		Category: core.CategoryAll,
	}
}

// Previous returns the criteria shifted one calendar month back, keeping
// every other restriction. Used for period-over-period comparisons.
func (c Criteria) Previous() Criteria {
	prev := c
	prev.Month--
	if prev.Month < 1 {
		prev.Month = 12
		prev.Year--
	}
	return prev
}

// Matches reports whether a transaction satisfies every criterion.
// A transaction with a zero date never matches; lenient boundary parsing
// drops such records instead of failing the whole filter.
func (c Criteria) Matches(t core.Transaction) bool {
	if t.Date.IsZero() {
		return false
	}
	if t.Date.Year() != c.Year || t.Date.Month() != c.Month {
		return false
	}
	if c.Category != "" && c.Category != core.CategoryAll && t.Category != c.Category {
		return false
	}
	if c.Kind != "" && t.Kind != c.Kind {
		return false
	}
	if c.PaymentMode != "" {
		if t.Payment == nil || t.Payment.Mode != c.PaymentMode {
			return false
		}
	}
	return true
}

// Filter returns the subsequence of transactions matching all criteria.
// The filter is stable: relative order of matching elements is preserved.
func Filter(txs []core.Transaction, c Criteria) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
