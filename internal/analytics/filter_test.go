package analytics

import (
	"reflect"
	"testing"
	"time"

	"fintrack/internal/core"
)

func tx(id string, amountCents int64, kind core.Kind, category core.CategoryID, date core.Date) core.Transaction {
	t := core.Transaction{
		ID:       id,
		Title:    id,
		Category: category,
		Amount:   core.Money{Cents: amountCents},
		Kind:     kind,
		Date:     date,
	}
	if kind == core.KindExpense {
		t.Payment = &core.PaymentDetails{Mode: core.PaymentCash}
	}
	return t
}

func sampleMarch() []core.Transaction {
	return []core.Transaction{
		tx("a", 100_00, core.KindExpense, "food", core.NewDate(2024, 3, 5)),
		tx("b", 50_00, core.KindExpense, "food", core.NewDate(2024, 3, 10)),
		tx("c", 200_00, core.KindIncome, "salary", core.NewDate(2024, 3, 1)),
	}
}

func TestFilterByYearMonth(t *testing.T) {
	all := append(sampleMarch(),
		tx("d", 75_00, core.KindExpense, "transport", core.NewDate(2024, 4, 2)),
		tx("e", 75_00, core.KindExpense, "transport", core.NewDate(2023, 3, 2)),
	)

	got := Filter(all, Criteria{Year: 2024, Month: 3, Category: core.CategoryAll})
	if len(got) != 3 {
		t.Fatalf("got %d transactions, want 3", len(got))
	}
	for _, m := range got {
		if m.Date.Year() != 2024 || m.Date.Month() != 3 {
			t.Fatalf("transaction %s outside March 2024", m.ID)
		}
	}

	// No April 2025 data: empty, not nil-panic.
	if got := Filter(all, Criteria{Year: 2025, Month: 4, Category: core.CategoryAll}); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestFilterRestrictions(t *testing.T) {
	upi := tx("u", 30_00, core.KindExpense, "shopping", core.NewDate(2024, 3, 7))
	upi.Payment = &core.PaymentDetails{Mode: core.PaymentUPI, UPIProvider: "GPay", Bank: "HDFC Bank"}
	all := append(sampleMarch(), upi)

	base := Criteria{Year: 2024, Month: 3, Category: core.CategoryAll}

	byCat := base
	byCat.Category = "food"
	if got := Filter(all, byCat); len(got) != 2 {
		t.Fatalf("category filter: got %d, want 2", len(got))
	}

	byKind := base
	byKind.Kind = core.KindIncome
	if got := Filter(all, byKind); len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("kind filter: got %v", got)
	}

	byMode := base
	byMode.PaymentMode = core.PaymentUPI
	if got := Filter(all, byMode); len(got) != 1 || got[0].ID != "u" {
		t.Fatalf("payment mode filter: got %v", got)
	}
}

func TestFilterStableAndIdempotent(t *testing.T) {
	all := sampleMarch()
	c := Criteria{Year: 2024, Month: 3, Category: core.CategoryAll}

	once := Filter(all, c)
	for i := 1; i < len(once); i++ {
		if indexOf(all, once[i-1].ID) > indexOf(all, once[i].ID) {
			t.Fatal("relative order not preserved")
		}
	}

	twice := Filter(once, c)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("filter is not idempotent")
	}
}

func TestFilterDropsZeroDates(t *testing.T) {
	broken := core.Transaction{
		ID: "z", Title: "z", Category: "food",
		Amount: core.Money{Cents: 10_00}, Kind: core.KindExpense,
	}
	all := append(sampleMarch(), broken)
	got := Filter(all, Criteria{Year: 2024, Month: 3, Category: core.CategoryAll})
	for _, m := range got {
		if m.ID == "z" {
			t.Fatal("zero-date transaction must never match")
		}
	}
}

func TestCurrentMonthAndPrevious(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	c := CurrentMonth(now)
	if c.Year != 2024 || c.Month != 1 || c.Category != core.CategoryAll {
		t.Fatalf("got %+v", c)
	}
	prev := c.Previous()
	if prev.Year != 2023 || prev.Month != 12 {
		t.Fatalf("year rollover: got %+v", prev)
	}
}

func indexOf(txs []core.Transaction, id string) int {
	for i, t := range txs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
