package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
)

// downStore simulates an unreachable remote backend.
type downStore struct{}

func (downStore) LoadAll(context.Context) ([]core.Transaction, error) {
	return nil, &store.TransportError{Op: "GET", URL: "http://api/transactions", Err: errors.New("connection refused")}
}

func (downStore) Create(_ context.Context, t core.Transaction) (core.Transaction, error) {
	return core.Transaction{}, &store.TransportError{Op: "POST", URL: "http://api/transactions", Err: errors.New("connection refused")}
}

func (downStore) Update(_ context.Context, t core.Transaction) (core.Transaction, error) {
	return core.Transaction{}, &store.TransportError{Op: "PUT", URL: "http://api/transactions", Err: errors.New("connection refused")}
}

func (downStore) Delete(context.Context, string) error {
	return &store.TransportError{Op: "DELETE", URL: "http://api/transactions", Err: errors.New("connection refused")}
}

func TestDashboardAggregates(t *testing.T) {
	s := newTestServer(t, memory.NewSeeded(seedTransactions()), Options{})

	rec := doJSON(t, s, http.MethodGet, "/api/dashboard?year=2024&month=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	got := decodeBody[dashboardResponse](t, rec)
	if got.TotalIncome != 200 || got.TotalExpenses != 150 || got.NetBalance != 50 {
		t.Errorf("totals = %v/%v/%v, want 200/150/50",
			got.TotalIncome, got.TotalExpenses, got.NetBalance)
	}
	if got.TransactionCount != 2 {
		t.Errorf("count = %d, want 2", got.TransactionCount)
	}
	if len(got.CategorySpending) != 1 || got.CategorySpending[0].ID != "food" {
		t.Fatalf("spending = %+v, want single food row", got.CategorySpending)
	}
	if math.Abs(got.CategorySpending[0].Percentage-100) > 0.001 {
		t.Errorf("food percentage = %v, want 100", got.CategorySpending[0].Percentage)
	}
	if got.Degraded {
		t.Error("degraded = true with healthy store")
	}
}

func TestDashboardDefaultsToCurrentMonth(t *testing.T) {
	// fixedNow is March 2024; the seed holds two March transactions.
	s := newTestServer(t, memory.NewSeeded(seedTransactions()), Options{})

	rec := doJSON(t, s, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	got := decodeBody[dashboardResponse](t, rec)
	if got.Year != 2024 || got.Month != 3 {
		t.Errorf("period = %d-%d, want 2024-3", got.Year, got.Month)
	}
	if got.TransactionCount != 2 {
		t.Errorf("count = %d, want 2", got.TransactionCount)
	}
}

func TestDashboardDegradesWhenStoreDown(t *testing.T) {
	s := newTestServer(t, downStore{}, Options{})

	rec := doJSON(t, s, http.MethodGet, "/api/dashboard?year=2024&month=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 degraded response", rec.Code)
	}

	got := decodeBody[dashboardResponse](t, rec)
	if !got.Degraded {
		t.Error("degraded = false, want true")
	}
	if got.TransactionCount != 0 || got.TotalExpenses != 0 {
		t.Errorf("degraded aggregate not empty: %+v", got)
	}
}

func TestDashboardCacheInvalidatedByMutation(t *testing.T) {
	mem := memory.NewSeeded(seedTransactions())
	s := newTestServer(t, mem, Options{})

	rec := doJSON(t, s, http.MethodGet, "/api/dashboard?year=2024&month=3", nil)
	before := decodeBody[dashboardResponse](t, rec)

	rec = doJSON(t, s, http.MethodPost, "/api/transactions", transactionDTO{
		Title: "Taxi", Category: "transport", Amount: 30,
		Type: "expense", Date: "2024-03-12", PaymentMode: "Cash",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/dashboard?year=2024&month=3", nil)
	after := decodeBody[dashboardResponse](t, rec)

	if after.TotalExpenses != before.TotalExpenses+30 {
		t.Errorf("expenses after mutation = %v, want %v", after.TotalExpenses, before.TotalExpenses+30)
	}
}

func TestAnalyticsInsights(t *testing.T) {
	s := newTestServer(t, memory.NewSeeded(seedTransactions()), Options{})

	rec := doJSON(t, s, http.MethodGet, "/api/analytics?year=2024&month=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	got := decodeBody[analyticsResponse](t, rec)
	if got.ExpensesFormatted != "₹150.00" {
		t.Errorf("ExpensesFormatted = %q, want ₹150.00", got.ExpensesFormatted)
	}
	if got.Insights.LargestExpense.Title != "Groceries" {
		t.Errorf("largest expense = %q, want Groceries", got.Insights.LargestExpense.Title)
	}
	if got.Insights.PotentialSavings != 15 {
		t.Errorf("potential savings = %v, want 15", got.Insights.PotentialSavings)
	}
	if got.Insights.IsOverBudget {
		t.Error("over budget = true for ₹150 of expenses")
	}
	if got.Insights.BudgetStatus != "On Track" {
		t.Errorf("budget status = %q, want On Track", got.Insights.BudgetStatus)
	}
	// Food is new against February, entertainment only existed then.
	if got.Insights.FastestGrowing.Name != "Food & Dining" {
		t.Errorf("fastest growing = %q, want Food & Dining", got.Insights.FastestGrowing.Name)
	}
}

func TestExport(t *testing.T) {
	exp := &fakeExporter{}
	s := newTestServer(t, memory.NewSeeded(seedTransactions()), Options{Exporter: exp})

	rec := doJSON(t, s, http.MethodPost, "/api/export?year=2024&month=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	got := decodeBody[exportResponse](t, rec)
	if got.Exported != 2 {
		t.Errorf("exported = %d, want 2", got.Exported)
	}
	if len(exp.got) != 2 {
		t.Errorf("exporter received %d transactions, want 2", len(exp.got))
	}
}

func TestExportRouteAbsentWithoutExporter(t *testing.T) {
	s := newTestServer(t, memory.New(), Options{})

	rec := doJSON(t, s, http.MethodPost, "/api/export?year=2024&month=3", nil)
	if rec.Code == http.StatusOK {
		t.Error("export succeeded without a configured exporter")
	}
}

type fakeExporter struct {
	got []core.Transaction
}

func (f *fakeExporter) Export(_ context.Context, txs []core.Transaction) (int, error) {
	f.got = append(f.got, txs...)
	return len(txs), nil
}
