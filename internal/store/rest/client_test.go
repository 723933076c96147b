package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func TestLoadAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method %s", r.Method)
		}
		// Numeric and string ids, plus one record with a broken date
		// that must be dropped, not fatal.
		_, _ = w.Write([]byte(`[
			{"id": 7, "title": "Groceries", "category": "food", "amount": 150.5, "type": "expense", "date": "2024-03-05", "paymentMode": "Cash"},
			{"id": "m1abc", "title": "Salary", "category": "salary", "amount": 200, "type": "income", "date": "2024-03-01", "incomeSource": "Employer"},
			{"id": 8, "title": "Ghost", "category": "food", "amount": 10, "type": "expense", "date": "not-a-date"}
		]`))
	}))
	defer srv.Close()

	txs, err := New(srv.URL).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if txs[0].ID != "7" || txs[0].Amount.Cents != 150_50 || txs[0].Payment == nil {
		t.Fatalf("first tx mismatch: %+v", txs[0])
	}
	if txs[1].Kind != core.KindIncome || txs[1].Income == nil || txs[1].Income.Source != "Employer" {
		t.Fatalf("second tx mismatch: %+v", txs[1])
	}
}

func TestLoadAllEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	txs, err := New(srv.URL).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("empty list is not an error: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("got %d", len(txs))
	}
}

func TestCreateRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		var d map[string]any
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if d["title"] != "Lunch" || d["amount"] != 99.5 {
			t.Fatalf("body mismatch: %v", d)
		}
		d["id"] = 42
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(d)
	}))
	defer srv.Close()

	created, err := New(srv.URL).Create(context.Background(), core.Transaction{
		Title:    "Lunch",
		Category: "food",
		Amount:   core.Money{Cents: 99_50},
		Kind:     core.KindExpense,
		Date:     core.NewDate(2024, 3, 5),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "42" {
		t.Fatalf("got id %q", created.ID)
	}
}

func TestTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).LoadAll(context.Background())
	var te *store.TransportError
	if !errors.As(err, &te) || te.Status != http.StatusBadGateway {
		t.Fatalf("got %v", err)
	}

	srv.Close()
	if _, err := New(srv.URL).LoadAll(context.Background()); !store.IsTransport(err) {
		t.Fatalf("connection failure should be a transport error, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := New(srv.URL).Delete(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if !store.IsTransport(err) {
		t.Fatalf("404 should still carry transport context: %v", err)
	}
}
