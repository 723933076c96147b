// Package rest implements the TransactionStore port against a remote
// backend speaking the /api/transactions JSON interface.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// DefaultTimeout bounds every remote call; the upstream contract has no
// timeout of its own, so the client adds one defensively.
const DefaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL, e.g.
// "http://localhost:8080/api/transactions".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// NewWithClient allows injecting a custom HTTP client (tests, custom
// transports).
func NewWithClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

var _ store.TransactionStore = (*Client)(nil)

// LoadAll fetches the complete transaction list. Records with dates the
// backend could not serialize sanely are dropped with a warning rather
// than failing the whole load.
func (c *Client) LoadAll(ctx context.Context) ([]core.Transaction, error) {
	var dtos []transactionDTO
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &dtos); err != nil {
		return nil, err
	}

	txs := make([]core.Transaction, 0, len(dtos))
	for _, d := range dtos {
		t, err := d.toDomain()
		if err != nil {
			slog.WarnContext(ctx, "Dropping transaction with bad payload",
				"id", string(d.ID), "date", d.Date, "error", err)
			continue
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func (c *Client) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	var out transactionDTO
	if err := c.do(ctx, http.MethodPost, c.baseURL, fromDomain(t), &out); err != nil {
		return core.Transaction{}, err
	}
	return out.toDomain()
}

func (c *Client) Update(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		return core.Transaction{}, fmt.Errorf("update: %w", store.ErrNotFound)
	}
	var out transactionDTO
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/"+t.ID, fromDomain(t), &out); err != nil {
		return core.Transaction{}, err
	}
	return out.toDomain()
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/"+id, nil, nil)
}

// do performs one round trip. A connection failure or non-2xx status
// surfaces as *store.TransportError; a 404 additionally wraps
// store.ErrNotFound so callers can distinguish it.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &store.TransportError{Op: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &store.TransportError{Op: method, URL: url, Status: resp.StatusCode, Err: store.ErrNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &store.TransportError{Op: method, URL: url, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &store.TransportError{Op: method, URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
