// Package http is the JSON API surface of the service.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/store"
)

// Exporter pushes a batch of transactions to an external spreadsheet.
type Exporter interface {
	Export(ctx context.Context, txs []core.Transaction) (int, error)
}

// Options carries the optional collaborators of a Server.
type Options struct {
	Auth     *auth.Manager
	Exporter Exporter
	Now      func() time.Time
}

type Server struct {
	http.Server

	store    store.TransactionStore
	authMgr  *auth.Manager
	exporter Exporter
	now      func() time.Time

	rateLimiter *ratelimit.Limiter
	traceMW     *trace.Middleware

	// Dashboard and analytics responses are cached per criteria and
	// dropped wholesale on any mutation.
	summaryCache *cache.Cache[analytics.Summary]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, ts store.TransactionStore, opts Options) *Server {
	mux := http.NewServeMux()

	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		store:        ts,
		authMgr:      opts.Auth,
		exporter:     opts.Exporter,
		now:          opts.Now,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		traceMW:      trace.NewMiddleware(clientIP),
		summaryCache: cache.New[analytics.Summary](100, 5*time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	if s.authMgr != nil {
		mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	}

	api := http.NewServeMux()
	api.HandleFunc("GET /api/transactions", s.handleListTransactions)
	api.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	api.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	api.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	api.HandleFunc("GET /api/categories", s.handleListCategories)
	api.HandleFunc("GET /api/dashboard", s.handleDashboard)
	api.HandleFunc("GET /api/analytics", s.handleAnalytics)
	if s.exporter != nil {
		api.HandleFunc("POST /api/export", s.handleExport)
	}

	var apiHandler http.Handler = api
	if s.authMgr != nil {
		apiHandler = auth.Middleware(s.authMgr)(apiHandler)
	}
	mux.Handle("/api/", apiHandler)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.rateLimiter.Middleware(clientIP)

	s.Server.Handler = s.traceMW.Middleware(headers.Middleware(limit(mux)))
	return s
}

// Shutdown stops the listener and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// invalidateAggregates drops cached summaries after a mutation.
func (s *Server) invalidateAggregates() {
	s.summaryCache.Purge()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.store.LoadAll(ctx); err != nil {
		http.Error(w, "store not reachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
