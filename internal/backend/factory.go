// Package backend builds the configured TransactionStore.
package backend

import (
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/services"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
	"fintrack/internal/store/rest"
	"fintrack/internal/store/sqlite"
)

// Type names a storage backend.
type Type string

const (
	TypeMemory Type = "memory"
	TypeREST   Type = "rest"
	TypeSQLite Type = "sqlite"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case TypeMemory, TypeREST, TypeSQLite:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result is a ready store plus its cleanup.
type Result struct {
	Store   store.TransactionStore
	Cleanup CleanupFunc
}

// Build creates the TransactionStore named by cfg.DataBackend.
func Build(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backendType := Type(cfg.DataBackend)
	switch backendType {
	case TypeMemory:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	case TypeREST:
		client := rest.New(cfg.RemoteAPIURL)
		logger.Info("Initialized REST backend", "base_url", cfg.RemoteAPIURL)
		return &Result{Store: client}, nil

	case TypeSQLite:
		return buildSQLite(cfg, logger)

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", backendType)
	}
}

func buildSQLite(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	// AMQP is optional; without it writes stay local until the worker's
	// sweep finds them.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync messages", "error", err)
			amqpClient = nil
		} else {
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	service := services.NewTransactionService(repo, amqpClient)

	logger.Info("Initialized SQLite backend",
		"db_path", cfg.SQLiteDBPath, "amqp_enabled", amqpClient != nil)

	return &Result{
		Store:   service,
		Cleanup: service.Close,
	}, nil
}
