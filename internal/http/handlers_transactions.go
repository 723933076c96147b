package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/store"
)

const maxBodyBytes = 1 << 20

// handleListTransactions returns transactions, optionally narrowed by the
// same query parameters the aggregate endpoints accept. Without any query
// the full list is returned.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.LoadAll(r.Context())
	if err != nil {
		s.storeError(w, r, "load transactions", err)
		return
	}

	if len(r.URL.Query()) > 0 {
		criteria, err := s.criteriaFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		txs = analytics.Filter(txs, criteria)
	}

	writeJSON(w, http.StatusOK, toDTOs(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	t, ok := s.decodeTransaction(w, r)
	if !ok {
		return
	}

	created, err := s.store.Create(r.Context(), t)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.storeError(w, r, "create transaction", err)
		return
	}

	s.invalidateAggregates()
	writeJSON(w, http.StatusCreated, toDTO(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	t, ok := s.decodeTransaction(w, r)
	if !ok {
		return
	}
	t.ID = id

	updated, err := s.store.Update(r.Context(), t)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "transaction not found")
		case isValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.storeError(w, r, "update transaction", err)
		}
		return
	}

	s.invalidateAggregates()
	writeJSON(w, http.StatusOK, toDTO(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		s.storeError(w, r, "delete transaction", err)
		return
	}

	s.invalidateAggregates()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeTransaction(w http.ResponseWriter, r *http.Request) (core.Transaction, bool) {
	var dto transactionDTO
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return core.Transaction{}, false
	}

	parsed, err := dto.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return core.Transaction{}, false
	}
	if err := parsed.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return core.Transaction{}, false
	}
	return parsed, true
}

// isValidationError reports whether err stems from domain validation
// rather than a backend failure.
func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidAmount, core.ErrInvalidKind, core.ErrInvalidDate,
		core.ErrEmptyTitle, core.ErrEmptyCategory, core.ErrMismatchedDetails,
		core.ErrMissingPaymentMode, core.ErrMissingUPIProvider, core.ErrMissingBank,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// storeError maps backend failures to a 502 and logs the cause.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), "Store operation failed", "operation", op, "error", err)
	writeError(w, http.StatusBadGateway, "upstream store unavailable")
}
