package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/analytics"
)

type exportResponse struct {
	Exported int `json:"exported"`
	Year     int `json:"year"`
	Month    int `json:"month"`
}

// handleExport appends the selected month's transactions to the
// configured spreadsheet.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	criteria, err := s.criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.store.LoadAll(r.Context())
	if err != nil {
		s.storeError(w, r, "load transactions for export", err)
		return
	}

	month := analytics.Filter(txs, criteria)
	count, err := s.exporter.Export(r.Context(), month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed",
			"year", criteria.Year, "month", criteria.Month, "error", err)
		writeError(w, http.StatusBadGateway, "export failed")
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{
		Exported: count,
		Year:     criteria.Year,
		Month:    criteria.Month,
	})
}
