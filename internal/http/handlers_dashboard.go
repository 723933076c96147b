package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/format"
	"fintrack/internal/store"
)

type categorySpendDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Formatted  string  `json:"formatted"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type dashboardResponse struct {
	Year             int                `json:"year"`
	Month            int                `json:"month"`
	TotalIncome      float64            `json:"totalIncome"`
	TotalExpenses    float64            `json:"totalExpenses"`
	NetBalance       float64            `json:"netBalance"`
	TransactionCount int                `json:"transactionCount"`
	CategorySpending []categorySpendDTO `json:"categorySpending"`
	TopExpenses      []transactionDTO   `json:"topExpenses"`
	Degraded         bool               `json:"degraded,omitempty"`
}

// handleDashboard returns the month aggregate for the dashboard view.
// An unreachable store degrades to an empty aggregate instead of failing,
// so the client always has something to render.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	criteria, err := s.criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, degraded, err := s.summaryFor(r, criteria)
	if err != nil {
		s.storeError(w, r, "load dashboard", err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Year:             criteria.Year,
		Month:            criteria.Month,
		TotalIncome:      summary.TotalIncome.Rupees(),
		TotalExpenses:    summary.TotalExpenses.Rupees(),
		NetBalance:       summary.NetBalance.Rupees(),
		TransactionCount: summary.TransactionCount,
		CategorySpending: spendDTOs(summary.CategorySpending),
		TopExpenses:      toDTOs(summary.TopExpenses),
		Degraded:         degraded,
	})
}

// summaryFor computes (or recalls) the aggregate for the given criteria.
// A transport failure yields an empty summary with degraded=true; other
// errors are returned as-is.
func (s *Server) summaryFor(r *http.Request, criteria analytics.Criteria) (analytics.Summary, bool, error) {
	key := cacheKey(criteria)
	if cached, ok := s.summaryCache.Get(key); ok {
		return cached, false, nil
	}

	txs, err := s.store.LoadAll(r.Context())
	if err != nil {
		if store.IsTransport(err) {
			slog.WarnContext(r.Context(), "Store unreachable, serving empty aggregate", "error", err)
			return analytics.Summarize(nil), true, nil
		}
		return analytics.Summary{}, false, err
	}

	summary := analytics.Report(txs, criteria)
	s.summaryCache.Set(key, summary)
	return summary, false, nil
}

func spendDTOs(spending []analytics.CategorySpend) []categorySpendDTO {
	out := make([]categorySpendDTO, 0, len(spending))
	for _, cs := range spending {
		out = append(out, categorySpendDTO{
			ID:         string(cs.ID),
			Name:       cs.Name,
			Amount:     cs.Amount.Rupees(),
			Formatted:  format.Currency(cs.Amount),
			Percentage: cs.Percentage,
			Color:      cs.Color,
		})
	}
	return out
}

type categoryDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Kind          string  `json:"type"`
	Color         string  `json:"color"`
	MonthlyBudget float64 `json:"monthlyBudget,omitempty"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	categories := core.Categories()
	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryDTO{
			ID:            string(c.ID),
			Name:          c.Name,
			Kind:          string(c.Kind),
			Color:         c.Color,
			MonthlyBudget: c.MonthlyBudget.Rupees(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
