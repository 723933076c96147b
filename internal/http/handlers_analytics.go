package http

import (
	"net/http"

	"fintrack/internal/format"
)

type largestExpenseDTO struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
	Category  string  `json:"category"`
	Title     string  `json:"title"`
}

type categoryGrowthDTO struct {
	Name      string  `json:"name"`
	GrowthPct float64 `json:"growthPct"`
}

type insightsDTO struct {
	LargestExpense   largestExpenseDTO `json:"largestExpense"`
	FastestGrowing   categoryGrowthDTO `json:"fastestGrowing"`
	PotentialSavings float64           `json:"potentialSavings"`
	SavingsFormatted string            `json:"savingsFormatted"`
	BudgetRemaining  float64           `json:"budgetRemaining"`
	IsOverBudget     bool              `json:"isOverBudget"`
	BudgetStatus     string            `json:"budgetStatus"`
}

type analyticsResponse struct {
	Year              int                `json:"year"`
	Month             int                `json:"month"`
	Category          string             `json:"category"`
	TotalIncome       float64            `json:"totalIncome"`
	TotalExpenses     float64            `json:"totalExpenses"`
	NetBalance        float64            `json:"netBalance"`
	IncomeFormatted   string             `json:"incomeFormatted"`
	ExpensesFormatted string             `json:"expensesFormatted"`
	IncomeCompact     string             `json:"incomeCompact"`
	ExpensesCompact   string             `json:"expensesCompact"`
	TransactionCount  int                `json:"transactionCount"`
	CategorySpending  []categorySpendDTO `json:"categorySpending"`
	TopExpenses       []transactionDTO   `json:"topExpenses"`
	Insights          insightsDTO        `json:"insights"`
	Degraded          bool               `json:"degraded,omitempty"`
}

// handleAnalytics returns the full aggregate plus insights, with amounts
// preformatted for display.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	criteria, err := s.criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, degraded, err := s.summaryFor(r, criteria)
	if err != nil {
		s.storeError(w, r, "load analytics", err)
		return
	}

	ins := summary.Insights
	writeJSON(w, http.StatusOK, analyticsResponse{
		Year:              criteria.Year,
		Month:             criteria.Month,
		Category:          string(criteria.Category),
		TotalIncome:       summary.TotalIncome.Rupees(),
		TotalExpenses:     summary.TotalExpenses.Rupees(),
		NetBalance:        summary.NetBalance.Rupees(),
		IncomeFormatted:   format.Currency(summary.TotalIncome),
		ExpensesFormatted: format.Currency(summary.TotalExpenses),
		IncomeCompact:     format.Compact(summary.TotalIncome),
		ExpensesCompact:   format.Compact(summary.TotalExpenses),
		TransactionCount:  summary.TransactionCount,
		CategorySpending:  spendDTOs(summary.CategorySpending),
		TopExpenses:       toDTOs(summary.TopExpenses),
		Insights: insightsDTO{
			LargestExpense: largestExpenseDTO{
				Amount:    ins.LargestExpense.Amount.Rupees(),
				Formatted: format.Currency(ins.LargestExpense.Amount),
				Category:  ins.LargestExpense.Category,
				Title:     ins.LargestExpense.Title,
			},
			FastestGrowing: categoryGrowthDTO{
				Name:      ins.FastestGrowing.Name,
				GrowthPct: ins.FastestGrowing.GrowthPct,
			},
			PotentialSavings: ins.PotentialSavings.Rupees(),
			SavingsFormatted: format.Currency(ins.PotentialSavings),
			BudgetRemaining:  ins.BudgetRemaining.Rupees(),
			IsOverBudget:     ins.IsOverBudget,
			BudgetStatus:     ins.BudgetStatus,
		},
		Degraded: degraded,
	})
}
