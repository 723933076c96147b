package analytics

import (
	"math"
	"testing"

	"fintrack/internal/core"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalIncome.Cents != 0 || s.TotalExpenses.Cents != 0 || s.NetBalance.Cents != 0 {
		t.Fatalf("expected zero totals, got %+v", s)
	}
	if len(s.CategorySpending) != 0 || len(s.TopExpenses) != 0 {
		t.Fatal("expected empty rollup and top list")
	}
	if s.Insights.LargestExpense.Amount.Cents != 0 {
		t.Fatalf("expected zero largest expense, got %+v", s.Insights.LargestExpense)
	}
	if s.Insights.BudgetStatus != BudgetStatusOnTrack {
		t.Fatalf("got %q", s.Insights.BudgetStatus)
	}
}

// Scenario from the dashboard: two March expenses plus one March income.
func TestSummarizeMarchScenario(t *testing.T) {
	all := sampleMarch()
	s := Report(all, Criteria{Year: 2024, Month: 3, Category: core.CategoryAll})

	if s.TotalExpenses.Cents != 150_00 {
		t.Fatalf("totalExpenses = %d", s.TotalExpenses.Cents)
	}
	if s.TotalIncome.Cents != 200_00 {
		t.Fatalf("totalIncome = %d", s.TotalIncome.Cents)
	}
	if s.NetBalance.Cents != 50_00 {
		t.Fatalf("netBalance = %d", s.NetBalance.Cents)
	}

	if len(s.CategorySpending) != 1 {
		t.Fatalf("categorySpending rows = %d", len(s.CategorySpending))
	}
	row := s.CategorySpending[0]
	if row.Name != "Food & Dining" || row.Amount.Cents != 150_00 || row.Percentage != 100 {
		t.Fatalf("got %+v", row)
	}

	if len(s.TopExpenses) != 2 {
		t.Fatalf("topExpenses len = %d", len(s.TopExpenses))
	}
	if s.TopExpenses[0].Amount.Cents != 100_00 || s.TopExpenses[1].Amount.Cents != 50_00 {
		t.Fatalf("top order wrong: %d, %d", s.TopExpenses[0].Amount.Cents, s.TopExpenses[1].Amount.Cents)
	}
}

func TestSummarizeNoMatchMonth(t *testing.T) {
	s := Report(sampleMarch(), Criteria{Year: 2024, Month: 4, Category: core.CategoryAll})
	if s.TotalExpenses.Cents != 0 || s.TotalIncome.Cents != 0 || s.NetBalance.Cents != 0 {
		t.Fatalf("expected zero aggregates, got %+v", s)
	}
	if len(s.CategorySpending) != 0 || len(s.TopExpenses) != 0 {
		t.Fatal("expected empty lists")
	}
}

func TestCategoryRollupPercentages(t *testing.T) {
	txs := []core.Transaction{
		tx("a", 300_00, core.KindExpense, "food", core.NewDate(2024, 5, 1)),
		tx("b", 100_00, core.KindExpense, "transport", core.NewDate(2024, 5, 2)),
		tx("c", 100_00, core.KindExpense, "shopping", core.NewDate(2024, 5, 3)),
		tx("d", 999_00, core.KindIncome, "salary", core.NewDate(2024, 5, 4)),
	}
	s := Summarize(txs)

	var amountSum, pctSum float64
	for _, row := range s.CategorySpending {
		amountSum += float64(row.Amount.Cents)
		pctSum += row.Percentage
	}
	if int64(amountSum) != s.TotalExpenses.Cents {
		t.Fatalf("rollup sum %v != totalExpenses %d", amountSum, s.TotalExpenses.Cents)
	}
	if math.Abs(pctSum-100) > 1e-9 {
		t.Fatalf("percentages sum to %v", pctSum)
	}
	for i := 1; i < len(s.CategorySpending); i++ {
		if s.CategorySpending[i].Amount.Cents > s.CategorySpending[i-1].Amount.Cents {
			t.Fatal("rollup not sorted descending")
		}
	}
}

func TestTopExpensesCapAndStability(t *testing.T) {
	var txs []core.Transaction
	// Seven expenses, two of which tie at 50.00.
	amounts := []int64{10_00, 50_00, 70_00, 50_00, 20_00, 90_00, 30_00}
	ids := []string{"t0", "tie-first", "t2", "tie-second", "t4", "t5", "t6"}
	for i, cents := range amounts {
		txs = append(txs, tx(ids[i], cents, core.KindExpense, "food", core.NewDate(2024, 5, 1)))
	}

	s := Summarize(txs)
	if len(s.TopExpenses) != TopExpenseCount {
		t.Fatalf("top list len = %d", len(s.TopExpenses))
	}
	for i := 1; i < len(s.TopExpenses); i++ {
		if s.TopExpenses[i].Amount.Cents > s.TopExpenses[i-1].Amount.Cents {
			t.Fatal("top list not descending")
		}
	}
	// Stable tie-break: equal amounts keep input order.
	firstTie, secondTie := -1, -1
	for i, e := range s.TopExpenses {
		switch e.ID {
		case "tie-first":
			firstTie = i
		case "tie-second":
			secondTie = i
		}
	}
	if firstTie == -1 || secondTie == -1 || firstTie > secondTie {
		t.Fatalf("tie order broken: first=%d second=%d", firstTie, secondTie)
	}
}

func TestInsights(t *testing.T) {
	txs := []core.Transaction{
		tx("big", 40_000_00, core.KindExpense, "shopping", core.NewDate(2024, 5, 1)),
		tx("small", 15_000_00, core.KindExpense, "food", core.NewDate(2024, 5, 2)),
	}
	s := Summarize(txs)

	if s.Insights.LargestExpense.Title != "big" || s.Insights.LargestExpense.Amount.Cents != 40_000_00 {
		t.Fatalf("largest = %+v", s.Insights.LargestExpense)
	}
	if s.Insights.PotentialSavings.Cents != 5_500_00 {
		t.Fatalf("potentialSavings = %d", s.Insights.PotentialSavings.Cents)
	}
	// 55,000 spent against the 50,000 budget.
	if !s.Insights.IsOverBudget || s.Insights.BudgetStatus != BudgetStatusOver {
		t.Fatalf("budget insight = %+v", s.Insights)
	}
	if s.Insights.BudgetRemaining.Cents != -5_000_00 {
		t.Fatalf("budgetRemaining = %d", s.Insights.BudgetRemaining.Cents)
	}
}

func TestFastestGrowing(t *testing.T) {
	previous := []core.Transaction{
		tx("p1", 100_00, core.KindExpense, "food", core.NewDate(2024, 2, 5)),
		tx("p2", 100_00, core.KindExpense, "transport", core.NewDate(2024, 2, 6)),
	}
	current := []core.Transaction{
		tx("c1", 120_00, core.KindExpense, "food", core.NewDate(2024, 3, 5)),      // +20%
		tx("c2", 180_00, core.KindExpense, "transport", core.NewDate(2024, 3, 6)), // +80%
	}

	got := FastestGrowing(current, previous)
	if got.Name != "Transportation" {
		t.Fatalf("got %+v", got)
	}
	if math.Abs(got.GrowthPct-80) > 1e-9 {
		t.Fatalf("growth = %v", got.GrowthPct)
	}

	// A category new this month counts as 100% growth.
	newCat := append(current, tx("c3", 10_00, core.KindExpense, "education", core.NewDate(2024, 3, 7)))
	if got := FastestGrowing(newCat, previous); got.Name != "Education" || got.GrowthPct != 100 {
		t.Fatalf("got %+v", got)
	}

	// No current expenses at all.
	if got := FastestGrowing(nil, previous); got.Name != "None" {
		t.Fatalf("got %+v", got)
	}
}
