package analytics

import (
	"sort"

	"fintrack/internal/core"
)

// MonthlyBudgetCents is the fixed overall monthly budget the budget-status
// insight is measured against.
const MonthlyBudgetCents int64 = 50_000_00

// TopExpenseCount is how many transactions the top-spending list holds.
const TopExpenseCount = 5

const (
	BudgetStatusOnTrack = "On Track"
	BudgetStatusOver    = "Over Budget"
)

type (
	// CategorySpend is one row of the per-category expense rollup.
	CategorySpend struct {
		ID         core.CategoryID
		Name       string
		Amount     core.Money
		Percentage float64
		Color      string
	}

	// LargestExpense identifies the biggest single expense of the
	// filtered set. Zero-valued when the set holds no expenses.
	LargestExpense struct {
		Amount   core.Money
		Category string
		Title    string
	}

	// CategoryGrowth names the category whose spending grew fastest
	// against the previous period.
	CategoryGrowth struct {
		Name      string
		GrowthPct float64
	}

	// Insights bundles the derived metrics shown on the analytics view.
	Insights struct {
		LargestExpense   LargestExpense
		FastestGrowing   CategoryGrowth
		PotentialSavings core.Money
		BudgetRemaining  core.Money
		IsOverBudget     bool
		BudgetStatus     string
	}

	// Summary is the recomputed-on-demand aggregate of a filtered set.
	// It is never persisted.
	Summary struct {
		TotalIncome      core.Money
		TotalExpenses    core.Money
		NetBalance       core.Money
		TransactionCount int
		CategorySpending []CategorySpend
		TopExpenses      []core.Transaction
		Insights         Insights
	}
)

// Summarize computes the aggregate of a filtered transaction set. It is a
// pure function of its input; the FastestGrowing insight is left at its
// "None" zero state because it needs a prior period, see Report.
func Summarize(filtered []core.Transaction) Summary {
	s := Summary{TransactionCount: len(filtered)}

	for _, t := range filtered {
		switch t.Kind {
		case core.KindIncome:
			s.TotalIncome.Cents += t.Amount.Cents
		case core.KindExpense:
			s.TotalExpenses.Cents += t.Amount.Cents
		}
	}
	s.NetBalance = core.Money{Cents: s.TotalIncome.Cents - s.TotalExpenses.Cents}

	s.CategorySpending = categoryRollup(filtered)
	s.TopExpenses = topExpenses(filtered)
	s.Insights = insights(filtered, s.TotalExpenses)
	return s
}

// Report filters the full transaction list by the given criteria,
// summarizes the result, and fills the fastest-growing insight from a
// previous-month comparison over the same list.
func Report(all []core.Transaction, c Criteria) Summary {
	current := Filter(all, c)
	s := Summarize(current)
	s.Insights.FastestGrowing = FastestGrowing(current, Filter(all, c.Previous()))
	return s
}

// categoryRollup sums expense-kind amounts per catalogue category.
// Every known category starts at zero; zero rows are dropped after
// accumulation and the remainder is sorted descending by amount.
func categoryRollup(filtered []core.Transaction) []CategorySpend {
	totals := make(map[core.CategoryID]int64)
	for _, c := range core.Categories() {
		totals[c.ID] = 0
	}

	var sum int64
	for _, t := range filtered {
		if !t.IsExpense() {
			continue
		}
		totals[t.Category] += t.Amount.Cents
		sum += t.Amount.Cents
	}

	out := make([]CategorySpend, 0, len(totals))
	for id, cents := range totals {
		if cents == 0 {
			continue
		}
		pct := 0.0
		if sum > 0 {
			pct = float64(cents) / float64(sum) * 100
		}
		row := CategorySpend{ID: id, Name: core.CategoryName(id), Amount: core.Money{Cents: cents}, Percentage: pct, Color: "#CCC"}
		if cat, ok := core.CategoryByID(id); ok {
			row.Color = cat.Color
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// topExpenses returns the five largest expense transactions, descending by
// amount. Ties keep their original relative order (stable sort, no
// secondary key).
func topExpenses(filtered []core.Transaction) []core.Transaction {
	expenses := make([]core.Transaction, 0, len(filtered))
	for _, t := range filtered {
		if t.IsExpense() {
			expenses = append(expenses, t)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.Cents > expenses[j].Amount.Cents
	})
	if len(expenses) > TopExpenseCount {
		expenses = expenses[:TopExpenseCount]
	}
	return expenses
}

func insights(filtered []core.Transaction, totalExpenses core.Money) Insights {
	ins := Insights{
		FastestGrowing: CategoryGrowth{Name: "None"},
		// Flat 10% savings heuristic.
		PotentialSavings: core.Money{Cents: totalExpenses.Cents / 10},
	}

	for _, t := range filtered {
		if t.IsExpense() && t.Amount.Cents > ins.LargestExpense.Amount.Cents {
			ins.LargestExpense = LargestExpense{
				Amount:   t.Amount,
				Category: core.CategoryName(t.Category),
				Title:    t.Title,
			}
		}
	}

	ins.BudgetRemaining = core.Money{Cents: MonthlyBudgetCents - totalExpenses.Cents}
	ins.IsOverBudget = ins.BudgetRemaining.Cents < 0
	if ins.IsOverBudget {
		ins.BudgetStatus = BudgetStatusOver
	} else {
		ins.BudgetStatus = BudgetStatusOnTrack
	}
	return ins
}

// FastestGrowing compares per-category expense totals of the current set
// against a previous period. Growth is (current-previous)/previous as a
// percentage; a category with spending now but none before counts as 100%
// growth. With no current spending the result is the "None" zero state.
func FastestGrowing(current, previous []core.Transaction) CategoryGrowth {
	curTotals := expenseTotalsByCategory(current)
	prevTotals := expenseTotalsByCategory(previous)
	if len(curTotals) == 0 {
		return CategoryGrowth{Name: "None"}
	}

	best := CategoryGrowth{Name: "None"}
	found := false
	for id, cur := range curTotals {
		prev := prevTotals[id]
		var growth float64
		if prev == 0 {
			growth = 100
		} else {
			growth = float64(cur-prev) / float64(prev) * 100
		}
		if !found || growth > best.GrowthPct ||
			(growth == best.GrowthPct && core.CategoryName(id) < best.Name) {
			best = CategoryGrowth{Name: core.CategoryName(id), GrowthPct: growth}
			found = true
		}
	}
	return best
}

func expenseTotalsByCategory(txs []core.Transaction) map[core.CategoryID]int64 {
	totals := make(map[core.CategoryID]int64)
	for _, t := range txs {
		if t.IsExpense() {
			totals[t.Category] += t.Amount.Cents
		}
	}
	return totals
}
