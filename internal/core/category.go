package core

// CategoryID identifies a category in the static catalogue.
type CategoryID string

// CategoryAll is the filter sentinel meaning "no category restriction".
const CategoryAll CategoryID = "all"

// Category is static reference data: a label with a display color and an
// optional monthly budget ceiling (zero means no ceiling).
type Category struct {
	ID            CategoryID
	Name          string
	Kind          Kind
	Color         string
	MonthlyBudget Money
}

// Catalogue is hard-coded and not user-editable.
var catalogue = []Category{
	{ID: "food", Name: "Food & Dining", Kind: KindExpense, Color: "#FF6B6B", MonthlyBudget: Money{Cents: 12_000_00}},
	{ID: "utilities", Name: "Utilities", Kind: KindExpense, Color: "#4ECDC4", MonthlyBudget: Money{Cents: 8_000_00}},
	{ID: "entertainment", Name: "Entertainment", Kind: KindExpense, Color: "#45B7D1"},
	{ID: "transport", Name: "Transportation", Kind: KindExpense, Color: "#FFA07A"},
	{ID: "shopping", Name: "Shopping", Kind: KindExpense, Color: "#98D8C8"},
	{ID: "healthcare", Name: "Healthcare", Kind: KindExpense, Color: "#F7DC6F"},
	{ID: "education", Name: "Education", Kind: KindExpense, Color: "#BB8FCE"},
	{ID: "salary", Name: "Salary", Kind: KindIncome, Color: "#20C997"},
	{ID: "other", Name: "Other", Kind: KindExpense, Color: "#CCCCCC"},
}

// Categories returns a copy of the full catalogue.
func Categories() []Category {
	out := make([]Category, len(catalogue))
	copy(out, catalogue)
	return out
}

// ExpenseCategories returns the expense-kind subset of the catalogue.
func ExpenseCategories() []Category {
	var out []Category
	for _, c := range catalogue {
		if c.Kind == KindExpense {
			out = append(out, c)
		}
	}
	return out
}

// CategoryByID looks up a catalogue entry.
func CategoryByID(id CategoryID) (Category, bool) {
	for _, c := range catalogue {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName resolves a display name, falling back to "Unknown" for ids
// outside the catalogue.
func CategoryName(id CategoryID) string {
	if c, ok := CategoryByID(id); ok {
		return c.Name
	}
	return "Unknown"
}
