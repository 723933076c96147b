package http

import (
	"fintrack/internal/core"
)

// transactionDTO is the wire shape of a transaction on /api/transactions.
// Amounts cross the wire as rupee floats; internally everything is cents.
type transactionDTO struct {
	ID           string  `json:"id,omitempty"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	Date         string  `json:"date"`
	PaymentMode  string  `json:"paymentMode,omitempty"`
	UPIProvider  string  `json:"upiProvider,omitempty"`
	Bank         string  `json:"bank,omitempty"`
	IncomeSource string  `json:"incomeSource,omitempty"`
}

func toDTO(t core.Transaction) transactionDTO {
	d := transactionDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Amount:      t.Amount.Rupees(),
		Type:        string(t.Kind),
		Date:        t.Date.String(),
	}
	if t.Payment != nil {
		d.PaymentMode = string(t.Payment.Mode)
		d.UPIProvider = t.Payment.UPIProvider
		d.Bank = t.Payment.Bank
	}
	if t.Income != nil {
		d.IncomeSource = t.Income.Source
	}
	return d
}

func toDTOs(txs []core.Transaction) []transactionDTO {
	out := make([]transactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, toDTO(t))
	}
	return out
}

func (d transactionDTO) toDomain() (core.Transaction, error) {
	date, err := core.ParseDate(d.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    core.CategoryID(d.Category),
		Amount:      core.FromRupees(d.Amount),
		Kind:        core.Kind(d.Type),
		Date:        date,
	}
	switch t.Kind {
	case core.KindExpense:
		if d.PaymentMode != "" {
			t.Payment = &core.PaymentDetails{
				Mode:        core.PaymentMode(d.PaymentMode),
				UPIProvider: d.UPIProvider,
				Bank:        d.Bank,
			}
		}
	case core.KindIncome:
		if d.IncomeSource != "" {
			t.Income = &core.IncomeDetails{Source: d.IncomeSource}
		}
	}
	return t, nil
}
