package rest

import (
	"encoding/json"
	"strings"

	"fintrack/internal/core"
)

// flexID tolerates backends that serialize identifiers as JSON numbers
// (the remote API) or strings (the legacy local store).
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// transactionDTO mirrors the wire shape of /api/transactions.
type transactionDTO struct {
	ID           flexID  `json:"id,omitempty"`
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

func fromDomain(t core.Transaction) transactionDTO {
	d := transactionDTO{
		ID:          flexID(t.ID),
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

func (d transactionDTO) toDomain() (core.Transaction, error) {
	date, err := core.ParseDate(d.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		ID:          string(d.ID),
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
