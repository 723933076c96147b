package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

const (
	PaymentCash   PaymentMode = "Cash"
	PaymentUPI    PaymentMode = "UPI"
	PaymentCredit PaymentMode = "Credit"
)

type (
	// Kind discriminates the two transaction shapes.
	Kind string

	// PaymentMode labels how an expense was paid.
	PaymentMode string

	// Date is a calendar date; the time-of-day component is always midnight UTC.
	Date struct {
		time.Time
	}

	// PaymentDetails belongs to expense transactions only.
	// UPIProvider is required when Mode is UPI; Bank is required when
	// Mode is UPI or Credit.
	PaymentDetails struct {
		Mode        PaymentMode
		UPIProvider string
		Bank        string
	}

	// IncomeDetails belongs to income transactions only.
	IncomeDetails struct {
		Source string
	}

	// Transaction is a single recorded income or expense event.
	// Exactly one of Payment and Income may be set, matching Kind.
	Transaction struct {
		ID          string
		Title       string
		Description string
		Category    CategoryID
		Amount      Money
		Kind        Kind
		Date        Date
		Payment     *PaymentDetails
		Income      *IncomeDetails
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidKind        = errors.New("invalid transaction kind")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyTitle         = errors.New("empty title")
	ErrEmptyCategory      = errors.New("empty category")
	ErrMismatchedDetails  = errors.New("detail block does not match transaction kind")
	ErrMissingPaymentMode = errors.New("missing payment mode")
	ErrMissingUPIProvider = errors.New("missing UPI provider")
	ErrMissingBank        = errors.New("missing bank")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (k Kind) Validate() error {
	switch k {
	case KindExpense, KindIncome:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (p PaymentDetails) Validate() error {
	if p.Mode == "" {
		return ErrMissingPaymentMode
	}
	if p.Mode == PaymentUPI && strings.TrimSpace(p.UPIProvider) == "" {
		return ErrMissingUPIProvider
	}
	if (p.Mode == PaymentUPI || p.Mode == PaymentCredit) && strings.TrimSpace(p.Bank) == "" {
		return ErrMissingBank
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(string(t.Category)) == "" || t.Category == CategoryAll {
		return ErrEmptyCategory
	}

	// The two shapes must not be conflated.
	switch t.Kind {
	case KindExpense:
		if t.Income != nil {
			return ErrMismatchedDetails
		}
		if t.Payment != nil {
			return t.Payment.Validate()
		}
	case KindIncome:
		if t.Payment != nil {
			return ErrMismatchedDetails
		}
	}
	return nil
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Kind == KindExpense }

// IsIncome reports whether the transaction is an income.
func (t Transaction) IsIncome() bool { return t.Kind == KindIncome }
