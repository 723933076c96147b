package format

import (
	"testing"

	"fintrack/internal/core"
)

func TestCompact(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1_500_00, "1.5K"},
		{250_000_00, "2.5L"},
		{999_00, "999"},
		{999_50, "999.50"},
		{1_000_00, "1.0K"},
		{100_000_00, "1.0L"},
		{0, "0"},
		{-250_000_00, "-2.5L"},
	}
	for _, tc := range cases {
		if got := Compact(core.Money{Cents: tc.cents}); got != tc.want {
			t.Fatalf("Compact(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{123_456_78, "₹1,23,456.78"},
		{999_00, "₹999.00"},
		{1_000_00, "₹1,000.00"},
		{0, "₹0.00"},
		{-45_00, "-₹45.00"},
		{1234567800, "₹1,23,45,678.00"},
	}
	for _, tc := range cases {
		if got := Currency(core.Money{Cents: tc.cents}); got != tc.want {
			t.Fatalf("Currency(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date(core.NewDate(2024, 3, 5)); got != "05 Mar 2024" {
		t.Fatalf("got %q", got)
	}
	if got := Date(core.Date{}); got != "" {
		t.Fatalf("zero date should render empty, got %q", got)
	}
}
