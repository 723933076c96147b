package core

import (
	"math"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"150", 15000, true},
		{"0", 0, false},
		{"", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q) expected error", tc.in)
		}
	}
}

func TestFromRupees(t *testing.T) {
	if got := FromRupees(123.455); got.Cents != 12346 {
		t.Fatalf("got %d", got.Cents)
	}
	if got := FromRupees(math.NaN()); got.Cents != 0 {
		t.Fatalf("NaN should map to zero, got %d", got.Cents)
	}
	if got := FromRupees(math.Inf(1)); got.Cents != 0 {
		t.Fatalf("Inf should map to zero, got %d", got.Cents)
	}
	if got := (Money{Cents: 12346}).Rupees(); got != 123.46 {
		t.Fatalf("got %v", got)
	}
}
