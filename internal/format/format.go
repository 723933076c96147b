// Package format renders aggregated values as locale-aware display strings
// for whatever surface consumes the analytics output. All functions are
// pure and total.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

const rupee = "₹"

// Currency formats an amount as a rupee string with Indian digit grouping
// and two decimals, e.g. "₹1,23,456.78". Negative amounts keep the sign
// before the symbol.
func Currency(m core.Money) string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%s%s.%02d", rupee, groupIndian(cents/100), cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// Compact abbreviates an amount for tight layouts:
// at least one lakh becomes "x.xL", at least one thousand "x.xK",
// anything smaller is grouped plainly ("999", "999.50").
func Compact(m core.Money) string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	var s string
	switch {
	case cents >= 100_000_00:
		s = strconv.FormatFloat(float64(cents)/100_000_00, 'f', 1, 64) + "L"
	case cents >= 1_000_00:
		s = strconv.FormatFloat(float64(cents)/1_000_00, 'f', 1, 64) + "K"
	case cents%100 == 0:
		s = groupIndian(cents / 100)
	default:
		s = fmt.Sprintf("%s.%02d", groupIndian(cents/100), cents%100)
	}
	if neg {
		return "-" + s
	}
	return s
}

// Date renders a calendar date in day/short-month form, e.g. "05 Mar 2024".
// The zero date renders as an empty string.
func Date(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02 Jan 2006")
}

// groupIndian applies Indian digit grouping to a non-negative integer:
// the last three digits form one group, every earlier pair another
// ("1234567" -> "12,34,567").
func groupIndian(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head := s[:len(s)-3]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + s[len(s)-3:]
}
