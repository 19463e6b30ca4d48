// Package money parses and formats rupee display prices.
//
// The commerce platform delivers prices both as numbers and as pre-formatted
// display strings ("₹1,499.00"). Cart lines carry the display string, so
// totals are computed by parsing it back into an exact decimal.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse extracts the numeric value from a display price string.
// Currency symbols, grouping separators, and whitespace are ignored.
// An empty or non-numeric string parses as zero.
func Parse(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format renders a value as a rupee display price with paise,
// using Indian digit grouping: ₹1,23,456.50.
func Format(d decimal.Decimal) string {
	return "₹" + group(d.StringFixed(2))
}

// FormatWhole renders a value without paise, for slider labels and
// range summaries: ₹1,23,456.
func FormatWhole(d decimal.Decimal) string {
	return "₹" + group(d.StringFixed(0))
}

// group inserts Indian-style grouping separators into a plain decimal
// string: the last three integer digits form one group, every two
// digits before that form another.
func group(s string) string {
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	if len(intPart) <= 3 {
		if neg {
			intPart = "-" + intPart
		}
		return intPart + fracPart
	}

	head := intPart[:len(intPart)-3]
	tail := intPart[len(intPart)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)

	out := strings.Join(groups, ",")
	if neg {
		out = "-" + out
	}
	return out + fracPart
}
