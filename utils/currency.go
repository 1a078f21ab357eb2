package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount with thousands separators and two
// decimals, e.g. 1234.5 -> "1,234.50".
func FormatCurrency(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	negative := strings.HasPrefix(formatted, "-")
	if negative {
		formatted = formatted[1:]
	}

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := strings.Join(groups, ",") + "." + decimalPart
	if negative {
		out = "-" + out
	}
	return out
}
