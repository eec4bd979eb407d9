package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyEpsilon is the largest discrepancy tolerated between two amounts
// that should be equal.
var MoneyEpsilon = decimal.New(1, -2)

// Round2 rounds a float amount to cents, half away from zero.
func Round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// WithinEpsilon reports whether |a - b| <= MoneyEpsilon.
func WithinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(MoneyEpsilon)
}

// FormatCurrency renders an amount with thousands separators and two
// decimals, e.g. 12345.5 -> "12,345.50".
func FormatCurrency(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	return fmt.Sprintf("%s%s.%s", sign, strings.Join(result, ","), decimalPart)
}
