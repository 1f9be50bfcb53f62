package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount in Brazilian currency notation, for example
// "R$ 1.234,56". Thousands use "." and the decimal separator is ",".
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "R$ " + sign + b.String() + "," + fracPart
}
