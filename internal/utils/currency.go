package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount in Brazilian currency format: R$ 1.234,56.
// Thousands are separated with dots and the decimal separator is a comma.
func FormatBRL(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, decPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return "R$ " + sign + b.String() + "," + decPart
}

// DateLayout is the date display format the SPA expects: dd/mm/yyyy.
const DateLayout = "02/01/2006"

// DateTimeLayout is the settled-at display format: dd/mm/yyyy hh:mm.
const DateTimeLayout = "02/01/2006 15:04"
