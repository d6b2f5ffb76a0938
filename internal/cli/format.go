// Package cli implements the sipcalc command line tool.
package cli

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders v with two decimals and comma thousands separators.
// e.g., 1161695.3817 -> "1,161,695.38", -0.5 -> "-0.50"
func FormatAmount(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	return sign + groupThousands(intPart) + "." + frac
}

// FormatPercent formats an annual percentage such as 12 or 7.5.
func FormatPercent(p float64) string {
	return decimal.NewFromFloat(p).String() + "%"
}

// FormatYears formats a duration in years, e.g. 1 -> "1 year", 2.5 -> "2.5 years".
func FormatYears(y float64) string {
	s := decimal.NewFromFloat(y).String()
	if s == "1" {
		return "1 year"
	}
	return s + " years"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	remainder := len(digits) % 3
	if remainder > 0 {
		b.WriteString(digits[:remainder])
	}
	for i := remainder; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
