package ui

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// formatAmount renders a currency amount with thousands separators.
func formatAmount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

// formatTarget renders a target amount, or a dash when none is set.
func formatTarget(d decimal.Decimal) string {
	if d.IsZero() {
		return "—"
	}
	return formatAmount(d)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "not set"
	}
	return t.Format(dateLayout)
}

// formatProgress renders a 0..1 ratio as a whole percentage.
func formatProgress(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).Round(0).String() + "%"
}
