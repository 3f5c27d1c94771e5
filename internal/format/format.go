// Package format converts monetary and date values to their es-ES display
// form. Formatting is the only place amounts are rounded; all arithmetic
// upstream of it stays in exact decimal.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is rendered for absent values.
const Placeholder = "–"

// Number renders d with dot thousands grouping, comma decimal separator and
// exactly two fraction digits: 1249.95 -> "1.249,95".
func Number(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	out := group(intPart) + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// NumberPtr renders d, or the placeholder when d is nil.
func NumberPtr(d *decimal.Decimal) string {
	if d == nil {
		return Placeholder
	}
	return Number(*d)
}

// Integer renders n with dot thousands grouping and no fraction digits.
func Integer(n int64) string {
	d := decimal.NewFromInt(n)
	fixed := d.Abs().String()
	out := group(fixed)
	if n < 0 {
		out = "-" + out
	}
	return out
}

// Date converts an ISO date (YYYY-MM-DD) to DD-MM-YYYY. Anything that does
// not look like an ISO date is returned unchanged.
func Date(iso string) string {
	parts := strings.SplitN(iso, "-", 3)
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// DatePtr renders the date, or an empty string for a nil bound.
func DatePtr(iso *string) string {
	if iso == nil {
		return ""
	}
	return Date(*iso)
}

// group inserts a dot every three digits from the right.
func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
