package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// INR renders an amount as an en-IN currency string: rupee sign, lakh/crore
// digit grouping, up to 2 fraction digits with trailing zeros dropped.
// Example: 1234567.5 -> "₹12,34,567.5"
func INR(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	s := amount.Round(2).String()
	intPart, fracPart, _ := strings.Cut(s, ".")

	out := "₹" + groupIndian(intPart)
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		return "-" + out
	}
	return out
}

// INRString formats a raw numeric string. Malformed or empty input renders
// the zero amount rather than failing.
func INRString(raw string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "₹0"
	}
	return INR(d)
}

// groupIndian inserts commas en-IN style: last 3 digits, then groups of 2.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
