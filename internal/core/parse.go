// Package core provides the shop domain model: items, sales, calendar dates
// and the lenient numeric parsing used when importing pasted inventory text.
package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseQuantity parses an integer quantity from freeform text. Everything
// except digits and a minus sign is stripped first, so "5 pcs" and " 12x"
// both parse. Absent or non-positive values are rejected.
//
// Examples:
//
//	ParseQuantity("5")      -> 5, nil
//	ParseQuantity("5 pcs")  -> 5, nil
//	ParseQuantity("0")      -> 0, ErrInvalidQuantity
//	ParseQuantity("abc")    -> 0, ErrInvalidQuantity
func ParseQuantity(s string) (int, error) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, ErrInvalidQuantity
	}
	qty, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}
	return qty, nil
}

// ParsePrice parses a positive decimal price from freeform text. Everything
// except digits, the decimal point and a minus sign is stripped first, so
// currency symbols and thousand separators survive a paste: "€1,250.50"
// parses as 1250.50.
func ParsePrice(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if !price.IsPositive() {
		return decimal.Zero, ErrInvalidPrice
	}
	return price, nil
}
