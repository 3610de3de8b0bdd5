// Package format renders money and percentages for reports without touching
// process-wide locale state.
package format

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Locale describes how numbers are written.
//
// Pattern follows humanize.FormatFloat: the first non-digit rune is the
// thousands separator, the second is the decimal separator, and the digits
// after it set the precision ("#.###,##" → 1.234,56).
type Locale struct {
	Symbol  string
	Pattern string
}

// BRL is Brazilian Portuguese currency formatting.
var BRL = Locale{Symbol: "R$", Pattern: "#.###,##"}

// Number formats d with the locale separators, rounded to the pattern precision.
func (l Locale) Number(d decimal.Decimal) string {
	return humanize.FormatFloat(l.Pattern, d.Round(2).InexactFloat64())
}

// Money formats d as currency, e.g. "R$ 1.234,56".
func (l Locale) Money(d decimal.Decimal) string {
	if l.Symbol == "" {
		return l.Number(d)
	}
	return l.Symbol + " " + l.Number(d)
}

// Percent formats d as a percentage, e.g. "60,00%".
func (l Locale) Percent(d decimal.Decimal) string {
	return l.Number(d) + "%"
}
