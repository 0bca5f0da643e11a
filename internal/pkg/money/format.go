// Package money formats amounts for display using locale digit grouping.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts like the storefront UI shows them, e.g. ₹1,23,456.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a formatter for the given BCP 47 locale and currency symbol.
// Unknown locales fall back to English grouping.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Amount formats d with grouping and at most two fraction digits. Only the
// whole part goes through the locale printer, as an int64, so no digits are
// lost to float conversion. Whole parts beyond int64 are not supported.
func (f *Formatter) Amount(d decimal.Decimal) string {
	d = d.Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	out := sign + f.printer.Sprint(number.Decimal(whole.IntPart()))

	// "0.50" -> ".5"
	if frac := d.Sub(whole); !frac.IsZero() {
		out += strings.TrimRight(frac.StringFixed(2), "0")[1:]
	}
	return out
}

// Price formats d prefixed with the currency symbol.
func (f *Formatter) Price(d decimal.Decimal) string {
	return f.symbol + f.Amount(d)
}
