// Package locale renders money, counts and percentages the way the proposal
// audience reads them.
package locale

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// nbsp separates the currency symbol from the amount, as browsers do for pt-BR.
const nbsp = "\u00a0"

// Formatter formats numbers for a single locale. It is safe for concurrent use.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter returns a formatter for tag that prints currency with symbol.
func NewFormatter(tag language.Tag, symbol string) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// BRL returns the Brazilian Portuguese formatter used across the proposal.
func BRL() *Formatter {
	return NewFormatter(language.BrazilianPortuguese, "R$")
}

// Currency rounds v to whole units, e.g. "R$ 225.000". Amounts beyond the
// int64 range are printed in full rather than wrapped.
func (f *Formatter) Currency(v float64) string {
	rounded := math.Round(v)
	if rounded < 0 {
		return "-" + f.symbol + nbsp + f.whole(-rounded)
	}
	return f.symbol + nbsp + f.whole(rounded)
}

func (f *Formatter) whole(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// SignedCurrency prefixes non-negative amounts with "+".
func (f *Formatter) SignedCurrency(v float64) string {
	if math.Round(v) >= 0 {
		return "+" + f.Currency(v)
	}
	return f.Currency(v)
}

// Integer groups thousands, e.g. "15.000".
func (f *Formatter) Integer(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Percent prints one decimal unless v is whole, e.g. "22,5%" or "100%".
func (f *Formatter) Percent(v float64) string {
	rounded := math.Round(v*10) / 10
	if rounded == math.Trunc(rounded) {
		if rounded < 0 {
			return "-" + f.whole(-rounded) + "%"
		}
		return f.whole(rounded) + "%"
	}
	return f.printer.Sprintf("%.1f%%", rounded)
}
