// Package format renders projection figures for German-speaking users:
// euro amounts without fraction digits and percentages with a decimal comma.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

// Printer formats for a single locale. The zero value is not usable; use New or German.
type Printer struct {
	p *message.Printer
}

// New returns a printer for tag.
func New(tag language.Tag) *Printer {
	return &Printer{p: message.NewPrinter(tag)}
}

// German returns the de-DE printer used by every presentation surface.
func German() *Printer {
	return New(language.German)
}

// Currency formats an amount as whole euros, e.g. "250.000 €".
func (f *Printer) Currency(amount decimal.Decimal) string {
	return f.p.Sprintf("%d €", amount.Round(0).IntPart())
}

// Number formats an amount as a grouped whole number, e.g. "1.250".
func (f *Printer) Number(amount decimal.Decimal) string {
	return f.p.Sprintf("%d", amount.Round(0).IntPart())
}

// Percent formats a fraction as a percentage, e.g. 0.035 with one digit as "3,5 %".
func (f *Printer) Percent(fraction decimal.Decimal, digits int) string {
	if digits < 0 {
		digits = 0
	}
	value := fraction.Mul(hundred).Round(int32(digits)).InexactFloat64()
	return f.p.Sprintf(fmt.Sprintf("%%.%df %%%%", digits), value)
}

// CalendarYear maps a projection year offset to a calendar year for chart axes.
func CalendarYear(base, offset int) int {
	return base + offset
}

var german = German()

// Currency formats amount with the de-DE printer.
func Currency(amount decimal.Decimal) string {
	return german.Currency(amount)
}

// Percent formats fraction with the de-DE printer.
func Percent(fraction decimal.Decimal, digits int) string {
	return german.Percent(fraction, digits)
}
