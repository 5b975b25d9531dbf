package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"TRY": "₺",
}

// Formatter renders minor-unit amounts as localized currency strings for a
// fixed locale and currency.
type Formatter struct {
	printer  *message.Printer
	currency string
	symbol   string
	spaced   bool
}

// NewFormatter builds a Formatter for a BCP 47 locale (e.g. "pt-BR") and an
// ISO 4217 currency code (e.g. "BRL").
func NewFormatter(locale, currency string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	code := strings.ToUpper(strings.TrimSpace(currency))
	if len(code) != 3 {
		return nil, fmt.Errorf("invalid currency %q", currency)
	}

	symbol, ok := symbols[code]
	if !ok {
		symbol = code
	}

	base, _ := tag.Base()

	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: code,
		symbol:   symbol,
		// English places the symbol directly before the amount; the other
		// supported locales separate it with a non-breaking space.
		spaced: base.String() != "en" || symbol == code,
	}, nil
}

// Currency returns the ISO code the formatter renders.
func (f *Formatter) Currency() string {
	return f.currency
}

// Format renders cents/100 with exactly two fraction digits.
func (f *Formatter) Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	amount := f.printer.Sprint(number.Decimal(float64(cents)/100, number.Scale(2)))
	if f.spaced {
		return sign + f.symbol + "\u00a0" + amount
	}
	return sign + f.symbol + amount
}
