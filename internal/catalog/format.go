package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a whole-real amount the way the site displays prices,
// e.g. 249 -> "R$ 249" and 1250 -> "R$ 1.250".
func FormatBRL(value int) string {
	return brPrinter.Sprintf("R$ %v", number.Decimal(value))
}
