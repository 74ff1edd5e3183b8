package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// frPrinter renders numbers with French grouping and decimal separators.
var frPrinter = message.NewPrinter(language.French)

// EuroFR formats an amount as French currency: "450,00 €".
func EuroFR(amount float64) string {
	return frPrinter.Sprintf("%v €",
		number.Decimal(amount,
			number.MinFractionDigits(2),
			number.MaxFractionDigits(2)))
}
