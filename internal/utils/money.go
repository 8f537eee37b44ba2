package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySymbol = "Rp"

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount as "Rp 1.000.000". Rounding to whole rupiah happens only here.
func FormatRupiah(amount decimal.Decimal) string {
	return currencySymbol + " " + GroupThousands(amount)
}

// GroupThousands prints the whole-rupiah amount with Indonesian digit grouping.
func GroupThousands(amount decimal.Decimal) string {
	return printer.Sprintf("%d", amount.Round(0).IntPart())
}

// FormatPercent keeps one decimal place at most: "4", "12.5".
func FormatPercent(p decimal.Decimal) string {
	return p.Round(1).String() + "%"
}
