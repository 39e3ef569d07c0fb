package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Amounts are int64 in the smallest currency unit. The station sells in IDR,
// which has no minor unit, so the stored value is whole rupiah.

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount for the fixed id-ID locale, e.g. 46000 -> "Rp46.000".
func FormatIDR(amount int64) string {
	return idPrinter.Sprintf("Rp%v", number.Decimal(amount))
}
