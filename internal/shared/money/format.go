// Package money formata valores em dong (VND) no padrão vi-VN.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format devolve o valor com separador de milhar vi-VN e o símbolo ₫,
// ex.: 500000 -> "500.000 ₫". VND não tem casas decimais.
func Format(amount int64) string {
	p := message.NewPrinter(language.Vietnamese)
	return p.Sprintf("%v ₫", number.Decimal(amount))
}
