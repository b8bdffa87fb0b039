package menu

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"

	"github.com/platewise/menupress/pkg/errors"
)

// Currency identifies the currency menu prices are displayed in.
type Currency struct {
	Code   string `json:"code" bson:"code"`
	Symbol string `json:"symbol" bson:"symbol"`
}

// symbols maps ISO 4217 codes to the display symbols used on menus.
// Codes not listed here fall back to the code itself, which is how most
// print menus render less common currencies anyway.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"KRW": "₩",
	"INR": "₹",
	"CHF": "CHF",
	"CAD": "$",
	"AUD": "$",
	"NZD": "$",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"PLN": "zł",
	"CZK": "Kč",
	"TRY": "₺",
	"BRL": "R$",
	"MXN": "$",
	"ZAR": "R",
	"THB": "฿",
	"VND": "₫",
	"ILS": "₪",
	"AED": "د.إ",
}

// DefaultCurrency is used when the payload does not declare a currency.
var DefaultCurrency = Currency{Code: "USD", Symbol: "$"}

// ResolveCurrency validates an ISO 4217 code and resolves its display symbol.
// An empty code resolves to DefaultCurrency; an explicit symbol from the
// caller always wins over the built-in table.
func ResolveCurrency(code, symbol string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		if symbol != "" {
			return Currency{Code: DefaultCurrency.Code, Symbol: symbol}, nil
		}
		return DefaultCurrency, nil
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, errors.NewField(errors.ErrCodeInvalidCurrency, "currency",
			"unknown currency code %q", code)
	}
	canonical := unit.String()

	if symbol == "" {
		var ok bool
		if symbol, ok = symbols[canonical]; !ok {
			symbol = canonical
		}
	}
	return Currency{Code: canonical, Symbol: symbol}, nil
}

// FormatPrice renders a price for display, e.g. "$12.50".
// Currencies whose symbol is the code itself get a separating space.
func (c Currency) FormatPrice(price float64) string {
	if c.Symbol == c.Code && c.Symbol != "" {
		return fmt.Sprintf("%s %.2f", c.Symbol, price)
	}
	return fmt.Sprintf("%s%.2f", c.Symbol, price)
}
