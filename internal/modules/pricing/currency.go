package pricing

import (
	"fmt"
	"math"
	"strings"

	"tourplan/internal/types"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"AUD": "A$",
	"CAD": "C$",
	"SGD": "S$",
	"HKD": "HK$",
	"CHF": "CHF ",
	"AED": "AED ",
	"THB": "฿",
	"TRY": "₺",
}

// CurrencySymbol returns the display symbol for an ISO code, preferring a symbol supplied
// by the catalog.
func CurrencySymbol(code, provided string) string {
	if provided != "" {
		return provided
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	if code == "" {
		return "$"
	}
	return code + " "
}

// FormatPrice renders m in whole units, e.g. "€56".
func FormatPrice(m types.Money, symbol string) string {
	return fmt.Sprintf("%s%d", symbol, int64(math.Round(m.Major())))
}
