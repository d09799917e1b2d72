package render

import "strings"

var currencyLabels = map[string]string{
	"USD": "US Dollars ($)",
	"EUR": "Euros (€)",
	"GBP": "British Pounds (£)",
	"CAD": "Canadian Dollars (C$)",
	"AUD": "Australian Dollars (A$)",
}

// CurrencyLabel returns the display label for an ISO currency code. Empty
// codes fall back to USD; unknown codes render as "<code> (<code>)".
func CurrencyLabel(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		code = "USD"
	}
	if label, ok := currencyLabels[code]; ok {
		return label
	}
	return code + " (" + code + ")"
}
