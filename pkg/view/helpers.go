package view

import "github.com/shopspring/decimal"

const DefaultCurrency = "INR"

// Money renders the amount as entered, e.g. 2499 -> "₹2499".
func Money(d decimal.Decimal, currency string) string {
	return currencySymbol(currency) + d.String()
}

// MoneyFixed renders two decimals, e.g. 4998 -> "₹4998.00".
func MoneyFixed(d decimal.Decimal, currency string) string {
	return currencySymbol(currency) + d.StringFixed(2)
}

func currencySymbol(code string) string {
	switch code {
	case "INR":
		return "₹"
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	default:
		return code + " "
	}
}
