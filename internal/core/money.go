package core

import "github.com/shopspring/decimal"

// FormatAmount renders a monetary float the way it should appear in
// documents and prompts: shortest exact decimal form, no exponent,
// no trailing zeros ("670.5", "700", "20.5").
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}
