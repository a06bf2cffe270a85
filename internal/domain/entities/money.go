package entities

import "github.com/shopspring/decimal"

// DefaultCurrency is used when neither the service nor the caller names one.
const DefaultCurrency = "USD"

var hundred = decimal.NewFromInt(100)

// Totals are the derived monetary fields of an invoice.
type Totals struct {
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// RecomputeTotals derives tax and total from subtotal and a percent tax rate,
// rounding half away from zero to two places. Pure and idempotent.
func RecomputeTotals(subtotal, taxRate decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate).Div(hundred).Round(2)
	return Totals{
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax).Round(2),
	}
}

// RoundMoney rounds an amount to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
