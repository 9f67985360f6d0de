package costing

import (
	"github.com/shopspring/decimal"
)

// FormatUSD8 renders a monetary amount as a fixed 8-decimal-place string with
// half-up rounding. This is the only point where a computed cost leaves exact
// decimal form.
func FormatUSD8(amount decimal.Decimal) string {
	return amount.StringFixed(8)
}

// unitCost computes (quantity / unitTokens) * price in exact decimal
// arithmetic, returning both the per-token price and the category cost.
func unitCost(quantity, unitTokens int64, price decimal.Decimal) (unitPrice, cost decimal.Decimal) {
	unit := decimal.NewFromInt(unitTokens)
	unitPrice = price.Div(unit)
	cost = decimal.NewFromInt(quantity).Div(unit).Mul(price)
	return unitPrice, cost
}
