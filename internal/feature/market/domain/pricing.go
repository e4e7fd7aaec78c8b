package domain

import "github.com/shopspring/decimal"

var (
	tenCents   = decimal.NewFromFloat(0.10)
	twoDollars = decimal.NewFromInt(2)

	stepTenth = decimal.NewFromFloat(0.001)
	stepHalf  = decimal.NewFromFloat(0.005)
	stepCent  = decimal.NewFromFloat(0.01)
)

// NumberOfDecimals returns how many decimal places prices at this level are
// quoted with on the ASX.
func NumberOfDecimals(price decimal.Decimal) int {
	if price.LessThanOrEqual(twoDollars) {
		return 3
	}
	return 2
}

// MinimumStepSize returns the minimum price increment for bid and ask prices
// at this price level.
func MinimumStepSize(price decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(tenCents) {
		return stepTenth
	}
	if price.LessThanOrEqual(twoDollars) {
		return stepHalf
	}
	return stepCent
}
