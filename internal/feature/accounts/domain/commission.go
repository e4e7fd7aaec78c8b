package domain

import (
	"github.com/shopspring/decimal"
)

// CommissionRange is a single [Min, Max] band of a commission table.
// For fixed tables Value is a flat dollar amount; for percentage tables it
// is a rate applied to the trade notional.
type CommissionRange struct {
	// Min is the lower bound of the range, inclusive.
	Min int64 `json:"min"`

	// Max is the upper bound of the range, inclusive.
	Max int64 `json:"max"`

	// Value is the commission value for the range.
	Value decimal.Decimal `json:"value"`
}

// Commissions is the complete commission table for one order side.
// It is supplied per call and treated as an immutable value.
type Commissions struct {
	// Fixed holds the flat-fee ranges.
	Fixed []CommissionRange `json:"fixed"`

	// Percentage holds the percentage-fee ranges.
	Percentage []CommissionRange `json:"percentage"`
}

// LookupCommission returns the commission value of the first range that
// contains amount. Ranges are expected to be non-overlapping and
// contiguous, but this is not enforced: the first match wins.
//
// If no range matches and amount exceeds the largest upper bound, the
// order is rejected with the permitted maximum in the message. Any other
// miss is a configuration gap and yields a generic rejection.
func LookupCommission(ranges []CommissionRange, amount decimal.Decimal) (decimal.Decimal, error) {
	var max int64
	for _, r := range ranges {
		lower := decimal.NewFromInt(r.Min)
		upper := decimal.NewFromInt(r.Max)
		if amount.Cmp(lower) >= 0 && amount.Cmp(upper) <= 0 {
			return r.Value, nil
		}
		if r.Max > max {
			max = r.Max
		}
	}

	if amount.Cmp(decimal.NewFromInt(max)) > 0 {
		return decimal.Zero, NewInvalidTrade("The order amount exceeds the maximum permitted amount of $%d.", max)
	}
	return decimal.Zero, NewInvalidTrade("No commission range found for the order amount.")
}
