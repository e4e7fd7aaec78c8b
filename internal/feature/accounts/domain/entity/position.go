package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position is a share holding owned exclusively by one account.
// Quantity is never negative; a position that reaches zero is removed
// from its account together with its average price.
type Position struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Symbol       string
	Quantity     int64
	AveragePrice decimal.Decimal
}

// buy increases the position and re-averages the cost basis. Brokerage
// fees are folded into the average price so that profit calculations are
// net of costs.
func (p *Position) buy(quantity int64, price, fees decimal.Decimal) {
	held := decimal.NewFromInt(p.Quantity)
	added := decimal.NewFromInt(quantity)

	cost := held.Mul(p.AveragePrice).Add(added.Mul(price)).Add(fees)
	p.AveragePrice = cost.Div(held.Add(added))
	p.Quantity += quantity
}

// sell decreases the position. The average price is unchanged by a sell.
func (p *Position) sell(quantity int64) {
	p.Quantity -= quantity
}
