// Package dto defines the wire format of the share-price feed.
package dto

import "github.com/shopspring/decimal"

// QuoteItem is one quoted symbol as returned by the feed. Prices come back
// as JSON numbers; decimal keeps them exact.
type QuoteItem struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Ask           decimal.Decimal `json:"askPrice"`
	Bid           decimal.Decimal `json:"bidPrice"`
	Last          decimal.Decimal `json:"lastPrice"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

// QuotesResponse is the envelope of the multi-symbol endpoint.
type QuotesResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Quotes  []QuoteItem `json:"quotes"`
}
