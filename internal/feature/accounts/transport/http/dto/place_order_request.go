package dto

// Order sides accepted by the order endpoint.
const (
	OrderSideBuy  = "buy"
	OrderSideSell = "sell"
)

// PlaceOrderRequest is the payload for placing a buy or sell order.
type PlaceOrderRequest struct {
	// Side is either "buy" or "sell".
	Side string `json:"side" binding:"required,oneof=buy sell"`

	// Symbol is the share symbol to trade.
	Symbol string `json:"symbol" binding:"required,min=3,max=16"`

	// Quantity is the number of shares to trade.
	Quantity int64 `json:"quantity" binding:"required,min=1,max=100000000"`

	// Nonce is a strictly increasing number used to detect duplicate orders.
	Nonce int64 `json:"nonce" binding:"required,min=1"`
}
