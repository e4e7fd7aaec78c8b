// Package dto defines the wire representations for the market endpoints.
package dto

import (
	"time"

	"trading_backend/internal/feature/market/usecase"
)

// MarketResponse is the payload for GET /market.
type MarketResponse struct {
	CurrentTime       string `json:"currentTime"`
	IsOpen            bool   `json:"isOpen"`
	SecondsUntilOpen  int64  `json:"secondsUntilOpen"`
	SecondsUntilClose int64  `json:"secondsUntilClose"`
}

// FromMarketInfo converts a MarketInfo into its wire representation.
func FromMarketInfo(info usecase.MarketInfo) MarketResponse {
	return MarketResponse{
		CurrentTime:       info.CurrentTime.Format(time.RFC3339),
		IsOpen:            info.IsOpen,
		SecondsUntilOpen:  int64(info.TimeUntilOpen.Seconds()),
		SecondsUntilClose: int64(info.TimeUntilClose.Seconds()),
	}
}
