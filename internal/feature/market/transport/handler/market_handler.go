// Package handler exposes the market-state endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trading_backend/internal/feature/market/transport/http/dto"
	"trading_backend/internal/feature/market/usecase"
)

// MarketUsecase is the market surface consumed by this handler.
type MarketUsecase interface {
	GetMarket() usecase.MarketInfo
}

// MarketHandler handles market-state requests.
type MarketHandler struct {
	uc MarketUsecase
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// Get handles GET /market.
func (h *MarketHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromMarketInfo(h.uc.GetMarket()))
}
