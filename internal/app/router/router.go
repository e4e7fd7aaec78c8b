// Package router assembles the HTTP routes of the trading backend.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accounthandler "trading_backend/internal/feature/accounts/transport/handler"
	authhandler "trading_backend/internal/feature/auth/transport/handler"
	leaderboardhandler "trading_backend/internal/feature/leaderboard/transport/handler"
	markethandler "trading_backend/internal/feature/market/transport/handler"
	settingshandler "trading_backend/internal/feature/settings/transport/handler"
	watchlisthandler "trading_backend/internal/feature/watchlists/transport/handler"
	"trading_backend/internal/platform/http/handler"
	"trading_backend/internal/platform/jwt"
)

// Handlers bundles the feature handlers the router mounts.
type Handlers struct {
	Auth        *authhandler.AuthHandler
	Accounts    *accounthandler.AccountHandler
	Market      *markethandler.MarketHandler
	Leaderboard *leaderboardhandler.LeaderboardHandler
	Settings    *settingshandler.SettingsHandler
	Watchlists  *watchlisthandler.WatchlistHandler
}

// NewRouter wires all routes. Market data and authentication are public;
// everything touching an account requires a valid JWT.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)
	r.GET("/market", h.Market.Get)

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/accounts", h.Accounts.Create)
		auth.GET("/accounts", h.Accounts.List)
		auth.GET("/accounts/:id", h.Accounts.Get)
		auth.DELETE("/accounts/:id", h.Accounts.Delete)
		auth.POST("/accounts/:id/reset", h.Accounts.Reset)
		auth.POST("/accounts/:id/orders", h.Accounts.PlaceOrder)
		auth.GET("/accounts/:id/transactions", h.Accounts.ListTransactions)

		auth.GET("/leaderboard", h.Leaderboard.List)
		auth.GET("/leaderboard/me", h.Leaderboard.Me)

		auth.GET("/watchlists", h.Watchlists.List)
		auth.POST("/watchlists", h.Watchlists.Create)
		auth.GET("/watchlists/:id", h.Watchlists.Get)
		auth.PUT("/watchlists/:id", h.Watchlists.Rename)
		auth.DELETE("/watchlists/:id", h.Watchlists.Delete)
		auth.PUT("/watchlists/:id/symbols/:symbol", h.Watchlists.AddSymbol)
		auth.DELETE("/watchlists/:id/symbols/:symbol", h.Watchlists.RemoveSymbol)

		// Platform settings are writable by administrators only.
		admin := auth.Group("/settings", jwtmw.AdminRequired())
		{
			admin.GET("/accounts", h.Settings.GetDefaultAccountSettings)
			admin.PUT("/accounts", h.Settings.SaveDefaultAccountSettings)
			admin.GET("/commissions/buy", h.Settings.GetBuyCommissions)
			admin.PUT("/commissions/buy", h.Settings.SaveBuyCommissions)
			admin.GET("/commissions/sell", h.Settings.GetSellCommissions)
			admin.PUT("/commissions/sell", h.Settings.SaveSellCommissions)
		}
	}

	return r
}
