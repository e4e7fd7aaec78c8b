package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"trading_backend/internal/app/router"
	accountadapters "trading_backend/internal/feature/accounts/adapters"
	accounthandler "trading_backend/internal/feature/accounts/transport/handler"
	accountusecase "trading_backend/internal/feature/accounts/usecase"
	authadapters "trading_backend/internal/feature/auth/adapters"
	authhandler "trading_backend/internal/feature/auth/transport/handler"
	authusecase "trading_backend/internal/feature/auth/usecase"
	leaderboardadapters "trading_backend/internal/feature/leaderboard/adapters"
	leaderboardhandler "trading_backend/internal/feature/leaderboard/transport/handler"
	leaderboardusecase "trading_backend/internal/feature/leaderboard/usecase"
	marketdomain "trading_backend/internal/feature/market/domain"
	markethandler "trading_backend/internal/feature/market/transport/handler"
	marketusecase "trading_backend/internal/feature/market/usecase"
	settingadapters "trading_backend/internal/feature/settings/adapters"
	settingshandler "trading_backend/internal/feature/settings/transport/handler"
	settingsusecase "trading_backend/internal/feature/settings/usecase"
	watchlistadapters "trading_backend/internal/feature/watchlists/adapters"
	watchlisthandler "trading_backend/internal/feature/watchlists/transport/handler"
	watchlistusecase "trading_backend/internal/feature/watchlists/usecase"
	"trading_backend/internal/platform/cache"
	platformdb "trading_backend/internal/platform/db"
	"trading_backend/internal/platform/externalapi/asx"
	platformhttp "trading_backend/internal/platform/http"
	"trading_backend/internal/platform/jwt"
	platformredis "trading_backend/internal/platform/redis"
	"trading_backend/internal/shared/ratelimiter"
)

func main() {
	db := platformdb.OpenDB()

	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repositories
	userRepo := authadapters.NewUserRepository(db)
	accountRepo := accountadapters.NewAccountRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)
	settingsRepo := cache.NewCachingSettingsRepository(rdb, 5*time.Minute, settingadapters.NewSettingsRepository(db), "settings")

	// Quote feed
	quoteCfg := asx.LoadConfig()
	quoteLimiter := ratelimiter.NewRateLimiter(60, time.Minute)
	quotes := asx.NewQuoteClient(quoteCfg, platformhttp.NewHTTPClient(quoteCfg.Timeout), quoteLimiter)

	// Usecases
	settingsUC := settingsusecase.NewSettingsUsecase(settingsRepo)
	if err := settingsUC.SeedDefaults(context.Background()); err != nil {
		log.Fatalf("failed to seed settings: %v", err)
	}

	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	accountUC := accountusecase.NewAccountUsecase(accountRepo, quotes, settingsUC)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo, quotes)

	calendar, err := marketdomain.NewTradingCalendar()
	if err != nil {
		log.Fatalf("failed to load trading calendar: %v", err)
	}
	marketUC := marketusecase.NewMarketUsecase(calendar)

	directory := leaderboardadapters.NewDirectory(userRepo, accountRepo)
	valuer := leaderboardadapters.NewValuer(accountRepo, accountUC)
	leaderboardUC := leaderboardusecase.NewLeaderboardUsecase(directory, valuer, settingsUC)

	// Router
	r := router.NewRouter(router.Handlers{
		Auth:        authhandler.NewAuthHandler(authUC),
		Accounts:    accounthandler.NewAccountHandler(accountUC),
		Market:      markethandler.NewMarketHandler(marketUC),
		Leaderboard: leaderboardhandler.NewLeaderboardHandler(leaderboardUC),
		Settings:    settingshandler.NewSettingsHandler(settingsUC),
		Watchlists:  watchlisthandler.NewWatchlistHandler(watchlistUC),
	})

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
