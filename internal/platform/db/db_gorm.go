// Package db opens the application database and runs schema migrations.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountadapters "trading_backend/internal/feature/accounts/adapters"
	"trading_backend/internal/feature/auth/domain/entity"
	settingadapters "trading_backend/internal/feature/settings/adapters"
	watchlistadapters "trading_backend/internal/feature/watchlists/adapters"
)

// Config holds the database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// LoadConfigFromEnv reads the connection settings from the environment.
func LoadConfigFromEnv() Config {
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		SSLMode:  sslMode,
	}
}

// BuildDSN builds the Postgres DSN for the given configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener opens a gorm connection from a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry keeps trying the opener until it succeeds or the timeout
// elapses. Containerized databases often accept connections a few seconds
// after the application starts.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// gormConfig translates driver errors (duplicate key and friends) into
// gorm's portable error values.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// OpenDB connects to Postgres using the environment configuration. When no
// DB_HOST is set it falls back to a local SQLite file, which keeps
// development setups dependency-free.
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	var (
		db  *gorm.DB
		err error
	)
	if cfg.Host == "" {
		path := os.Getenv("DB_SQLITE_PATH")
		if path == "" {
			path = "trading.db"
		}
		db, err = gorm.Open(sqlite.Open(path), gormConfig())
		if err != nil {
			log.Fatalf("sqlite open failed: %v", err)
		}
	} else {
		db, err = ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), gormConfig())
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") != "false" {
		if err := db.AutoMigrate(
			&entity.User{},
			&accountadapters.AccountModel{},
			&accountadapters.PositionModel{},
			&accountadapters.TransactionModel{},
			&settingadapters.SettingModel{},
		&watchlistadapters.WatchlistModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
