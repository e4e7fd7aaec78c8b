// Package asx provides a client for the ASX share-price feed.
package asx

import (
	"os"
	"time"
)

// Config holds configuration for the share-price feed client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL of the feed (e.g. "https://quotes.example.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads the feed configuration from environment variables.
func LoadConfig() Config {
	return Config{
		APIKey:  os.Getenv("ASX_API_KEY"),
		BaseURL: os.Getenv("ASX_BASE_URL"),
		Timeout: 10 * time.Second,
	}
}
