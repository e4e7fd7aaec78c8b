// Package dto defines the request and response payloads of the watchlists API.
package dto

// CreateWatchlistRequest is the payload for creating a new watchlist.
type CreateWatchlistRequest struct {
	// Name is the display name of the watchlist.
	Name string `json:"name" binding:"required,min=3,max=100"`

	// Symbols are the initial symbols on the watchlist, if any.
	Symbols []string `json:"symbols" binding:"omitempty,dive,min=2,max=16"`
}

// CreateWatchlistResponse returns the identifier of the new watchlist.
type CreateWatchlistResponse struct {
	ID string `json:"id"`
}

// RenameWatchlistRequest is the payload for renaming a watchlist.
type RenameWatchlistRequest struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
}
