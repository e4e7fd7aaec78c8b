// Package domain defines domain-level errors for the watchlists feature.
package domain

import "errors"

// ErrWatchlistNotFound indicates that no watchlist was found for the given
// identifier, or that the watchlist does not belong to the requesting user.
var ErrWatchlistNotFound = errors.New("watchlist not found")
