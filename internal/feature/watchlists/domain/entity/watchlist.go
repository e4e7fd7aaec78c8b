// Package entity defines the watchlist: a named, ordered list of share
// symbols a user wants to keep an eye on.
package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Watchlist is a user-owned list of share symbols. Symbols keep their
// insertion order and appear at most once.
type Watchlist struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Name    string
	Symbols []string
}

// CreateNew creates a watchlist with the given initial symbols. Duplicate
// initial symbols are collapsed, keeping the first occurrence.
func CreateNew(userID uuid.UUID, name string, symbols []string) *Watchlist {
	w := &Watchlist{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
	for _, symbol := range symbols {
		w.AddSymbol(symbol)
	}
	return w
}

// Rehydrate reconstructs a watchlist from persisted state.
func Rehydrate(id, userID uuid.UUID, name string, symbols []string) *Watchlist {
	return &Watchlist{
		ID:      id,
		UserID:  userID,
		Name:    name,
		Symbols: symbols,
	}
}

// Rename changes the display name of the watchlist.
func (w *Watchlist) Rename(name string) {
	w.Name = name
}

// AddSymbol appends a symbol to the watchlist. Adding a symbol that is
// already present is a no-op.
func (w *Watchlist) AddSymbol(symbol string) {
	if slices.Contains(w.Symbols, symbol) {
		return
	}
	w.Symbols = append(w.Symbols, symbol)
}

// RemoveSymbol removes a symbol from the watchlist. Removing a symbol
// that is not present is a no-op.
func (w *Watchlist) RemoveSymbol(symbol string) {
	w.Symbols = slices.DeleteFunc(w.Symbols, func(s string) bool {
		return s == symbol
	})
}
