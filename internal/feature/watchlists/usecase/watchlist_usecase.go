// Package usecase implements the business logic of the watchlists
// feature: managing a user's watchlists and joining their symbols
// against live quotes.
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountsdomain "trading_backend/internal/feature/accounts/domain"
	accountsusecase "trading_backend/internal/feature/accounts/usecase"
	"trading_backend/internal/feature/watchlists/domain"
	"trading_backend/internal/feature/watchlists/domain/entity"
)

// WatchlistRepository abstracts persistence of watchlists. Following Go
// convention, the interface is defined by the consumer (usecase), not
// the provider (adapters).
type WatchlistRepository interface {
	// Save persists the watchlist, creating or updating it.
	Save(ctx context.Context, watchlist *entity.Watchlist) error

	// FindByID returns the watchlist. Returns domain.ErrWatchlistNotFound
	// if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Watchlist, error)

	// ListByUser returns all watchlists owned by the user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Watchlist, error)

	// Delete removes the watchlist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteProvider supplies live prices from the market-data collaborator.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (*accountsusecase.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) (map[string]accountsusecase.Quote, error)
}

// WatchlistInfo is the summary view of one watchlist.
type WatchlistInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// WatchlistShare is one watched symbol joined with its live quote.
type WatchlistShare struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	LastPrice     decimal.Decimal `json:"lastPrice"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

// WatchlistDetails is the full view of one watchlist with priced symbols.
type WatchlistDetails struct {
	ID     uuid.UUID        `json:"id"`
	Name   string           `json:"name"`
	Shares []WatchlistShare `json:"shares"`
}

// WatchlistUsecase coordinates watchlists with the quote provider.
type WatchlistUsecase struct {
	watchlists WatchlistRepository
	quotes     QuoteProvider
}

// NewWatchlistUsecase creates a new WatchlistUsecase with the given collaborators.
func NewWatchlistUsecase(watchlists WatchlistRepository, quotes QuoteProvider) *WatchlistUsecase {
	return &WatchlistUsecase{watchlists: watchlists, quotes: quotes}
}

// CreateWatchlist creates a watchlist for the user and returns its identifier.
func (u *WatchlistUsecase) CreateWatchlist(ctx context.Context, userID uuid.UUID, name string, symbols []string) (uuid.UUID, error) {
	watchlist := entity.CreateNew(userID, name, symbols)
	if err := u.watchlists.Save(ctx, watchlist); err != nil {
		return uuid.Nil, err
	}
	return watchlist.ID, nil
}

// ListWatchlists returns summaries of all watchlists owned by the user.
func (u *WatchlistUsecase) ListWatchlists(ctx context.Context, userID uuid.UUID) ([]WatchlistInfo, error) {
	watchlists, err := u.watchlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]WatchlistInfo, 0, len(watchlists))
	for _, w := range watchlists {
		infos = append(infos, WatchlistInfo{ID: w.ID, Name: w.Name})
	}
	return infos, nil
}

// GetWatchlistDetails returns the watchlist with its symbols joined
// against live quotes. Symbols without a quote are omitted from the view,
// matching the behavior of the upstream data provider.
func (u *WatchlistUsecase) GetWatchlistDetails(ctx context.Context, userID, watchlistID uuid.UUID) (*WatchlistDetails, error) {
	watchlist, err := u.getOwnedWatchlist(ctx, userID, watchlistID)
	if err != nil {
		return nil, err
	}

	quotes, err := u.quotes.GetQuotes(ctx, watchlist.Symbols)
	if err != nil {
		return nil, fmt.Errorf("load quotes: %w", err)
	}

	details := &WatchlistDetails{
		ID:     watchlist.ID,
		Name:   watchlist.Name,
		Shares: make([]WatchlistShare, 0, len(watchlist.Symbols)),
	}
	for _, symbol := range watchlist.Symbols {
		q, ok := quotes[symbol]
		if !ok {
			continue
		}
		details.Shares = append(details.Shares, WatchlistShare{
			Symbol:        symbol,
			Name:          q.Name,
			LastPrice:     q.Last,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		})
	}
	return details, nil
}

// RenameWatchlist changes the display name of the watchlist.
func (u *WatchlistUsecase) RenameWatchlist(ctx context.Context, userID, watchlistID uuid.UUID, name string) error {
	watchlist, err := u.getOwnedWatchlist(ctx, userID, watchlistID)
	if err != nil {
		return err
	}
	watchlist.Rename(name)
	return u.watchlists.Save(ctx, watchlist)
}

// DeleteWatchlist removes the watchlist.
func (u *WatchlistUsecase) DeleteWatchlist(ctx context.Context, userID, watchlistID uuid.UUID) error {
	if _, err := u.getOwnedWatchlist(ctx, userID, watchlistID); err != nil {
		return err
	}
	return u.watchlists.Delete(ctx, watchlistID)
}

// AddSymbol adds a listed symbol to the watchlist. An unknown symbol is
// rejected with accountsdomain.ErrSymbolNotFound.
func (u *WatchlistUsecase) AddSymbol(ctx context.Context, userID, watchlistID uuid.UUID, symbol string) error {
	quote, err := u.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return err
	}
	if quote == nil {
		return accountsdomain.ErrSymbolNotFound
	}

	watchlist, err := u.getOwnedWatchlist(ctx, userID, watchlistID)
	if err != nil {
		return err
	}
	watchlist.AddSymbol(symbol)
	return u.watchlists.Save(ctx, watchlist)
}

// RemoveSymbol removes a symbol from the watchlist.
func (u *WatchlistUsecase) RemoveSymbol(ctx context.Context, userID, watchlistID uuid.UUID, symbol string) error {
	watchlist, err := u.getOwnedWatchlist(ctx, userID, watchlistID)
	if err != nil {
		return err
	}
	watchlist.RemoveSymbol(symbol)
	return u.watchlists.Save(ctx, watchlist)
}

// getOwnedWatchlist loads the watchlist and verifies ownership. A foreign
// or missing watchlist is indistinguishable to the caller.
func (u *WatchlistUsecase) getOwnedWatchlist(ctx context.Context, userID, watchlistID uuid.UUID) (*entity.Watchlist, error) {
	watchlist, err := u.watchlists.FindByID(ctx, watchlistID)
	if err != nil {
		return nil, err
	}
	if watchlist.UserID != userID {
		return nil, domain.ErrWatchlistNotFound
	}
	return watchlist, nil
}
