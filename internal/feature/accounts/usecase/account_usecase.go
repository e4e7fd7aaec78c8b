// Package usecase implements the business logic of the accounts feature:
// opening, resetting and valuing trading accounts and executing orders
// against the ledger at the current market price.
package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trading_backend/internal/feature/accounts/domain"
	"trading_backend/internal/feature/accounts/domain/entity"
	"trading_backend/internal/platform/metrics"
	"trading_backend/internal/shared/pagination"
)

// AccountRepository abstracts persistence of the account aggregate.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type AccountRepository interface {
	// Save persists the aggregate: the account row, the full position set
	// and any transactions not yet stored.
	Save(ctx context.Context, account *entity.Account) error

	// Reset persists the aggregate after a reset, discarding all
	// previously stored positions and transactions.
	Reset(ctx context.Context, account *entity.Account) error

	// FindByID rehydrates an account with its positions. Returns
	// domain.ErrAccountNotFound if the account does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// ListByUser returns all accounts owned by the user, with positions.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// Delete removes the account and everything it owns.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListTransactions returns one page of the account's transactions,
	// newest first, together with the total row count. Zero from/to times
	// leave that end of the date range unbounded.
	ListTransactions(ctx context.Context, accountID uuid.UUID, from, to time.Time, pageNumber, pageSize int) ([]entity.Transaction, int64, error)
}

// Quote is a live market quote for one symbol.
type Quote struct {
	Symbol        string
	Name          string
	Ask           decimal.Decimal
	Bid           decimal.Decimal
	Last          decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
}

// QuoteProvider supplies live prices from the market-data collaborator.
type QuoteProvider interface {
	// GetQuote returns the quote for one symbol, or
	// domain.ErrSymbolNotFound if the symbol is not listed.
	GetQuote(ctx context.Context, symbol string) (*Quote, error)

	// GetQuotes returns quotes for the given symbols, keyed by symbol.
	// Symbols without a quote are simply absent from the result.
	GetQuotes(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// SettingsProvider supplies the configured account defaults and fee tables.
type SettingsProvider interface {
	InitialBalance(ctx context.Context) (decimal.Decimal, error)
	BuyCommissions(ctx context.Context) (domain.Commissions, error)
	SellCommissions(ctx context.Context) (domain.Commissions, error)
}

// AccountInfo is the summary view of one account.
type AccountInfo struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// PositionDetails is one holding joined with its live quote.
type PositionDetails struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Quantity      int64           `json:"quantity"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
	LastPrice     decimal.Decimal `json:"lastPrice"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

// AccountDetails is the full view of one account including priced positions.
type AccountDetails struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Balance   decimal.Decimal   `json:"balance"`
	Positions []PositionDetails `json:"positions"`
}

// AccountUsecase coordinates the ledger aggregate with its collaborators.
//
// Buy, sell and reset are read-modify-write sequences on one aggregate, so
// they are serialized per account with a keyed mutex; operations on
// different accounts run fully in parallel.
type AccountUsecase struct {
	accounts AccountRepository
	quotes   QuoteProvider
	settings SettingsProvider

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewAccountUsecase creates a new AccountUsecase with the given collaborators.
func NewAccountUsecase(accounts AccountRepository, quotes QuoteProvider, settings SettingsProvider) *AccountUsecase {
	return &AccountUsecase{
		accounts: accounts,
		quotes:   quotes,
		settings: settings,
		locks:    map[uuid.UUID]*sync.Mutex{},
	}
}

// lockAccount returns the mutex serializing operations on one account.
func (u *AccountUsecase) lockAccount(id uuid.UUID) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()

	l, ok := u.locks[id]
	if !ok {
		l = &sync.Mutex{}
		u.locks[id] = l
	}
	return l
}

// CreateAccount opens a new trading account seeded with the configured
// initial balance and returns its identifier.
func (u *AccountUsecase) CreateAccount(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, error) {
	initialBalance, err := u.settings.InitialBalance(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load account defaults: %w", err)
	}

	account := entity.CreateNew(userID, name, initialBalance)
	if err := u.accounts.Save(ctx, account); err != nil {
		return uuid.Nil, err
	}
	return account.ID, nil
}

// ListAccounts returns summaries of all accounts owned by the user.
func (u *AccountUsecase) ListAccounts(ctx context.Context, userID uuid.UUID) ([]AccountInfo, error) {
	accounts, err := u.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]AccountInfo, 0, len(accounts))
	for _, a := range accounts {
		infos = append(infos, AccountInfo{ID: a.ID, Name: a.Name, Balance: a.Balance})
	}
	return infos, nil
}

// GetAccountDetails returns the account with its positions joined against
// live quotes. Positions whose symbol has no quote are omitted from the
// view, matching the behavior of the upstream data provider.
func (u *AccountUsecase) GetAccountDetails(ctx context.Context, userID, accountID uuid.UUID) (*AccountDetails, error) {
	account, err := u.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return u.detailsFor(ctx, account)
}

func (u *AccountUsecase) detailsFor(ctx context.Context, account *entity.Account) (*AccountDetails, error) {
	symbols := make([]string, 0, len(account.Positions))
	for _, p := range account.Positions {
		symbols = append(symbols, p.Symbol)
	}

	quotes, err := u.quotes.GetQuotes(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("load quotes: %w", err)
	}

	details := &AccountDetails{
		ID:        account.ID,
		Name:      account.Name,
		Balance:   account.Balance,
		Positions: make([]PositionDetails, 0, len(account.Positions)),
	}
	for _, p := range account.Positions {
		q, ok := quotes[p.Symbol]
		if !ok {
			continue
		}
		details.Positions = append(details.Positions, PositionDetails{
			Symbol:        p.Symbol,
			Name:          q.Name,
			Quantity:      p.Quantity,
			AveragePrice:  p.AveragePrice,
			LastPrice:     q.Last,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		})
	}
	return details, nil
}

// AccountValue returns the total current value of the account: the sum of
// position quantity times last price, plus the cash balance. Used by the
// leaderboard valuation.
func (u *AccountUsecase) AccountValue(ctx context.Context, account *entity.Account) (decimal.Decimal, error) {
	details, err := u.detailsFor(ctx, account)
	if err != nil {
		return decimal.Zero, err
	}

	value := details.Balance
	for _, p := range details.Positions {
		value = value.Add(p.LastPrice.Mul(decimal.NewFromInt(p.Quantity)))
	}
	return value, nil
}

// ListTransactions returns one page of the account's transaction history,
// newest first, optionally restricted to a date range.
func (u *AccountUsecase) ListTransactions(ctx context.Context, userID, accountID uuid.UUID, from, to time.Time, pageNumber, pageSize int) (pagination.Page[entity.Transaction], error) {
	if _, err := u.getOwnedAccount(ctx, userID, accountID); err != nil {
		return pagination.Page[entity.Transaction]{}, err
	}

	items, total, err := u.accounts.ListTransactions(ctx, accountID, from, to, pageNumber, pageSize)
	if err != nil {
		return pagination.Page[entity.Transaction]{}, err
	}
	return pagination.NewPage(items, pageNumber, pageSize, total), nil
}

// ResetAccount restarts the simulation for the account: positions and
// history are discarded and the balance is re-seeded from settings.
func (u *AccountUsecase) ResetAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	initialBalance, err := u.settings.InitialBalance(ctx)
	if err != nil {
		return fmt.Errorf("load account defaults: %w", err)
	}

	lock := u.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := u.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}

	account.Reset(initialBalance, "Account reset")
	return u.accounts.Reset(ctx, account)
}

// DeleteAccount removes the account and everything it owns.
func (u *AccountUsecase) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	if _, err := u.getOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}
	return u.accounts.Delete(ctx, accountID)
}

// BuyShares buys the given quantity at the current ask price.
func (u *AccountUsecase) BuyShares(ctx context.Context, userID, accountID uuid.UUID, symbol string, quantity, nonce int64) error {
	quote, err := u.getQuote(ctx, symbol)
	if err != nil {
		return err
	}

	commissions, err := u.settings.BuyCommissions(ctx)
	if err != nil {
		return fmt.Errorf("load buy commissions: %w", err)
	}

	lock := u.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := u.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}

	if err := account.BuyShares(symbol, quantity, quote.Ask, commissions, nonce); err != nil {
		if domain.IsInvalidTrade(err) {
			metrics.OrderRejections.WithLabelValues("buy").Inc()
		}
		return err
	}
	if err := u.accounts.Save(ctx, account); err != nil {
		return err
	}

	metrics.OrdersTotal.WithLabelValues("buy").Inc()
	return nil
}

// SellShares sells the given quantity at the current bid price.
func (u *AccountUsecase) SellShares(ctx context.Context, userID, accountID uuid.UUID, symbol string, quantity, nonce int64) error {
	quote, err := u.getQuote(ctx, symbol)
	if err != nil {
		return err
	}

	commissions, err := u.settings.SellCommissions(ctx)
	if err != nil {
		return fmt.Errorf("load sell commissions: %w", err)
	}

	lock := u.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := u.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}

	if err := account.SellShares(symbol, quantity, quote.Bid, commissions, nonce); err != nil {
		if domain.IsInvalidTrade(err) {
			metrics.OrderRejections.WithLabelValues("sell").Inc()
		}
		return err
	}
	if err := u.accounts.Save(ctx, account); err != nil {
		return err
	}

	metrics.OrdersTotal.WithLabelValues("sell").Inc()
	return nil
}

// getQuote resolves a live quote, mapping a missing symbol to the domain error.
func (u *AccountUsecase) getQuote(ctx context.Context, symbol string) (*Quote, error) {
	quote, err := u.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrSymbolNotFound
	}
	return quote, nil
}

// getOwnedAccount loads the account and verifies ownership. A foreign or
// missing account is indistinguishable to the caller.
func (u *AccountUsecase) getOwnedAccount(ctx context.Context, userID, accountID uuid.UUID) (*entity.Account, error) {
	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}
