// Package entity defines the trading account aggregate: the account
// ledger with its owned positions and transaction history.
package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trading_backend/internal/feature/accounts/domain"
)

var hundred = decimal.NewFromInt(100)

// Account is the aggregate root of the trading ledger. It owns its
// positions and transactions by value; children never point back at it.
//
// Invariant: Balance always equals the initial balance plus the signed sum
// of all transaction amounts. Mutations happen only through Reset,
// BuyShares and SellShares, which keep that invariant by appending one
// transaction per balance movement.
//
// The aggregate itself is not safe for concurrent use; callers must
// serialize operations per account.
type Account struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string

	// Balance is the current cash balance.
	Balance decimal.Decimal

	// LastNonce is the highest order nonce accepted so far. Orders with a
	// nonce at or below it are duplicates or replays and are rejected.
	LastNonce int64

	Positions    []Position
	Transactions []Transaction
}

// CreateNew opens a trading account seeded with the initial balance and a
// single opening transfer transaction.
func CreateNew(userID uuid.UUID, name string, initialBalance decimal.Decimal) *Account {
	account := &Account{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
	account.Reset(initialBalance, "Account opened")
	return account
}

// Rehydrate reconstructs an account from persisted state. It is the only
// way to obtain an aggregate that did not go through CreateNew, so the
// rest of the program never sees a half-built account.
func Rehydrate(id, userID uuid.UUID, name string, balance decimal.Decimal, lastNonce int64, positions []Position, transactions []Transaction) *Account {
	return &Account{
		ID:           id,
		UserID:       userID,
		Name:         name,
		Balance:      balance,
		LastNonce:    lastNonce,
		Positions:    positions,
		Transactions: transactions,
	}
}

// Reset restarts the simulation: all positions and transactions are
// cleared and the balance is re-seeded with a single transfer transaction.
// The nonce watermark is kept so old orders cannot be replayed afterwards.
func (a *Account) Reset(initialBalance decimal.Decimal, description string) {
	a.Positions = nil
	a.Transactions = nil
	a.Balance = initialBalance
	a.append(TransactionTransfer, description, initialBalance, initialBalance)
}

// BuyShares executes a buy order against the ledger.
//
// The order is rejected when the nonce is not strictly greater than the
// last accepted one, when the notional falls outside every commission
// range, or when notional plus fees exceeds the balance. On success the
// position for symbol is created or re-averaged and three transactions
// are appended: the purchase and the two brokerage fees, each with the
// running balance after that specific debit.
func (a *Account) BuyShares(symbol string, quantity int64, price decimal.Decimal, commissions domain.Commissions, nonce int64) error {
	if err := a.checkNonce(nonce); err != nil {
		return err
	}

	notional := price.Mul(decimal.NewFromInt(quantity))

	fixedFee, percentageRate, err := lookupFees(commissions, notional)
	if err != nil {
		return err
	}
	percentageFee := notional.Mul(percentageRate).Div(hundred)
	totalFees := percentageFee.Add(fixedFee)

	total := notional.Add(totalFees)
	if total.GreaterThan(a.Balance) {
		return domain.NewInvalidTrade(
			"The total amount of the transaction exceeds the current account balance by $%s.",
			total.Sub(a.Balance).StringFixed(2))
	}

	position := a.findPosition(symbol)
	if position == nil {
		a.Positions = append(a.Positions, Position{
			ID:        uuid.New(),
			AccountID: a.ID,
			Symbol:    symbol,
		})
		position = &a.Positions[len(a.Positions)-1]
	}
	position.buy(quantity, price, totalFees)

	a.Balance = a.Balance.Sub(notional)
	a.append(TransactionBuy,
		fmt.Sprintf("Purchased %d shares of %s for $%s each", quantity, symbol, price.StringFixed(2)),
		notional.Neg(), a.Balance)

	a.Balance = a.Balance.Sub(percentageFee)
	a.append(TransactionCommission,
		fmt.Sprintf("Brokerage Fee %s%%", percentageRate.StringFixed(2)),
		percentageFee.Neg(), a.Balance)

	a.Balance = a.Balance.Sub(fixedFee)
	a.append(TransactionCommission, "Brokerage Fee", fixedFee.Neg(), a.Balance)

	a.LastNonce = nonce
	return nil
}

// SellShares executes a sell order against the ledger.
//
// The balance check only rejects when the fees cannot be covered by the
// balance plus the sale proceeds; fees are always deducted from proceeds
// first, so the check is deliberately more permissive than the buy path.
// Selling more than the held quantity, or a symbol that is not held at
// all, is rejected. A position sold down to zero is removed.
func (a *Account) SellShares(symbol string, quantity int64, price decimal.Decimal, commissions domain.Commissions, nonce int64) error {
	if err := a.checkNonce(nonce); err != nil {
		return err
	}

	notional := price.Mul(decimal.NewFromInt(quantity))

	fixedFee, percentageRate, err := lookupFees(commissions, notional)
	if err != nil {
		return err
	}
	percentageFee := notional.Mul(percentageRate).Div(hundred)
	totalFees := percentageFee.Add(fixedFee)

	total := totalFees.Sub(notional)
	if total.GreaterThan(a.Balance) {
		return domain.NewInvalidTrade(
			"The total amount of the transaction exceeds the current account balance by $%s.",
			total.Sub(a.Balance).StringFixed(2))
	}

	position := a.findPosition(symbol)
	if position == nil || position.Quantity < quantity {
		var held int64
		if position != nil {
			held = position.Quantity
		}
		return domain.NewInvalidTrade(
			"You cannot sell %d shares of %s because the current position is only %d.",
			quantity, symbol, held)
	}

	position.sell(quantity)
	if position.Quantity == 0 {
		a.removePosition(symbol)
	}

	a.Balance = a.Balance.Add(notional)
	a.append(TransactionSell,
		fmt.Sprintf("Sold %d shares of %s for $%s each", quantity, symbol, price.StringFixed(2)),
		notional, a.Balance)

	a.Balance = a.Balance.Sub(percentageFee)
	a.append(TransactionCommission,
		fmt.Sprintf("Brokerage Fee %s%%", percentageRate.StringFixed(2)),
		percentageFee.Neg(), a.Balance)

	a.Balance = a.Balance.Sub(fixedFee)
	a.append(TransactionCommission, "Brokerage Fee", fixedFee.Neg(), a.Balance)

	a.LastNonce = nonce
	return nil
}

// checkNonce enforces the monotonically increasing order nonce.
func (a *Account) checkNonce(nonce int64) error {
	if nonce <= a.LastNonce {
		return domain.NewInvalidTrade(
			"The order nonce %d has already been used; the last accepted nonce is %d.",
			nonce, a.LastNonce)
	}
	return nil
}

// lookupFees resolves the fixed fee and the percentage rate for a notional.
func lookupFees(commissions domain.Commissions, notional decimal.Decimal) (fixed, percentage decimal.Decimal, err error) {
	fixed, err = domain.LookupCommission(commissions.Fixed, notional)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	percentage, err = domain.LookupCommission(commissions.Percentage, notional)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return fixed, percentage, nil
}

func (a *Account) findPosition(symbol string) *Position {
	for i := range a.Positions {
		if a.Positions[i].Symbol == symbol {
			return &a.Positions[i]
		}
	}
	return nil
}

func (a *Account) removePosition(symbol string) {
	for i := range a.Positions {
		if a.Positions[i].Symbol == symbol {
			a.Positions = append(a.Positions[:i], a.Positions[i+1:]...)
			return
		}
	}
}

func (a *Account) append(kind TransactionKind, description string, amount, balance decimal.Decimal) {
	a.Transactions = append(a.Transactions, newTransaction(a.ID, kind, description, amount, balance))
}
