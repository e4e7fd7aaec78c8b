package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger transaction.
type TransactionKind int

// Transaction kinds, in wire order.
const (
	TransactionTransfer TransactionKind = iota
	TransactionCommission
	TransactionBuy
	TransactionSell
)

// String returns the kind name used in API responses.
func (k TransactionKind) String() string {
	switch k {
	case TransactionTransfer:
		return "Transfer"
	case TransactionCommission:
		return "Commission"
	case TransactionBuy:
		return "Buy"
	case TransactionSell:
		return "Sell"
	default:
		return "Unknown"
	}
}

// Transaction is one append-only entry of an account's audit log. It is
// never mutated or deleted after creation; its Balance field snapshots the
// running account balance immediately after the entry was applied.
type Transaction struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	TimestampUTC time.Time
	Kind         TransactionKind
	Description  string
	Amount       decimal.Decimal
	Balance      decimal.Decimal
}

// newTransaction creates a ledger entry for the given account.
func newTransaction(accountID uuid.UUID, kind TransactionKind, description string, amount, balance decimal.Decimal) Transaction {
	return Transaction{
		ID:           uuid.New(),
		AccountID:    accountID,
		TimestampUTC: time.Now().UTC(),
		Kind:         kind,
		Description:  description,
		Amount:       amount,
		Balance:      balance,
	}
}
