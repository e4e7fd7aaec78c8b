// Package domain defines domain-level errors for the accounts feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for account operations.
// These errors represent business rule failures and should be handled appropriately by upper layers.
var (
	// ErrAccountNotFound indicates that no account was found for the given
	// identifier, or that the account does not belong to the requesting user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSymbolNotFound indicates that no listed share exists for the given symbol.
	ErrSymbolNotFound = errors.New("share symbol not found")
)

// InvalidTradeError represents an expected business rejection of a buy or
// sell order: a replayed nonce, insufficient balance, an oversell or a
// trade amount outside every commission range. It is not a programmer
// error and is never retried by the ledger itself.
type InvalidTradeError struct {
	Reason string
}

// Error returns the human-readable rejection reason.
func (e *InvalidTradeError) Error() string {
	return e.Reason
}

// NewInvalidTrade creates an InvalidTradeError with a formatted reason.
func NewInvalidTrade(format string, args ...any) *InvalidTradeError {
	return &InvalidTradeError{Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidTrade reports whether err is an order rejection.
func IsInvalidTrade(err error) bool {
	var ite *InvalidTradeError
	return errors.As(err, &ite)
}
