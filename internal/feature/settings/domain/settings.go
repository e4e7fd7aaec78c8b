// Package domain holds the system settings types and their validation rules.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	accountdomain "trading_backend/internal/feature/accounts/domain"
)

// ErrSettingNotFound is returned when no value is stored under a settings key.
var ErrSettingNotFound = errors.New("setting not found")

// ValidationError reports a settings payload that failed validation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidation creates a ValidationError with a formatted reason.
func NewValidation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a settings validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DefaultAccountSettings specifies the defaults applied to new trading accounts.
type DefaultAccountSettings struct {
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// Validate checks that the settings are usable for opening accounts.
func (s DefaultAccountSettings) Validate() error {
	if s.Name == "" {
		return NewValidation("The default account name must not be empty.")
	}
	if !s.InitialBalance.IsPositive() {
		return NewValidation("The initial balance must be greater than zero.")
	}
	return nil
}

// ValidateCommissions checks that a commission table is well formed: both the
// fixed and percentage tables must be present and every range must have
// non-negative bounds in order and a non-negative value.
func ValidateCommissions(c accountdomain.Commissions) error {
	if len(c.Fixed) == 0 {
		return NewValidation("The fixed commission table must contain at least one range.")
	}
	if len(c.Percentage) == 0 {
		return NewValidation("The percentage commission table must contain at least one range.")
	}
	for _, table := range [][]accountdomain.CommissionRange{c.Fixed, c.Percentage} {
		for _, r := range table {
			if r.Min < 0 {
				return NewValidation("Commission range minimum %d must not be negative.", r.Min)
			}
			if r.Max < r.Min {
				return NewValidation("Commission range maximum %d must not be below its minimum %d.", r.Max, r.Min)
			}
			if r.Value.IsNegative() {
				return NewValidation("Commission range value %s must not be negative.", r.Value)
			}
		}
	}
	return nil
}
