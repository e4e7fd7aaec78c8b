// Package adapters connects the leaderboard to the user and account features.
package adapters

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountentity "trading_backend/internal/feature/accounts/domain/entity"
	authentity "trading_backend/internal/feature/auth/domain/entity"
	"trading_backend/internal/feature/leaderboard/usecase"
)

// userLister is the slice of the auth repository the directory needs.
type userLister interface {
	ListAll(ctx context.Context) ([]*authentity.User, error)
}

// accountLister is the slice of the accounts repository the directory needs.
type accountLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*accountentity.Account, error)
}

// accountValuer prices one account with live quotes.
type accountValuer interface {
	AccountValue(ctx context.Context, account *accountentity.Account) (decimal.Decimal, error)
}

// Directory lists the users eligible for ranking: everyone who owns at
// least one trading account.
type Directory struct {
	users    userLister
	accounts accountLister
}

var _ usecase.UserDirectory = (*Directory)(nil)

// NewDirectory creates a Directory over the user and account repositories.
func NewDirectory(users userLister, accounts accountLister) *Directory {
	return &Directory{users: users, accounts: accounts}
}

// ListMembers returns every user that owns at least one account.
func (d *Directory) ListMembers(ctx context.Context) ([]usecase.Member, error) {
	users, err := d.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]usecase.Member, 0, len(users))
	for _, user := range users {
		accounts, err := d.accounts.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			continue
		}
		members = append(members, usecase.Member{
			UserID:      user.ID,
			DisplayName: user.DisplayName,
			GravatarURL: user.GravatarURL(),
		})
	}
	return members, nil
}

// Valuer computes the highest live value across one user's accounts.
type Valuer struct {
	accounts accountLister
	values   accountValuer
}

var _ usecase.MemberValuer = (*Valuer)(nil)

// NewValuer creates a Valuer over the accounts repository and the pricing
// side of the accounts usecase.
func NewValuer(accounts accountLister, values accountValuer) *Valuer {
	return &Valuer{accounts: accounts, values: values}
}

// TotalAccountValue returns the maximum current value across the user's
// accounts.
func (v *Valuer) TotalAccountValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	accounts, err := v.accounts.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	best := decimal.Zero
	for i, account := range accounts {
		value, err := v.values.AccountValue(ctx, account)
		if err != nil {
			return decimal.Zero, err
		}
		if i == 0 || value.GreaterThan(best) {
			best = value
		}
	}
	return best, nil
}
