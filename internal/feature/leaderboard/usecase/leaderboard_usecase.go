// Package usecase computes the profit leaderboard across all users.
package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trading_backend/internal/platform/metrics"
	"trading_backend/internal/shared/pagination"
)

// ErrUserNotRanked is returned when the requesting user has no leaderboard entry.
var ErrUserNotRanked = errors.New("user not ranked")

// valuationWorkers bounds the number of concurrent user valuations so the
// price-lookup collaborator is not overwhelmed.
const valuationWorkers = 5

// Member is one user eligible for ranking.
type Member struct {
	UserID      uuid.UUID
	DisplayName string
	GravatarURL string
}

// UserDirectory lists the users that carry at least one trading account.
type UserDirectory interface {
	ListMembers(ctx context.Context) ([]Member, error)
}

// MemberValuer computes the highest current total value across one user's
// accounts, priced with live quotes.
type MemberValuer interface {
	TotalAccountValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// SettingsProvider supplies the initial balance used to normalize profit.
type SettingsProvider interface {
	InitialBalance(ctx context.Context) (decimal.Decimal, error)
}

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank              int             `json:"rank"`
	IsCurrentUser     bool            `json:"isCurrentUser"`
	DisplayName       string          `json:"displayName"`
	GravatarURL       string          `json:"gravatarUrl"`
	TotalAccountValue decimal.Decimal `json:"totalAccountValue"`
	Profit            decimal.Decimal `json:"profit"`
	ProfitPercent     decimal.Decimal `json:"profitPercent"`
}

// LeaderboardUsecase ranks all users by profit percent. The board is
// recomputed on every request so it always reflects live prices.
type LeaderboardUsecase struct {
	directory UserDirectory
	valuer    MemberValuer
	settings  SettingsProvider
}

// NewLeaderboardUsecase creates a new LeaderboardUsecase.
func NewLeaderboardUsecase(directory UserDirectory, valuer MemberValuer, settings SettingsProvider) *LeaderboardUsecase {
	return &LeaderboardUsecase{
		directory: directory,
		valuer:    valuer,
		settings:  settings,
	}
}

// GetUsers returns one page of the full ranking.
func (u *LeaderboardUsecase) GetUsers(ctx context.Context, currentUserID uuid.UUID, pageNumber, pageSize int) (pagination.Page[Entry], error) {
	entries, err := u.build(ctx, currentUserID)
	if err != nil {
		return pagination.Page[Entry]{}, err
	}

	lo, hi := pagination.Slice(len(entries), pageNumber, pageSize)
	return pagination.NewPage(entries[lo:hi], pageNumber, pageSize, int64(len(entries))), nil
}

// GetNeighbors returns the entries whose rank falls within neighborCount of
// the current user's rank, clamped at both ends of the board.
func (u *LeaderboardUsecase) GetNeighbors(ctx context.Context, currentUserID uuid.UUID, neighborCount int) ([]Entry, error) {
	entries, err := u.build(ctx, currentUserID)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsCurrentUser {
			lo := entry.Rank - 1 - neighborCount
			if lo < 0 {
				lo = 0
			}
			hi := entry.Rank + neighborCount
			if hi > len(entries) {
				hi = len(entries)
			}
			return entries[lo:hi], nil
		}
	}
	return nil, ErrUserNotRanked
}

// build values every member with a bounded worker pool, then sorts and ranks.
// Valuation is all-or-nothing: the first failure cancels the remaining work
// and no partial board is returned.
func (u *LeaderboardUsecase) build(ctx context.Context, currentUserID uuid.UUID) ([]Entry, error) {
	start := time.Now()

	initialBalance, err := u.settings.InitialBalance(ctx)
	if err != nil {
		return nil, err
	}

	members, err := u.directory.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	values, err := u.valueAll(ctx, members)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(members))
	for i, member := range members {
		profit := values[i].Sub(initialBalance)
		entries[i] = Entry{
			IsCurrentUser:     member.UserID == currentUserID,
			DisplayName:       member.DisplayName,
			GravatarURL:       member.GravatarURL,
			TotalAccountValue: values[i],
			Profit:            profit,
			ProfitPercent:     profit.Div(initialBalance).Mul(decimal.NewFromInt(100)),
		}
	}

	// Stable: members with equal profit percent keep their directory order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ProfitPercent.GreaterThan(entries[j].ProfitPercent)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	metrics.LeaderboardBuildDuration.Observe(time.Since(start).Seconds())
	return entries, nil
}

// valueAll runs the per-member valuations over a fixed pool of workers.
func (u *LeaderboardUsecase) valueAll(ctx context.Context, members []Member) ([]decimal.Decimal, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	values := make([]decimal.Decimal, len(members))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	workers := valuationWorkers
	if len(members) < workers {
		workers = len(members)
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				value, err := u.valuer.TotalAccountValue(ctx, members[i].UserID)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				values[i] = value
			}
		}()
	}

	for i := range members {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
