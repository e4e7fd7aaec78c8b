// Package usecase reports the current state of the exchange.
package usecase

import (
	"time"

	"trading_backend/internal/feature/market/domain"
)

// MarketInfo describes the exchange state at one instant.
type MarketInfo struct {
	CurrentTime    time.Time
	IsOpen         bool
	TimeUntilOpen  time.Duration
	TimeUntilClose time.Duration
}

// MarketUsecase answers market-state queries against the trading calendar.
// The clock is injected so session boundaries can be tested deterministically.
type MarketUsecase struct {
	calendar *domain.TradingCalendar
	now      func() time.Time
}

// NewMarketUsecase creates a MarketUsecase reading the system clock.
func NewMarketUsecase(calendar *domain.TradingCalendar) *MarketUsecase {
	return &MarketUsecase{calendar: calendar, now: time.Now}
}

// NewMarketUsecaseWithClock creates a MarketUsecase with a custom clock.
func NewMarketUsecaseWithClock(calendar *domain.TradingCalendar, now func() time.Time) *MarketUsecase {
	return &MarketUsecase{calendar: calendar, now: now}
}

// GetMarket returns the current exchange time, the open flag and the time
// remaining until the next open and the next close. When the naive opening
// or closing instant for today has already passed it rolls forward to the
// next trading day.
func (u *MarketUsecase) GetMarket() MarketInfo {
	now := u.now().In(u.calendar.Location())

	opening := u.calendar.OpeningTime(now)
	if opening.Before(now) {
		opening = u.calendar.OpeningTime(startOfNextDay(now))
	}

	closing := u.nextClose(now)

	return MarketInfo{
		CurrentTime:    now,
		IsOpen:         u.calendar.IsMarketOpen(now),
		TimeUntilOpen:  opening.Sub(now),
		TimeUntilClose: closing.Sub(now),
	}
}

// nextClose finds the first closing instant strictly after now by walking
// forward over weekends and holidays.
func (u *MarketUsecase) nextClose(now time.Time) time.Time {
	day := now
	for {
		if u.calendar.IsTradingDay(day) {
			closing := u.calendar.ClosingTime(day)
			if closing.After(now) {
				return closing
			}
		}
		day = startOfNextDay(day)
	}
}

func startOfNextDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}
