package domain

import (
	"fmt"
	"time"
)

// ASX session times in local hours.
const (
	openHour  = 10
	closeHour = 16
)

// exchangeTimezone is the IANA timezone of the ASX.
const exchangeTimezone = "Australia/Sydney"

// TradingCalendar answers trading-day and session-time questions for the ASX.
type TradingCalendar struct {
	loc      *time.Location
	holidays *HolidayCache
}

// NewTradingCalendar creates a calendar for the ASX with its own holiday cache.
func NewTradingCalendar() (*TradingCalendar, error) {
	loc, err := time.LoadLocation(exchangeTimezone)
	if err != nil {
		return nil, fmt.Errorf("load exchange timezone: %w", err)
	}
	return &TradingCalendar{
		loc:      loc,
		holidays: NewHolidayCache(loc),
	}, nil
}

// Location returns the exchange timezone.
func (c *TradingCalendar) Location() *time.Location {
	return c.loc
}

// IsTradingDay reports whether the date of t, in the exchange timezone, is a
// weekday that is not a public holiday.
func (c *TradingCalendar) IsTradingDay(t time.Time) bool {
	local := t.In(c.loc)
	if local.Weekday() == time.Saturday || local.Weekday() == time.Sunday {
		return false
	}
	return !c.holidays.IsHoliday(local)
}

// OpeningTime returns the opening instant of the first trading day at or
// after the date of t.
func (c *TradingCalendar) OpeningTime(t time.Time) time.Time {
	local := t.In(c.loc)
	for !c.IsTradingDay(local) {
		local = local.AddDate(0, 0, 1)
	}
	return time.Date(local.Year(), local.Month(), local.Day(), openHour, 0, 0, 0, c.loc)
}

// ClosingTime returns the closing instant of the last trading day at or
// before the date of t.
func (c *TradingCalendar) ClosingTime(t time.Time) time.Time {
	local := t.In(c.loc)
	for !c.IsTradingDay(local) {
		local = local.AddDate(0, 0, -1)
	}
	return time.Date(local.Year(), local.Month(), local.Day(), closeHour, 0, 0, 0, c.loc)
}

// IsMarketOpen reports whether the market is open at instant t: a trading
// day, strictly after opening and at or before closing.
func (c *TradingCalendar) IsMarketOpen(t time.Time) bool {
	if !c.IsTradingDay(t) {
		return false
	}
	open := c.OpeningTime(t)
	close := c.ClosingTime(t)
	return t.After(open) && !t.After(close)
}
