package domain

import (
	"sync"
	"time"
)

// HolidayCache memoizes the public holiday set per calendar year. The set for
// a year is computed once under the lock, so two goroutines racing on the
// same year observe a single canonical value. The cache is created once per
// process and never cleared.
type HolidayCache struct {
	loc *time.Location

	mu    sync.Mutex
	years map[int]map[string]struct{}
}

// NewHolidayCache creates an empty cache for the given exchange timezone.
func NewHolidayCache(loc *time.Location) *HolidayCache {
	return &HolidayCache{
		loc:   loc,
		years: map[int]map[string]struct{}{},
	}
}

// IsHoliday reports whether the date of t, in the exchange timezone, is a
// public holiday.
func (c *HolidayCache) IsHoliday(t time.Time) bool {
	local := t.In(c.loc)
	set := c.forYear(local.Year())
	_, ok := set[dateKey(local)]
	return ok
}

func (c *HolidayCache) forYear(year int) map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.years[year]
	if !ok {
		set = holidaysForYear(year, c.loc)
		c.years[year] = set
	}
	return set
}
