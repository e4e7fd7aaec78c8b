// Package domain implements the exchange trading calendar.
package domain

import "time"

// dateKey identifies one calendar date in the exchange timezone.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// easterSunday computes Easter Sunday for a year using the Gaussian algorithm.
func easterSunday(year int, loc *time.Location) time.Time {
	g := year % 19
	c := year / 100
	h := (c - c/4 - (8*c+13)/25 + 19*g + 15) % 30
	i := h - (h/28)*(1-(h/28)*(29/(h+1))*((21-g)/11))

	day := i - ((year+year/4+i+2-c+c/4)%7) + 28
	month := 3
	if day > 31 {
		month++
		day -= 31
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// skipWeekend shifts a date falling on Saturday or Sunday forward to Monday.
func skipWeekend(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// nearestMonday shifts a date to the closest Monday: Tuesday through Thursday
// move backward, Friday through Sunday move forward.
func nearestMonday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Tuesday:
		return t.AddDate(0, 0, -1)
	case time.Wednesday:
		return t.AddDate(0, 0, -2)
	case time.Thursday:
		return t.AddDate(0, 0, -3)
	case time.Friday:
		return t.AddDate(0, 0, 3)
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

// nextWeekday advances a date to the next occurrence of the given weekday,
// returning the date unchanged when it already matches.
func nextWeekday(t time.Time, weekday time.Weekday) time.Time {
	for t.Weekday() != weekday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// holidaysForYear computes the ten ASX public holidays observed in a year.
// When the observed Christmas Day and Boxing Day collide after weekend
// shifting, Boxing Day is pushed one more day forward.
func holidaysForYear(year int, loc *time.Location) map[string]struct{} {
	date := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	}

	easter := easterSunday(year, loc)

	newYearsDay := skipWeekend(date(time.January, 1))
	australiaDay := skipWeekend(date(time.January, 26))
	goodFriday := easter.AddDate(0, 0, -2)
	easterMonday := easter.AddDate(0, 0, 1)
	anzacDay := skipWeekend(date(time.April, 25))
	queensBirthday := nearestMonday(date(time.June, 9))
	labourDay := nextWeekday(date(time.October, 1), time.Monday)
	christmasDay := skipWeekend(date(time.December, 25))
	boxingDay := skipWeekend(date(time.December, 26))

	if christmasDay.Equal(boxingDay) {
		boxingDay = boxingDay.AddDate(0, 0, 1)
	}

	holidays := map[string]struct{}{}
	for _, day := range []time.Time{
		newYearsDay,
		australiaDay,
		goodFriday,
		easter,
		easterMonday,
		anzacDay,
		queensBirthday,
		labourDay,
		christmasDay,
		boxingDay,
	} {
		holidays[dateKey(day)] = struct{}{}
	}
	return holidays
}
