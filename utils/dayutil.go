package utils

import "time"

const dayKeyLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in the given location.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayDifference returns the number of whole calendar days between the
// start-of-day of from and the start-of-day of to. The result may be negative.
// The calculation is date based, not elapsed-seconds based, so it stays correct
// across DST transitions where a calendar day is 23 or 25 hours long.
func DayDifference(from, to time.Time, loc *time.Location) int {
	a := StartOfDay(from, loc)
	b := StartOfDay(to, loc)

	days := 0
	for a.Before(b) {
		a = a.AddDate(0, 0, 1)
		days++
	}
	for a.After(b) {
		a = a.AddDate(0, 0, -1)
		days--
	}
	return days
}

// DayKey renders t's calendar day in loc as the canonical YYYY-MM-DD bucket key.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key back into midnight of that day in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, loc)
}
