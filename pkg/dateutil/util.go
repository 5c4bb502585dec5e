package dateutil

import "time"

const Day = 24 * time.Hour

// Date returns the start of the UTC day of t.
func Date(t time.Time) time.Time {
	return t.UTC().Truncate(Day)
}

// DaysBetween returns the number of calendar days (UTC) from a to b. It is
// negative if b is on a day before a.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)) / Day)
}

// FullDaysSince returns the number of whole 24 hours periods elapsed from t to
// now.
func FullDaysSince(now, t time.Time) int {
	return int(now.Sub(t) / Day)
}
