package format

import "time"

// StartOfDay zeroes the time-of-day component, keeping the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntilDue returns the number of calendar days between now and the due
// date. Time-of-day is zeroed on both sides first, so the result depends
// only on the calendar dates: due today is 0, due yesterday is -1. This is
// what keeps a bill due "today at 08:00" from flipping overdue at 09:00.
func DaysUntilDue(due, now time.Time) int {
	d := StartOfDay(due).Sub(StartOfDay(now.In(due.Location())))
	return int(d.Hours() / 24)
}

// IsOverdue reports whether the due date is strictly before today.
func IsOverdue(due, now time.Time) bool {
	return DaysUntilDue(due, now) < 0
}

// CurrentMonth returns now's month key in YYYY-MM form.
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}

// LastDayOfMonth returns the last calendar day of now's month.
func LastDayOfMonth(now time.Time) time.Time {
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
