// Package format provides French-locale formatting helpers. All functions
// are pure and take explicit time inputs so callers can pin the clock.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthsFR = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// DateFR formats a date the way the dashboard displays it: "2 janvier 2024".
// The zero time formats as an empty string.
func DateFR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthsFR[t.Month()-1], t.Year())
}

// MonthFR expands a YYYY-MM month key to "janvier 2024". Unparseable input
// is returned unchanged.
func MonthFR(month string) string {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return month
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return month
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return month
	}
	return fmt.Sprintf("%s %d", monthsFR[m-1], y)
}

// RelativeFR formats how long ago t was, relative to now.
// Uses compact French: "à l'instant", "il y a 5 min", "il y a 3 h",
// "il y a 2 jours", then falls back to the full date.
func RelativeFR(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "à l'instant"
	case d < time.Hour:
		return fmt.Sprintf("il y a %d min", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("il y a %d h", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("il y a %s", Jours(int(d.Hours()/24)))
	default:
		return DateFR(t)
	}
}

// Jours renders a day count with French pluralization: "1 jour", "9 jours".
func Jours(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d jour", n)
	}
	return fmt.Sprintf("%d jours", n)
}
