package model

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the formats the backend uses for date fields. Most
// endpoints return plain calendar dates, a few return full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Date wraps time.Time to accept the backend's date encodings.
type Date struct {
	time.Time
}

// NewDate builds a Date from a time.Time.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// UnmarshalJSON parses a backend date string. Empty strings and null
// decode to the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("unrecognized date %q", s)
}

// MarshalJSON encodes as a plain calendar date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}
