package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Calendar day in the service area's local calendar, stored as
// an ISO-8601 string so it can key grid maps directly.
type Date string

// Parse a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}
	return Date(t.Format(dateLayout)), nil
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) String() string { return string(d) }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}
