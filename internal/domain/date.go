package domain

import (
	"fmt"
	"time"
)

// dateLayout is the storage and display layout for calendar dates
const dateLayout = "2006-01-02"

// Date is a calendar day without time-of-day or time zone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateIn returns the calendar day of t as seen from loc.
// A nil loc keeps t's location.
func DateIn(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	return DateOf(t)
}

// ParseDate parses a YYYY-MM-DD string. The empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero Date (no day recorded)
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String formats d as YYYY-MM-DD, or "" for the zero Date
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.midnight().Format(dateLayout)
}

// AddDays returns the date n days after d (n may be negative)
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// DaysSince returns the number of calendar days from other to d
func (d Date) DaysSince(other Date) int {
	// UTC midnights are exactly 24h apart, so integer division is exact
	return int(d.midnight().Sub(other.midnight()).Hours() / 24)
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	return d.DaysSince(other) < 0
}

// Weekday returns the day of the week of d
func (d Date) Weekday() time.Weekday {
	return d.midnight().Weekday()
}

// WeekStart returns the most recent day on or before d that falls on start
func (d Date) WeekStart(start time.Weekday) Date {
	offset := (int(d.Weekday()) - int(start) + 7) % 7
	return d.AddDays(-offset)
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// StartIn returns the instant d begins in loc (UTC when loc is nil)
func (d Date) StartIn(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}
