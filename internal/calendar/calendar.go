// Package calendar converts instants to calendar days and computes week boundaries.
//
// A calendar day is represented as a time.Time at midnight UTC, so day arithmetic
// never crosses a DST transition. Callers pick the timezone in which an instant is
// interpreted when converting it to a day.
package calendar

import (
	"errors"
	"strings"
	"time"
)

// DayLayout is the wire and storage format of a calendar day.
const DayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD or RFC 3339 timestamp")

// Day strips the time of day from t as observed in loc.
// A nil loc means UTC.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse accepts a plain date ("2025-03-12") or an RFC 3339 timestamp and returns the
// calendar day. Timestamps are interpreted in loc (zone-less ones are read as loc wall
// time); plain dates are taken as-is.
func Parse(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	d, err := time.Parse(DayLayout, value)
	if err == nil {
		return d, nil
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return Day(t, loc), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// Format renders a calendar day as YYYY-MM-DD.
func Format(day time.Time) string {
	return day.Format(DayLayout)
}

// AddDays moves a calendar day by n days.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// WeekStartMonday returns the Monday on or before day (ISO week start).
// Sunday belongs to the week that began six days earlier.
func WeekStartMonday(day time.Time) time.Time {
	weekday := int(day.Weekday())
	offset := 1 - weekday
	if weekday == 0 {
		offset = -6
	}
	return AddDays(day, offset)
}

// WeekStartSunday returns the Sunday on or before day.
func WeekStartSunday(day time.Time) time.Time {
	return AddDays(day, -int(day.Weekday()))
}

// Week returns the seven days starting at start.
func Week(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}
