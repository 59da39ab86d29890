package timeutil

import (
	"fmt"
	"time"
)

// DefaultTimezone is the single civil timezone all extracted timestamps are
// anchored to. The service operates in one region; there is no multi-timezone
// reasoning.
const DefaultTimezone = "America/New_York"

// ResolveLocation loads the operating timezone with a UTC fallback.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC, true
	}
	return loc, false
}

// ParseDateTime parses a datetime in either RFC3339 (with explicit offset) or
// offset-less layouts anchored to the provided location.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("time value is required")
	}

	// If an explicit offset exists, preserve it.
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time: %s", value)
}

// RollForwardYear applies the year-rollover correction: when the date-only
// component of t falls strictly before today's date, the timestamp is pushed
// exactly one year forward, keeping its time-of-day and offset. Screenshots
// rarely carry a year, so a "past" date almost always means next year.
func RollForwardYear(t, now time.Time, loc *time.Location) time.Time {
	tDay := dateOnly(t, loc)
	nowDay := dateOnly(now, loc)

	if tDay.Before(nowDay) {
		return t.AddDate(1, 0, 0)
	}
	return t
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
