package parse

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
)

// ErrMalformedInput marks records the loader or report engine cannot
// interpret. Callers wrap it with the offending record's context and check it
// with errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// timestampLayouts are the accepted observation timestamp formats. The first
// matches the raw poller export ("2023-01-25 18:13:33.341098 UTC").
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999 UTC",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Timestamp parses an observation timestamp and normalizes it to UTC.
func Timestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrMalformedInput, s)
}

// CivilTime parses an "HH:MM:SS" wall-clock time into seconds since local
// midnight.
func CivilTime(s string) (int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("%w: civil time %q", ErrMalformedInput, s)
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// DayOfWeek parses a Monday-based day number (0=Monday .. 6=Sunday).
func DayOfWeek(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 0 || day > 6 {
		return 0, fmt.Errorf("%w: day_of_week %q", ErrMalformedInput, s)
	}
	return day, nil
}

// Status validates a raw observation status value.
func Status(s string) (string, error) {
	switch s {
	case model.StatusActive, model.StatusInactive:
		return s, nil
	}
	return "", fmt.Errorf("%w: status %q", ErrMalformedInput, s)
}

// MondayWeekday converts Go's Sunday-based weekday to the dataset's
// Monday-based numbering.
func MondayWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}
