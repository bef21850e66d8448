package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/parse"
)

// ErrUnknownTimezone reports a timezone assignment naming a zone the runtime
// cannot load. Only a missing assignment falls back to the default zone; an
// invalid one is a hard error.
var ErrUnknownTimezone = errors.New("unknown timezone")

// Rule is one resolved opening interval for a weekday, expressed in seconds
// since local midnight. End <= Start denotes an overnight interval that runs
// into the next calendar day.
type Rule struct {
	Day   int // 0=Monday .. 6=Sunday
	Start int
	End   int
}

// Schedule is a store's resolved weekly business hours and timezone.
type Schedule struct {
	Location *time.Location
	Rules    []Rule
}

// fullDayEnd is 23:59:59, the synthesized "always open" closing time.
const fullDayEnd = 23*3600 + 59*60 + 59

// resolveSchedule turns a store's raw rules and timezone assignment into a
// Schedule. Weekdays with no explicit rule are treated as always open
// (00:00:00-23:59:59), which also covers stores with no rules at all.
func (e *Engine) resolveSchedule(ctx context.Context, storeID string) (Schedule, error) {
	tzName := e.defaultTimezone
	if tz, ok, err := e.src.LookupTimezone(ctx, storeID); err != nil {
		return Schedule{}, fmt.Errorf("lookup timezone: %w", err)
	} else if ok {
		tzName = tz
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, tzName)
	}

	raw, err := e.src.ListBusinessHours(ctx, storeID)
	if err != nil {
		return Schedule{}, fmt.Errorf("list business hours: %w", err)
	}

	rules := make([]Rule, 0, len(raw)+7)
	var seen [7]bool
	for _, bh := range raw {
		if bh.DayOfWeek < 0 || bh.DayOfWeek > 6 {
			return Schedule{}, fmt.Errorf("%w: day_of_week %d", parse.ErrMalformedInput, bh.DayOfWeek)
		}
		start, err := parse.CivilTime(bh.StartTimeLocal)
		if err != nil {
			return Schedule{}, fmt.Errorf("business hours for day %d: %w", bh.DayOfWeek, err)
		}
		end, err := parse.CivilTime(bh.EndTimeLocal)
		if err != nil {
			return Schedule{}, fmt.Errorf("business hours for day %d: %w", bh.DayOfWeek, err)
		}
		rules = append(rules, Rule{Day: bh.DayOfWeek, Start: start, End: end})
		seen[bh.DayOfWeek] = true
	}
	for day := range seen {
		if !seen[day] {
			rules = append(rules, Rule{Day: day, Start: 0, End: fullDayEnd})
		}
	}

	return Schedule{Location: loc, Rules: rules}, nil
}
