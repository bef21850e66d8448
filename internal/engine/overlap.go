package engine

import (
	"time"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/parse"
)

// businessDuration returns the portion of [segStart, segEnd) that falls
// inside the schedule's business hours. Both endpoints are converted to the
// store's zone and every rule is anchored to a concrete local calendar date
// with time.Date, so DST transitions resolve to the wall-clock rule times of
// each affected day rather than a fixed offset.
//
// The day walk starts one day before the segment's first local date so an
// overnight rule anchored to the previous date still contributes its
// spill-over. Overlapping rules are summed without deduplication.
func businessDuration(segStart, segEnd time.Time, sched Schedule) time.Duration {
	localStart := segStart.In(sched.Location)
	localEnd := segEnd.In(sched.Location)

	var total time.Duration
	for day := previousDay(startOfDay(localStart)); !day.After(localEnd); day = nextDay(day) {
		weekday := parse.MondayWeekday(day.Weekday())
		for _, rule := range sched.Rules {
			if rule.Day != weekday {
				continue
			}
			ruleStart := civilInstant(day, rule.Start)
			var ruleEnd time.Time
			if rule.End <= rule.Start {
				ruleEnd = civilInstant(nextDay(day), rule.End)
			} else {
				ruleEnd = civilInstant(day, rule.End)
			}
			total += intersect(ruleStart, ruleEnd, localStart, localEnd)
		}
	}
	return total
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func previousDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()-1, 0, 0, 0, 0, day.Location())
}

func nextDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
}

// civilInstant anchors a seconds-since-midnight wall-clock time to a concrete
// calendar date in the day's zone.
func civilInstant(day time.Time, secs int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, secs, 0, day.Location())
}

func intersect(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.After(start) {
		return end.Sub(start)
	}
	return 0
}
