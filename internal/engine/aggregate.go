package engine

import (
	"math"
	"time"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
)

// window is one trailing report window and the duration of its output unit.
type window struct {
	duration time.Duration
	unit     time.Duration
}

var (
	lastHour = window{duration: time.Hour, unit: time.Minute}
	lastDay  = window{duration: 24 * time.Hour, unit: time.Hour}
	lastWeek = window{duration: 7 * 24 * time.Hour, unit: time.Hour}
)

// aggregateWindow computes the store's uptime and downtime inside business
// hours for [ref - w.duration, ref], in the window's output unit.
//
// A window with no observation in or before it reports the raw window
// duration as downtime, without clipping to business hours; see DESIGN.md
// for the rationale behind this policy.
func aggregateWindow(w window, ref time.Time, obs []model.StoreStatus, sched Schedule) (uptime, downtime float64) {
	start := ref.Add(-w.duration)
	segs, ok := reconstruct(start, ref, obs)
	if !ok {
		return 0, round2(float64(w.duration) / float64(w.unit))
	}

	var up, down time.Duration
	for _, seg := range segs {
		d := businessDuration(seg.Start, seg.End, sched)
		if seg.Status == model.StatusActive {
			up += d
		} else {
			down += d
		}
	}
	return round2(float64(up) / float64(w.unit)), round2(float64(down) / float64(w.unit))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
