package engine

import (
	"sort"
	"time"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
)

// Segment is a maximal sub-interval of a window over which the store's
// status is assumed constant.
type Segment struct {
	Start  time.Time
	End    time.Time
	Status string
}

// reconstruct partitions [start, end] into constant-status segments using
// last-observed-status-carried-forward between samples. The most recent
// observation before the window, when one exists, anchors the state at the
// window start; with no anchor the first in-window status is carried
// backward instead (the state before the first sample is then unknown).
// Zero-length segments are dropped, so the returned segments tile the window
// exactly. ok is false when no observation falls in or before the window.
func reconstruct(start, end time.Time, obs []model.StoreStatus) (segs []Segment, ok bool) {
	sorted := make([]model.StoreStatus, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimestampUTC.Before(sorted[j].TimestampUTC)
	})

	anchorStatus := ""
	var in []model.StoreStatus
	for _, o := range sorted {
		switch {
		case o.TimestampUTC.Before(start):
			anchorStatus = o.Status
		case !o.TimestampUTC.After(end):
			in = append(in, o)
		}
	}

	if len(in) == 0 {
		if anchorStatus == "" {
			return nil, false
		}
		return []Segment{{Start: start, End: end, Status: anchorStatus}}, true
	}

	headStatus := in[0].Status
	if anchorStatus != "" {
		headStatus = anchorStatus
	}
	segs = appendSegment(segs, start, in[0].TimestampUTC, headStatus)
	for i := 1; i < len(in); i++ {
		segs = appendSegment(segs, in[i-1].TimestampUTC, in[i].TimestampUTC, in[i-1].Status)
	}
	segs = appendSegment(segs, in[len(in)-1].TimestampUTC, end, in[len(in)-1].Status)
	return segs, true
}

func appendSegment(segs []Segment, start, end time.Time, status string) []Segment {
	if !end.After(start) {
		return segs
	}
	return append(segs, Segment{Start: start, End: end, Status: status})
}
