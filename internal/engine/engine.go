// Package engine implements the uptime/downtime estimation core: it
// reconstructs a continuous status timeline from sparse poll observations,
// clips it against each store's local business hours, and aggregates the
// result over the three trailing report windows.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/parse"
)

// DataSource is the immutable snapshot of monitoring data a report is
// computed from. The engine only reads; implementations decide how the
// snapshot is materialized.
type DataSource interface {
	// ListStoreIDs returns every distinct store id known to the
	// observation feed. Order is not required.
	ListStoreIDs(ctx context.Context) ([]string, error)

	// ListObservations returns the store's status observations. The engine
	// sorts them itself, so the source may return them in any order.
	ListObservations(ctx context.Context, storeID string) ([]model.StoreStatus, error)

	// ListBusinessHours returns the store's weekly opening rules, possibly
	// none.
	ListBusinessHours(ctx context.Context, storeID string) ([]model.BusinessHour, error)

	// LookupTimezone returns the store's IANA zone id; ok is false when the
	// store has no assignment.
	LookupTimezone(ctx context.Context, storeID string) (tz string, ok bool, err error)

	// MaxObservedTimestamp returns the newest observation timestamp across
	// all stores; ok is false when there are no observations at all.
	MaxObservedTimestamp(ctx context.Context) (ts time.Time, ok bool, err error)
}

// ReportRow is one store's uptime/downtime totals. The hour window is
// reported in minutes, the day and week windows in hours, all rounded to two
// decimals.
type ReportRow struct {
	StoreID          string
	UptimeLastHour   float64
	UptimeLastDay    float64
	UptimeLastWeek   float64
	DowntimeLastHour float64
	DowntimeLastDay  float64
	DowntimeLastWeek float64
}

// Header is the fixed first row of the report artifact.
func Header() []string {
	return []string{
		"store_id",
		"uptime_last_hour", "uptime_last_day", "uptime_last_week",
		"downtime_last_hour", "downtime_last_day", "downtime_last_week",
	}
}

// Engine computes uptime reports from a DataSource snapshot.
type Engine struct {
	src             DataSource
	defaultTimezone string
	parallelism     int
}

// New creates an engine. defaultTimezone is applied to stores with no
// timezone assignment; parallelism bounds the number of stores computed
// concurrently.
func New(src DataSource, defaultTimezone string, parallelism int) *Engine {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &Engine{
		src:             src,
		defaultTimezone: defaultTimezone,
		parallelism:     parallelism,
	}
}

// ComputeReport produces one row per known store, sorted by store id. All
// three windows are anchored at the newest observation across all stores. An
// empty observation feed yields an empty report. Any per-store failure fails
// the whole report.
func (e *Engine) ComputeReport(ctx context.Context) ([]ReportRow, error) {
	ref, ok, err := e.src.MaxObservedTimestamp(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve reference instant: %w", err)
	}
	if !ok {
		return []ReportRow{}, nil
	}

	storeIDs, err := e.src.ListStoreIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	sort.Strings(storeIDs)

	rows := make([]ReportRow, len(storeIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, storeID := range storeIDs {
		i, storeID := i, storeID
		g.Go(func() error {
			row, err := e.computeStore(gctx, storeID, ref)
			if err != nil {
				return fmt.Errorf("store %s: %w", storeID, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// computeStore resolves the store's schedule once and aggregates each of the
// three trailing windows.
func (e *Engine) computeStore(ctx context.Context, storeID string, ref time.Time) (ReportRow, error) {
	sched, err := e.resolveSchedule(ctx, storeID)
	if err != nil {
		return ReportRow{}, err
	}

	obs, err := e.src.ListObservations(ctx, storeID)
	if err != nil {
		return ReportRow{}, fmt.Errorf("list observations: %w", err)
	}
	for _, o := range obs {
		if _, err := parse.Status(o.Status); err != nil {
			return ReportRow{}, fmt.Errorf("observation %d: %w", o.ID, err)
		}
	}

	row := ReportRow{StoreID: storeID}
	row.UptimeLastHour, row.DowntimeLastHour = aggregateWindow(lastHour, ref, obs, sched)
	row.UptimeLastDay, row.DowntimeLastDay = aggregateWindow(lastDay, ref, obs, sched)
	row.UptimeLastWeek, row.DowntimeLastWeek = aggregateWindow(lastWeek, ref, obs, sched)
	return row, nil
}
