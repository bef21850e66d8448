// Package ingest seeds the database from the three CSV exports the
// monitoring pipeline produces: store_status.csv, business_hours.csv and
// timezones.csv.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/config"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/parse"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/store"
)

// Loader reads the seed CSV files and writes them to the store.
type Loader struct {
	cfg   config.IngestConfig
	store store.Store
}

// NewLoader creates a CSV loader.
func NewLoader(cfg config.IngestConfig, s store.Store) *Loader {
	return &Loader{cfg: cfg, store: s}
}

// Run loads all three files. A missing file is skipped with a warning, like
// the upstream exports occasionally omitting one; a malformed row aborts the
// whole load identifying the record.
func (l *Loader) Run(ctx context.Context) error {
	if err := l.loadFile(ctx, l.cfg.StoreStatusCSV, l.loadObservations); err != nil {
		return err
	}
	if err := l.loadFile(ctx, l.cfg.BusinessHoursCSV, l.loadBusinessHours); err != nil {
		return err
	}
	if err := l.loadFile(ctx, l.cfg.TimezonesCSV, l.loadTimezones); err != nil {
		return err
	}
	return nil
}

func (l *Loader) loadFile(ctx context.Context, path string, load func(context.Context, string, *csv.Reader) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Printf("Warning: %s not found. Skipping...", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	log.Printf("Loading data from %s...", path)
	r := csv.NewReader(f)
	if err := load(ctx, path, r); err != nil {
		return err
	}
	return nil
}

// columnIndex maps the required column names to their positions in the
// header row, tolerating reordered or extra columns.
func columnIndex(path string, r *csv.Reader, required []string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no header row", parse.ErrMalformedInput, path)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %s missing column %q", parse.ErrMalformedInput, path, name)
		}
	}
	return idx, nil
}

func (l *Loader) loadObservations(ctx context.Context, path string, r *csv.Reader) error {
	idx, err := columnIndex(path, r, []string{"store_id", "timestamp_utc", "status"})
	if err != nil {
		return err
	}

	var rows []model.StoreStatus
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", parse.ErrMalformedInput, path, line, err)
		}
		ts, err := parse.Timestamp(record[idx["timestamp_utc"]])
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
		status, err := parse.Status(record[idx["status"]])
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
		rows = append(rows, model.StoreStatus{
			StoreID:      record[idx["store_id"]],
			TimestampUTC: ts,
			Status:       status,
		})
	}

	if err := l.store.InsertObservations(ctx, rows); err != nil {
		return err
	}
	log.Printf("Loaded %d rows from %s.", len(rows), path)
	return nil
}

func (l *Loader) loadBusinessHours(ctx context.Context, path string, r *csv.Reader) error {
	idx, err := columnIndex(path, r, []string{"store_id", "day_of_week", "start_time_local", "end_time_local"})
	if err != nil {
		return err
	}

	var rows []model.BusinessHour
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", parse.ErrMalformedInput, path, line, err)
		}
		day, err := parse.DayOfWeek(record[idx["day_of_week"]])
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
		start := record[idx["start_time_local"]]
		if _, err := parse.CivilTime(start); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
		end := record[idx["end_time_local"]]
		if _, err := parse.CivilTime(end); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
		rows = append(rows, model.BusinessHour{
			StoreID:        record[idx["store_id"]],
			DayOfWeek:      day,
			StartTimeLocal: start,
			EndTimeLocal:   end,
		})
	}

	if err := l.store.InsertBusinessHours(ctx, rows); err != nil {
		return err
	}
	log.Printf("Loaded %d rows from %s.", len(rows), path)
	return nil
}

func (l *Loader) loadTimezones(ctx context.Context, path string, r *csv.Reader) error {
	idx, err := columnIndex(path, r, []string{"store_id", "timezone_str"})
	if err != nil {
		return err
	}

	var rows []model.StoreTimezone
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", parse.ErrMalformedInput, path, line, err)
		}
		rows = append(rows, model.StoreTimezone{
			StoreID:     record[idx["store_id"]],
			TimezoneStr: record[idx["timezone_str"]],
		})
	}

	if err := l.store.InsertTimezones(ctx, rows); err != nil {
		return err
	}
	log.Printf("Loaded %d rows from %s.", len(rows), path)
	return nil
}
