package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/config"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/parse"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ingest_test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.StoreStatus{},
		&model.BusinessHour{},
		&model.StoreTimezone{},
	))
	return store.NewGormStore(db)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config.IngestConfig{
		StoreStatusCSV: writeFile(t, dir, "store_status.csv",
			"store_id,timestamp_utc,status\n"+
				"S1,2023-01-23 14:30:00.000000 UTC,active\n"+
				"S1,2023-01-23 15:10:00.000000 UTC,inactive\n"),
		BusinessHoursCSV: writeFile(t, dir, "business_hours.csv",
			"store_id,day_of_week,start_time_local,end_time_local\n"+
				"S1,0,09:00:00,17:00:00\n"),
		TimezonesCSV: writeFile(t, dir, "timezones.csv",
			"store_id,timezone_str\n"+
				"S1,America/Denver\n"),
	}

	s := newTestStore(t)
	loader := NewLoader(cfg, s)
	require.NoError(t, loader.Run(context.Background()))

	obs, err := s.ListObservations(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, model.StatusActive, obs[0].Status)
	assert.True(t, obs[0].TimestampUTC.Equal(time.Date(2023, 1, 23, 14, 30, 0, 0, time.UTC)))

	rules, err := s.ListBusinessHours(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 0, rules[0].DayOfWeek)
	assert.Equal(t, "09:00:00", rules[0].StartTimeLocal)

	tz, ok, err := s.LookupTimezone(context.Background(), "S1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "America/Denver", tz)
}

func TestLoaderSkipsMissingFiles(t *testing.T) {
	cfg := config.IngestConfig{
		StoreStatusCSV:   filepath.Join(t.TempDir(), "nope.csv"),
		BusinessHoursCSV: "",
		TimezonesCSV:     "",
	}

	loader := NewLoader(cfg, newTestStore(t))
	assert.NoError(t, loader.Run(context.Background()))
}

func TestLoaderRejectsMalformedRows(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "bad timestamp",
			file: "store_status.csv",
			content: "store_id,timestamp_utc,status\n" +
				"S1,yesterday,active\n",
		},
		{
			name: "bad status",
			file: "store_status.csv",
			content: "store_id,timestamp_utc,status\n" +
				"S1,2023-01-23 14:30:00.000000 UTC,sleeping\n",
		},
		{
			name:    "missing column",
			file:    "store_status.csv",
			content: "store_id,status\nS1,active\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.IngestConfig{
				StoreStatusCSV: writeFile(t, t.TempDir(), tc.file, tc.content),
			}
			loader := NewLoader(cfg, newTestStore(t))

			err := loader.Run(context.Background())
			assert.ErrorIs(t, err, parse.ErrMalformedInput)
		})
	}
}

func TestLoaderRejectsBadBusinessHours(t *testing.T) {
	cfg := config.IngestConfig{
		BusinessHoursCSV: writeFile(t, t.TempDir(), "business_hours.csv",
			"store_id,day_of_week,start_time_local,end_time_local\n"+
				"S1,9,09:00:00,17:00:00\n"),
	}
	loader := NewLoader(cfg, newTestStore(t))

	err := loader.Run(context.Background())
	assert.ErrorIs(t, err, parse.ErrMalformedInput)
}
