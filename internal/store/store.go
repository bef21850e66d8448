package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/engine"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
)

// insertBatchSize bounds the row count per INSERT during ingestion.
const insertBatchSize = 500

// Store defines the persistence operations the service needs. It embeds the
// engine's read-only snapshot view and adds ingestion and the report
// lifecycle.
type Store interface {
	engine.DataSource

	InsertObservations(ctx context.Context, rows []model.StoreStatus) error
	InsertBusinessHours(ctx context.Context, rows []model.BusinessHour) error
	InsertTimezones(ctx context.Context, rows []model.StoreTimezone) error

	// CreateReport registers a new report in the Running state.
	CreateReport(ctx context.Context, reportID string) error
	GetReport(ctx context.Context, reportID string) (model.Report, error)
	CompleteReport(ctx context.Context, reportID, csvPath string) error
	FailReport(ctx context.Context, reportID string) error
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ListStoreIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&model.StoreStatus{}).
		Distinct("store_id").
		Order("store_id").
		Pluck("store_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list store ids: %w", err)
	}
	return ids, nil
}

func (s *gormStore) ListObservations(ctx context.Context, storeID string) ([]model.StoreStatus, error) {
	var rows []model.StoreStatus
	err := s.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("timestamp_utc ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list observations for store %s: %w", storeID, err)
	}
	return rows, nil
}

func (s *gormStore) ListBusinessHours(ctx context.Context, storeID string) ([]model.BusinessHour, error) {
	var rows []model.BusinessHour
	err := s.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list business hours for store %s: %w", storeID, err)
	}
	return rows, nil
}

func (s *gormStore) LookupTimezone(ctx context.Context, storeID string) (string, bool, error) {
	var row model.StoreTimezone
	err := s.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup timezone for store %s: %w", storeID, err)
	}
	return row.TimezoneStr, true, nil
}

func (s *gormStore) MaxObservedTimestamp(ctx context.Context) (time.Time, bool, error) {
	var row model.StoreStatus
	err := s.db.WithContext(ctx).
		Order("timestamp_utc DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("max observed timestamp: %w", err)
	}
	return row.TimestampUTC.UTC(), true, nil
}

func (s *gormStore) InsertObservations(ctx context.Context, rows []model.StoreStatus) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return fmt.Errorf("insert observations: %w", err)
	}
	return nil
}

func (s *gormStore) InsertBusinessHours(ctx context.Context, rows []model.BusinessHour) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return fmt.Errorf("insert business hours: %w", err)
	}
	return nil
}

func (s *gormStore) InsertTimezones(ctx context.Context, rows []model.StoreTimezone) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return fmt.Errorf("insert timezones: %w", err)
	}
	return nil
}

func (s *gormStore) CreateReport(ctx context.Context, reportID string) error {
	report := model.Report{ReportID: reportID, Status: model.ReportRunning}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return fmt.Errorf("create report %s: %w", reportID, err)
	}
	return nil
}

func (s *gormStore) GetReport(ctx context.Context, reportID string) (model.Report, error) {
	var report model.Report
	err := s.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		First(&report).Error
	if err != nil {
		return model.Report{}, err
	}
	return report, nil
}

func (s *gormStore) CompleteReport(ctx context.Context, reportID, csvPath string) error {
	err := s.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("report_id = ?", reportID).
		Updates(map[string]any{"status": model.ReportComplete, "csv_path": csvPath}).Error
	if err != nil {
		return fmt.Errorf("complete report %s: %w", reportID, err)
	}
	return nil
}

func (s *gormStore) FailReport(ctx context.Context, reportID string) error {
	err := s.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("report_id = ?", reportID).
		Update("status", model.ReportFailed).Error
	if err != nil {
		return fmt.Errorf("fail report %s: %w", reportID, err)
	}
	return nil
}
