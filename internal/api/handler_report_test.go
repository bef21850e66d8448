package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/engine"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/store"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/worker"
)

type noopGenerator struct{}

func (noopGenerator) ComputeReport(ctx context.Context) ([]engine.ReportRow, error) {
	return nil, nil
}

func setupReportRouter(t *testing.T) (*gin.Engine, store.Store, *worker.Pool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api_test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.StoreStatus{}, &model.Report{}))
	s := store.NewGormStore(db)

	// The pool is not started: dispatched jobs stay buffered, keeping
	// reports in the Running state for the duration of the test.
	pool := worker.NewPool(1, s, noopGenerator{}, t.TempDir())

	r := gin.New()
	handler := NewHandler(s, pool)
	r.POST("/api/trigger_report", handler.TriggerReport)
	r.GET("/api/get_report", handler.GetReport)
	r.GET("/api/stores", handler.GetStores)
	return r, s, pool
}

func TestTriggerReport(t *testing.T) {
	router, s, _ := setupReportRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/trigger_report", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ReportID string `json:"report_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.ReportID)

	report, err := s.GetReport(context.Background(), body.ReportID)
	require.NoError(t, err)
	assert.Equal(t, model.ReportRunning, report.Status)
}

func TestGetReportMissingParam(t *testing.T) {
	router, _, _ := setupReportRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/get_report", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReportNotFound(t *testing.T) {
	router, _, _ := setupReportRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/get_report?report_id=nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReportRunning(t *testing.T) {
	router, s, _ := setupReportRouter(t)
	require.NoError(t, s.CreateReport(context.Background(), "r-running"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/get_report?report_id=r-running", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ReportRunning, w.Body.String())
}

func TestGetReportComplete(t *testing.T) {
	router, s, _ := setupReportRouter(t)
	ctx := context.Background()

	csvPath := filepath.Join(t.TempDir(), "report_r-done.csv")
	content := strings.Join(engine.Header(), ",") + "\nS1,60.00,15.00,152.00,0.00,0.00,0.00\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	require.NoError(t, s.CreateReport(ctx, "r-done"))
	require.NoError(t, s.CompleteReport(ctx, "r-done", csvPath))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/get_report?report_id=r-done", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report_r-done.csv")
	assert.Equal(t, content, w.Body.String())
}

func TestGetReportFailed(t *testing.T) {
	router, s, _ := setupReportRouter(t)
	ctx := context.Background()

	require.NoError(t, s.CreateReport(ctx, "r-bad"))
	require.NoError(t, s.FailReport(ctx, "r-bad"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/get_report?report_id=r-bad", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetStores(t *testing.T) {
	router, s, _ := setupReportRouter(t)

	err := s.InsertObservations(context.Background(), []model.StoreStatus{
		{StoreID: "S2", Status: model.StatusActive},
		{StoreID: "S1", Status: model.StatusInactive},
		{StoreID: "S1", Status: model.StatusActive},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/stores", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		StoreIDs []string `json:"store_ids"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"S1", "S2"}, body.StoreIDs)
}
