// Package worker runs report generation jobs in the background, decoupling
// the trigger endpoint from the (potentially long) computation.
package worker

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/engine"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/store"
)

// ReportGenerator computes the rows of one report. Satisfied by
// *engine.Engine; tests substitute their own.
type ReportGenerator interface {
	ComputeReport(ctx context.Context) ([]engine.ReportRow, error)
}

// Pool is a fixed-size worker pool consuming report ids from a channel. A
// report's status is flipped to Complete only after its CSV artifact is fully
// written; any failure marks it Failed instead.
type Pool struct {
	size      int
	jobs      chan string
	store     store.Store
	generator ReportGenerator
	outputDir string
}

// NewPool creates a worker pool writing artifacts under outputDir.
func NewPool(size int, s store.Store, gen ReportGenerator, outputDir string) *Pool {
	return &Pool{
		size:      size,
		jobs:      make(chan string, size),
		store:     s,
		generator: gen,
		outputDir: outputDir,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.worker(ctx, i)
	}
}

// Dispatch queues a report for generation.
func (p *Pool) Dispatch(reportID string) {
	p.jobs <- reportID
}

func (p *Pool) worker(ctx context.Context, id int) {
	log.Printf("Report worker %d started", id)
	for {
		select {
		case reportID := <-p.jobs:
			log.Printf("Report worker %d generating report %s", id, reportID)
			p.generate(ctx, reportID)
		case <-ctx.Done():
			log.Printf("Report worker %d shutting down", id)
			return
		}
	}
}

// generate runs the engine and materializes the outcome on the report record.
func (p *Pool) generate(ctx context.Context, reportID string) {
	rows, err := p.generator.ComputeReport(ctx)
	if err != nil {
		log.Printf("Error generating report %s: %v", reportID, err)
		p.fail(ctx, reportID)
		return
	}

	path := filepath.Join(p.outputDir, fmt.Sprintf("report_%s.csv", reportID))
	if err := writeReportFile(path, rows); err != nil {
		log.Printf("Error writing report %s: %v", reportID, err)
		p.fail(ctx, reportID)
		return
	}

	if err := p.store.CompleteReport(ctx, reportID, path); err != nil {
		log.Printf("Error marking report %s complete: %v", reportID, err)
	}
}

func (p *Pool) fail(ctx context.Context, reportID string) {
	if err := p.store.FailReport(ctx, reportID); err != nil {
		log.Printf("Error marking report %s failed: %v", reportID, err)
	}
}

// writeReportFile writes the header and one row per store.
func writeReportFile(path string, rows []engine.ReportRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(engine.Header()); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.StoreID,
			formatCell(row.UptimeLastHour),
			formatCell(row.UptimeLastDay),
			formatCell(row.UptimeLastWeek),
			formatCell(row.DowntimeLastHour),
			formatCell(row.DowntimeLastDay),
			formatCell(row.DowntimeLastWeek),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
