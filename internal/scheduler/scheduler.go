// Package scheduler runs the periodic full export of the price store.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/transfer"
)

// Exporter is the part of the transfer service the export job needs.
type Exporter interface {
	Export(ctx context.Context, format transfer.Format, cities ...string) (string, error)
}

// ExportJob writes full exports into a directory on a cron schedule.
type ExportJob struct {
	cron     *cron.Cron
	exporter Exporter
	dir      string
	format   transfer.Format
	baseCtx  context.Context
	now      func() time.Time
}

// NewExportJob creates an ExportJob writing format payloads into dir.
// FormatAuto is written as JSON.
func NewExportJob(baseCtx context.Context, exporter Exporter, dir string, format transfer.Format) *ExportJob {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if format == transfer.FormatAuto {
		format = transfer.FormatJSON
	}

	logger := cron.PrintfLogger(log.Default())
	return &ExportJob{
		cron:     cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger))),
		exporter: exporter,
		dir:      dir,
		format:   format,
		baseCtx:  baseCtx,
		now:      time.Now,
	}
}

// Schedule registers the export under a standard cron expression or descriptor such as "@daily".
func (j *ExportJob) Schedule(expr string) error {
	_, err := j.cron.AddFunc(expr, func() {
		path, err := j.Run(j.baseCtx)
		if err != nil {
			log.Printf("Scheduled export failed: %v", err)
			return
		}
		log.Printf("Scheduled export written to %s", path)
	})
	if err != nil {
		return fmt.Errorf("invalid export schedule %q: %w", expr, err)
	}
	return nil
}

// Run performs one export immediately and returns the written file path.
// The file is written under a temporary name and renamed, so readers never see
// a partial export.
func (j *ExportJob) Run(ctx context.Context) (string, error) {
	payload, err := j.exporter.Export(ctx, j.format)
	if err != nil {
		return "", fmt.Errorf("failed to export prices: %w", err)
	}

	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("prices-%s%s", j.now().UTC().Format("20060102T150405Z"), j.format.Extension())
	path := filepath.Join(j.dir, name)

	tmp, err := os.CreateTemp(j.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to finalize export file: %w", err)
	}

	return path, nil
}

// Start begins running scheduled exports in the background.
func (j *ExportJob) Start() {
	log.Printf("Export scheduler started (%s into %s)", j.format, j.dir)
	j.cron.Start()
}

// Stop halts the scheduler and waits for a running export to finish.
func (j *ExportJob) Stop() {
	<-j.cron.Stop().Done()
	log.Println("Export scheduler stopped")
}
