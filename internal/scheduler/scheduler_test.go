package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/transfer"
)

type stubExporter struct {
	payload string
	err     error
	format  transfer.Format
}

func (s *stubExporter) Export(_ context.Context, format transfer.Format, _ ...string) (string, error) {
	s.format = format
	return s.payload, s.err
}

func TestExportJob_Run(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	t.Run("writes a timestamped file in the configured format", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exports")
		exporter := &stubExporter{payload: "[]\n"}

		job := NewExportJob(context.Background(), exporter, dir, transfer.FormatTuple)
		job.now = func() time.Time { return fixed }

		path, err := job.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() returned unexpected error: %v", err)
		}

		want := filepath.Join(dir, "prices-20240501T123000Z.txt")
		if path != want {
			t.Errorf("Expected path %s, got %s", want, path)
		}
		if exporter.format != transfer.FormatTuple {
			t.Errorf("Expected tuple format, got %q", exporter.format)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read export: %v", err)
		}
		if string(data) != "[]\n" {
			t.Errorf("Expected payload '[]\\n', got %q", string(data))
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to list export dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("Expected only the export file, got %d entries", len(entries))
		}
	})

	t.Run("auto format exports JSON", func(t *testing.T) {
		exporter := &stubExporter{payload: "[]\n"}

		job := NewExportJob(context.Background(), exporter, t.TempDir(), transfer.FormatAuto)
		job.now = func() time.Time { return fixed }

		path, err := job.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() returned unexpected error: %v", err)
		}
		if filepath.Ext(path) != ".json" || exporter.format != transfer.FormatJSON {
			t.Errorf("Expected JSON export, got %s (%q)", path, exporter.format)
		}
	})

	t.Run("export failure writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		job := NewExportJob(context.Background(), &stubExporter{err: errors.New("locked")}, dir, transfer.FormatJSON)

		if _, err := job.Run(context.Background()); err == nil {
			t.Fatal("Expected error, got nil")
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("Expected empty export dir, got %d entries", len(entries))
		}
	})
}

func TestExportJob_Schedule(t *testing.T) {
	job := NewExportJob(context.Background(), &stubExporter{}, t.TempDir(), transfer.FormatJSON)

	if err := job.Schedule("@daily"); err != nil {
		t.Errorf("Schedule(@daily) returned unexpected error: %v", err)
	}
	if err := job.Schedule("not a schedule"); err == nil {
		t.Error("Expected error for invalid schedule")
	}

	job.Start()
	job.Stop()
}
