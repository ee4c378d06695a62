package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/kamreen/internal/models"
)

func sampleSnapshot() models.Snapshot {
	paused := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return models.Snapshot{
		Phase:         models.GlobalRunning,
		GlobalElapsed: 3723,
		GlobalRunning: true,
		AlarmInterval: 14400,
		Counters: []models.Counter{
			{ID: 1, ElapsedSeconds: 600, Running: true, FilterClicks: 2},
			{ID: 2, ElapsedSeconds: 90, FilterClicks: 1, LastPausedAt: &paused},
			{ID: 3, Empty: true},
		},
		FilterStartEvents: 1,
		Pending:           []models.AlertKind{models.AlertFilter},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleSnapshot(), time.Now()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", buf.Bytes()[:8])
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.pdf")
	if err := WriteFile(path, sampleSnapshot(), time.Now()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected report file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty report")
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 14, 8, 5, 0, 0, time.UTC)
	got := DefaultPath(dir, at)
	if filepath.Dir(got) != dir {
		t.Fatalf("expected report under %s, got %s", dir, got)
	}
	if filepath.Base(got) != "kamreen_report_20260314-0805.pdf" {
		t.Fatalf("unexpected file name %s", filepath.Base(got))
	}
}

func TestLabels(t *testing.T) {
	if phaseLabel(models.GlobalAlarmFiring) != "Service due" || phaseLabel("") != "Stopped" {
		t.Fatalf("unexpected phase labels")
	}
	if counterLabel(models.CounterPaused) != "Paused" || counterLabel(models.CounterEmpty) != "Empty" {
		t.Fatalf("unexpected counter labels")
	}
}
