// Package report renders a PDF service report of the current timer state.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/akyairhashvil/kamreen/internal/util"
	"github.com/go-pdf/fpdf"
)

// DefaultPath names a report taken at at inside dir.
func DefaultPath(dir string, at time.Time) string {
	name := fmt.Sprintf("%s_report_%s.pdf", config.AppName, at.Format("20060102-1504"))
	return filepath.Join(dir, name)
}

// WriteFile renders the report to path, creating parent directories.
func WriteFile(path string, snap models.Snapshot, at time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Render(f, snap, at); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// Render writes the PDF for snap to w.
func Render(w io.Writer, snap models.Snapshot, at time.Time) error {
	pdf := build(snap, at)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func build(snap models.Snapshot, at time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Kamreen service report", true)
	pdf.SetCreator(config.AppName, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Kamreen Service Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Generated "+at.Format("2006-01-02 15:04"))
	pdf.Ln(12)

	// Service
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Service Interval")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Status: "+phaseLabel(snap.Phase))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Elapsed: %s of %s", util.FormatClock(snap.GlobalElapsed), util.FormatClock(snap.AlarmInterval)))
	pdf.Ln(6)
	if snap.GlobalRunning {
		pdf.Cell(0, 8, "Next service due in "+util.FormatDuration(snap.Remaining()))
		pdf.Ln(6)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Filter starts since last alert: %d", snap.FilterStartEvents))
	pdf.Ln(12)

	// Tanks
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Tanks")
	pdf.Ln(10)

	widths := []float64{25, 35, 35, 30, 55}
	headers := []string{"Tank", "Status", "Elapsed", "Filter", "Last paused"}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, c := range snap.Counters {
		paused := "-"
		if c.LastPausedAt != nil {
			paused = c.LastPausedAt.Format("2006-01-02 15:04:05")
		}
		row := []string{
			fmt.Sprintf("%d", c.ID),
			counterLabel(c.Phase()),
			util.FormatClock(c.ElapsedSeconds),
			fmt.Sprintf("%d", c.FilterClicks),
			paused,
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(snap.Pending) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Unacknowledged alerts: %d", len(snap.Pending)))
		pdf.Ln(6)
	}
	return pdf
}

func phaseLabel(p models.GlobalPhase) string {
	switch p {
	case models.GlobalRunning:
		return "Running"
	case models.GlobalAlarmFiring:
		return "Service due"
	default:
		return "Stopped"
	}
}

func counterLabel(p models.CounterPhase) string {
	switch p {
	case models.CounterRunning:
		return "Running"
	case models.CounterPaused:
		return "Paused"
	default:
		return "Empty"
	}
}
