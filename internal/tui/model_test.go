package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/engine"
	"github.com/akyairhashvil/kamreen/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

var testStart = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func setupTestModel(t *testing.T, opts engine.Options, uiOpts Options) (Model, *engine.Engine) {
	t.Helper()
	opts.Logger = zerolog.Nop()
	if opts.Clock == nil {
		opts.Clock = engine.NewManualClock(testStart)
	}
	eng := engine.New(opts)
	if err := eng.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if uiOpts.Now == nil {
		uiOpts.Now = func() time.Time { return testStart }
	}
	return NewModel(eng, uiOpts), eng
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, key := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(key))
		m = next.(Model)
	}
	return m, cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg(testStart))
	return next.(Model), cmd
}

func TestNewModelIdle(t *testing.T) {
	m, _ := setupTestModel(t, engine.Options{}, Options{})
	if m.Ticking() {
		t.Fatalf("expected no tick chain while idle")
	}
	if m.Init() != nil {
		t.Fatalf("expected no initial command while idle")
	}
	if m.focus != config.DefaultFocusCounter {
		t.Fatalf("expected focus on tank %d, got %d", config.DefaultFocusCounter, m.focus)
	}
}

func TestNewModelResumesTicking(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{}, Options{})
	if err := eng.ActivateGlobal(); err != nil {
		t.Fatalf("ActivateGlobal failed: %v", err)
	}
	m = NewModel(eng, Options{})
	if !m.Ticking() || m.Init() == nil {
		t.Fatalf("expected tick chain for an active engine")
	}
}

func TestActivateNeedsConfirmation(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{}, Options{})

	m, _ = press(t, m, "a")
	if m.modal == nil || m.modal.Type() != ModalActivate {
		t.Fatalf("expected activate modal, got %#v", m.modal)
	}
	m, _ = press(t, m, "n")
	if m.modal != nil {
		t.Fatalf("expected modal closed")
	}
	if eng.Snapshot().GlobalRunning {
		t.Fatalf("declining must not start the service")
	}

	m, cmd := press(t, m, "a", "y")
	if !eng.Snapshot().GlobalRunning {
		t.Fatalf("expected service running after confirmation")
	}
	if !m.Ticking() || cmd == nil {
		t.Fatalf("expected tick chain to start")
	}

	m, _ = press(t, m, "a")
	if m.modal != nil {
		t.Fatalf("expected no modal when already running")
	}
}

func TestToggleWhileStoppedShowsNotice(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{}, Options{})

	m, cmd := press(t, m, "3")
	if cmd != nil {
		t.Fatalf("expected no command for a rejected toggle")
	}
	if m.status != config.StoppedNotice || !m.statusErr {
		t.Fatalf("expected stopped notice, got %q (err=%v)", m.status, m.statusErr)
	}
	if m.focus != 3 {
		t.Fatalf("expected focus to follow digit, got %d", m.focus)
	}
	if c, _ := eng.Snapshot().Counter(3); c.Running {
		t.Fatalf("counter must stay stopped")
	}
}

func TestTickChainFollowsEngineActivity(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{}, Options{})
	m, _ = press(t, m, "a", "y", "2")

	m, cmd := tick(t, m)
	if cmd == nil || !m.Ticking() {
		t.Fatalf("expected next tick to be scheduled")
	}
	snap := m.Snapshot()
	if snap.GlobalElapsed != 1 {
		t.Fatalf("expected global elapsed 1, got %d", snap.GlobalElapsed)
	}
	if c, _ := snap.Counter(2); c.ElapsedSeconds != 1 {
		t.Fatalf("expected tank 2 at 1s, got %d", c.ElapsedSeconds)
	}

	if err := eng.ResetAll(); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}
	m, cmd = tick(t, m)
	if cmd != nil || m.Ticking() {
		t.Fatalf("expected tick chain to stop when idle")
	}
	if m.Snapshot().GlobalRunning {
		t.Fatalf("expected dashboard to pick up the reset")
	}
}

func TestSnapshotMsgRestartsTicking(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{}, Options{})
	if err := eng.ActivateGlobal(); err != nil {
		t.Fatalf("ActivateGlobal failed: %v", err)
	}
	next, cmd := m.Update(SnapshotMsg{})
	m = next.(Model)
	if cmd == nil || !m.Ticking() {
		t.Fatalf("expected tick chain after external activation")
	}
	if !m.Snapshot().GlobalRunning {
		t.Fatalf("expected refreshed snapshot")
	}
}

func TestAlarmBlocksTogglesUntilAcknowledged(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{AlarmInterval: 2 * time.Second}, Options{})
	m, _ = press(t, m, "a", "y")
	m, _ = tick(t, m)
	m, _ = tick(t, m)

	if m.modal == nil || m.modal.Type() != ModalAlert {
		t.Fatalf("expected alarm modal, got %#v", m.modal)
	}
	if !strings.Contains(m.View(), config.AlarmTitle) {
		t.Fatalf("expected alarm title in view")
	}

	m, _ = press(t, m, "1")
	if c, _ := eng.Snapshot().Counter(1); c.Running {
		t.Fatalf("toggle must be blocked while the alert is open")
	}

	m, _ = press(t, m, "enter")
	if m.modal != nil {
		t.Fatalf("expected modal closed after acknowledgment")
	}
	snap := eng.Snapshot()
	if len(snap.Pending) != 0 || snap.Phase != models.GlobalRunning {
		t.Fatalf("expected running with nothing pending, got %+v", snap)
	}
}

func TestFilterAlertModal(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{}, Options{})
	m, _ = press(t, m, "a", "y", "1", "2")

	if m.modal == nil || m.modal.Type() != ModalAlert {
		t.Fatalf("expected filter modal")
	}
	if m.modal.Title() != config.FilterTitle {
		t.Fatalf("expected filter prompt, got %q", m.modal.Title())
	}
	m, _ = press(t, m, "esc")
	if m.modal != nil || eng.Snapshot().FilterAlerting {
		t.Fatalf("expected filter alert acknowledged")
	}
}

func TestFocusToggleAndClear(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{}, Options{})
	m, _ = press(t, m, "a", "y")

	m, _ = press(t, m, "left")
	if m.focus != config.FirstCounter+config.CounterCount-1 {
		t.Fatalf("expected focus to wrap to last tank, got %d", m.focus)
	}
	m, _ = press(t, m, "l", "l")
	if m.focus != 2 {
		t.Fatalf("expected focus on tank 2, got %d", m.focus)
	}

	m, _ = press(t, m, " ")
	if c, _ := eng.Snapshot().Counter(2); !c.Running {
		t.Fatalf("expected tank 2 running")
	}
	if m.status != "tank 2 started" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = press(t, m, "c")
	c, _ := eng.Snapshot().Counter(2)
	if c.Phase() != models.CounterEmpty {
		t.Fatalf("expected tank 2 cleared, got %+v", c)
	}
	if m.statusErr {
		t.Fatalf("unexpected error status %q", m.status)
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	m, eng := setupTestModel(t, engine.Options{}, Options{})
	m, _ = press(t, m, "a", "y", "4")

	m, _ = press(t, m, "R", "esc")
	if !eng.Snapshot().GlobalRunning {
		t.Fatalf("cancelled reset must not change state")
	}
	m, _ = press(t, m, "R", "y")
	snap := eng.Snapshot()
	if snap.GlobalRunning || snap.GlobalElapsed != 0 {
		t.Fatalf("expected stopped service, got %+v", snap)
	}
	for _, c := range snap.Counters {
		if c.Phase() != models.CounterEmpty {
			t.Fatalf("expected empty tanks after reset, got %+v", c)
		}
	}
	if m.status != "all timers reset" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestReportKey(t *testing.T) {
	var got models.Snapshot
	report := func(snap models.Snapshot, at time.Time) (string, error) {
		got = snap
		return "/tmp/kamreen_report.pdf", nil
	}
	m, _ := setupTestModel(t, engine.Options{}, Options{Report: report})

	m, cmd := press(t, m, "p")
	if cmd == nil {
		t.Fatalf("expected report command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if !strings.Contains(m.status, "/tmp/kamreen_report.pdf") {
		t.Fatalf("expected report path in status, got %q", m.status)
	}
	if len(got.Counters) != config.CounterCount {
		t.Fatalf("expected report to receive the snapshot")
	}

	failing := func(models.Snapshot, time.Time) (string, error) { return "", errors.New("disk full") }
	m, _ = setupTestModel(t, engine.Options{}, Options{Report: failing})
	m, cmd = press(t, m, "p")
	next, _ = m.Update(cmd())
	m = next.(Model)
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected report error in status, got %q", m.status)
	}
}

func TestReportUnavailable(t *testing.T) {
	m, _ := setupTestModel(t, engine.Options{}, Options{})
	m, cmd := press(t, m, "p")
	if cmd != nil || !m.statusErr {
		t.Fatalf("expected error status without a report writer")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := setupTestModel(t, engine.Options{}, Options{})
	if _, cmd := press(t, m, "q"); cmd == nil {
		t.Fatalf("expected quit command")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command for ctrl+c")
	}
	if _, ok := next.(Model); !ok {
		t.Fatalf("expected Model, got %T", next)
	}
}

func TestThemeKeyCycles(t *testing.T) {
	m, _ := setupTestModel(t, engine.Options{}, Options{Theme: "default"})
	m, _ = press(t, m, "t")
	if m.themeName != "dracula" || m.theme.Name != "Dracula" {
		t.Fatalf("expected dracula theme, got %q", m.themeName)
	}
	m, _ = press(t, m, "t")
	if m.themeName != "default" {
		t.Fatalf("expected theme to wrap, got %q", m.themeName)
	}
}

func TestUnknownThemeFallsBack(t *testing.T) {
	m, _ := setupTestModel(t, engine.Options{}, Options{Theme: "neon"})
	if m.themeName != "default" {
		t.Fatalf("expected default theme, got %q", m.themeName)
	}
}

func TestWindowSizeAdjustsBar(t *testing.T) {
	m, _ := setupTestModel(t, engine.Options{}, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	m = next.(Model)
	if m.progress.Width != config.MinBarWidth*3/2 {
		t.Fatalf("expected half-width bar, got %d", m.progress.Width)
	}
	next, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 20})
	m = next.(Model)
	if m.progress.Width != config.MinBarWidth {
		t.Fatalf("expected minimum bar width, got %d", m.progress.Width)
	}
	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if m.progress.Width != config.TargetBarWidth {
		t.Fatalf("expected target bar width, got %d", m.progress.Width)
	}
}
