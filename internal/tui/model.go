package tui

import (
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/engine"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Engine is the part of the timer engine the dashboard drives.
type Engine interface {
	Snapshot() models.Snapshot
	Active() bool
	Tick() bool
	ActivateGlobal() error
	ResetAll() error
	ToggleCounter(id int) error
	ClearCounter(id int) error
	Acknowledge(kind models.AlertKind)
}

// ReportFunc writes a service report for snap and returns where it went.
type ReportFunc func(snap models.Snapshot, at time.Time) (string, error)

// Options configures the dashboard.
type Options struct {
	Theme  string
	Report ReportFunc
	Now    func() time.Time
}

// Model is the root bubbletea model. The engine is the source of truth;
// snap is the copy rendered by View.
type Model struct {
	engine    Engine
	keys      *Keymap
	themeName string
	theme     Theme
	progress  progress.Model
	report    ReportFunc
	now       func() time.Time

	snap      models.Snapshot
	focus     int
	viewMode  ViewMode
	modal     ModalState
	status    string
	statusErr bool
	ticking   bool
	width     int
	height    int
}

func NewModel(eng Engine, opts Options) Model {
	name := opts.Theme
	if _, ok := Themes[name]; !ok {
		name = "default"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = config.TargetBarWidth

	m := Model{
		engine:    eng,
		keys:      defaultKeymap(),
		themeName: name,
		theme:     Themes[name],
		progress:  bar,
		report:    opts.Report,
		now:       now,
		focus:     config.DefaultFocusCounter,
		ticking:   eng.Active(),
	}
	return m.refresh()
}

func (m Model) Init() tea.Cmd {
	if m.ticking {
		return tickCmd()
	}
	return nil
}

// Ticking reports whether a tick chain is scheduled.
func (m Model) Ticking() bool { return m.ticking }

// Snapshot returns the state the dashboard last rendered.
func (m Model) Snapshot() models.Snapshot { return m.snap }

// refresh pulls a fresh snapshot and opens the next pending alert if no
// dialog is showing.
func (m Model) refresh() Model {
	m.snap = m.engine.Snapshot()
	if m.modal == nil && len(m.snap.Pending) > 0 {
		m.modal = &AlertState{Prompt: engine.PromptFor(m.snap.Pending[0])}
	}
	return m
}

// ensureTicking starts the tick chain when the engine has become active and
// no chain is running.
func (m Model) ensureTicking() (Model, tea.Cmd) {
	if m.ticking || !m.engine.Active() {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd()
}

func (m Model) setStatus(msg string, isErr bool) Model {
	m.status = msg
	m.statusErr = isErr
	return m
}
