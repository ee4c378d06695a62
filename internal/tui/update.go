package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---
type TickMsg time.Time

// SnapshotMsg asks the dashboard to re-read the engine, for changes made
// outside the event loop.
type SnapshotMsg struct{}

type reportMsg struct {
	path string
	err  error
}

func tickCmd() tea.Cmd {
	return tea.Tick(config.TickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case TickMsg:
		return m.handleTick()
	case SnapshotMsg:
		m = m.refresh()
		return m.ensureTicking()
	case reportMsg:
		if msg.err != nil {
			return m.setStatus(fmt.Sprintf("report failed: %v", msg.err), true), nil
		}
		return m.setStatus("report saved to "+msg.path, false), nil
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	if m.width > 0 {
		target := config.TargetBarWidth
		if m.width < config.CompactModeThreshold {
			target = m.width / 2
		}
		if target < config.MinBarWidth {
			target = config.MinBarWidth
		}
		m.progress.Width = target
	}
	return m, nil
}

// handleTick advances the engine one second and keeps the chain alive only
// while something is running.
func (m Model) handleTick() (Model, tea.Cmd) {
	if !m.engine.Active() {
		m.ticking = false
		return m.refresh(), nil
	}
	m.engine.Tick()
	m = m.refresh()
	if !m.engine.Active() {
		m.ticking = false
		return m, nil
	}
	m.ticking = true
	return m, tickCmd()
}

func (m Model) handleKey(key string) (Model, tea.Cmd) {
	if m.modal != nil {
		return m.handleModalKey(key)
	}
	next, cmd, handled := m.keys.Dispatch(m, key)
	if handled {
		return next, cmd
	}
	return m, nil
}

func (m Model) handleModalKey(key string) (Model, tea.Cmd) {
	modal := m.modal
	switch modal.HandleKey(key) {
	case ActionConfirm:
		m.modal = nil
		return m.confirmModal(modal)
	case ActionCancel:
		m.modal = nil
		return m.refresh().setStatus("", false), nil
	}
	return m, nil
}

func (m Model) confirmModal(modal ModalState) (Model, tea.Cmd) {
	switch s := modal.(type) {
	case *ActivateState:
		return m.runIntent(m.engine.ActivateGlobal, "service activated")
	case *ResetState:
		return m.runIntent(m.engine.ResetAll, "all timers reset")
	case *AlertState:
		m.engine.Acknowledge(s.Prompt.Kind)
		m = m.refresh().setStatus("", false)
		return m.ensureTicking()
	}
	return m.refresh(), nil
}

// runIntent forwards an intent, surfaces a rejection in the status line and
// restarts ticking if the intent made something run.
func (m Model) runIntent(fn func() error, okMsg string) (Model, tea.Cmd) {
	if err := fn(); err != nil {
		m = m.setStatus(intentMessage(err), true)
	} else {
		m = m.setStatus(okMsg, false)
	}
	m = m.refresh()
	return m.ensureTicking()
}

func intentMessage(err error) string {
	if errors.Is(err, engine.ErrServiceStopped) {
		return config.StoppedNotice
	}
	return err.Error()
}

// --- Key handlers ---

func handleQuit(m Model, _ string) (Model, tea.Cmd, bool) {
	return m, tea.Quit, true
}

func handleHelpToggle(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.viewMode == ViewHelp {
		m.viewMode = ViewDashboard
	} else {
		m.viewMode = ViewHelp
	}
	return m, nil, true
}

func handleToggleDigit(m Model, key string) (Model, tea.Cmd, bool) {
	id := int(key[0]-'0') - 1 + config.FirstCounter
	m.focus = id
	next, cmd := m.toggle(id)
	return next, cmd, true
}

func handleToggleFocused(m Model, _ string) (Model, tea.Cmd, bool) {
	next, cmd := m.toggle(m.focus)
	return next, cmd, true
}

func (m Model) toggle(id int) (Model, tea.Cmd) {
	wasRunning := false
	if c, ok := m.snap.Counter(id); ok {
		wasRunning = c.Running
	}
	verb := "started"
	if wasRunning {
		verb = "paused"
	}
	return m.runIntent(func() error { return m.engine.ToggleCounter(id) }, fmt.Sprintf("tank %d %s", id, verb))
}

func handleClearFocused(m Model, _ string) (Model, tea.Cmd, bool) {
	id := m.focus
	next, cmd := m.runIntent(func() error { return m.engine.ClearCounter(id) }, fmt.Sprintf("tank %d cleared", id))
	return next, cmd, true
}

func handleFocusPrev(m Model, _ string) (Model, tea.Cmd, bool) {
	m.focus--
	if m.focus < config.FirstCounter {
		m.focus = config.FirstCounter + config.CounterCount - 1
	}
	return m, nil, true
}

func handleFocusNext(m Model, _ string) (Model, tea.Cmd, bool) {
	m.focus++
	if m.focus >= config.FirstCounter+config.CounterCount {
		m.focus = config.FirstCounter
	}
	return m, nil, true
}

func handleActivate(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.snap.GlobalRunning {
		return m.setStatus("service already running", false), nil, true
	}
	m.modal = &ActivateState{}
	return m, nil, true
}

func handleReset(m Model, _ string) (Model, tea.Cmd, bool) {
	m.modal = &ResetState{}
	return m, nil, true
}

func handleReport(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.report == nil {
		return m.setStatus("reports are not available", true), nil, true
	}
	snap, at, write := m.snap, m.now(), m.report
	return m.setStatus("writing report...", false), func() tea.Msg {
		path, err := write(snap, at)
		return reportMsg{path: path, err: err}
	}, true
}

func handleTheme(m Model, _ string) (Model, tea.Cmd, bool) {
	m.themeName = nextTheme(m.themeName)
	m.theme = Themes[m.themeName]
	return m.setStatus("theme: "+m.theme.Name, false), nil, true
}
