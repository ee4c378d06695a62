package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/akyairhashvil/kamreen/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func renderLogo() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true).Render("KAM") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true).Render("REEN")
}

func (m Model) View() string {
	if m.modal != nil {
		return m.renderModal()
	}
	if m.viewMode == ViewHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCounters())
	b.WriteString("\n")
	b.WriteString(m.renderFilterLine())
	b.WriteString("\n")
	if status := m.renderStatus(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return m.theme.Base.Render(b.String())
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	w := m.width - 4
	if w < config.MinCardWidth {
		w = config.MinCardWidth
	}
	return w
}

func (m Model) renderHeader() string {
	snap := m.snap
	var timerContent string
	var timerColor lipgloss.Style

	switch snap.Phase {
	case models.GlobalAlarmFiring:
		timerContent = "SERVICE DUE  |  acknowledge the alarm"
		timerColor = m.theme.Alarm
	case models.GlobalRunning:
		fraction := 0.0
		if snap.AlarmInterval > 0 {
			fraction = float64(snap.GlobalElapsed) / float64(snap.AlarmInterval)
		}
		barView := m.progress.ViewAs(fraction)
		timerContent = fmt.Sprintf("SERVICE  |  %s  |  %s  |  next check in %s",
			util.FormatClock(snap.GlobalElapsed), barView, util.FormatDuration(snap.Remaining()))
		timerColor = m.theme.Focused
	default:
		timerContent = "SERVICE STOPPED  |  press [a] to activate"
		timerColor = m.theme.Dim
	}
	if !snap.Hydrated {
		timerContent = "loading saved state..."
		timerColor = m.theme.Dim
	}

	title := fmt.Sprintf("%s v%s", renderLogo(), versionLabel())
	content := title + "\n" + timerColor.Render(timerContent)
	return framesFor(m.theme).Header.Width(m.contentWidth()).Render(content)
}

func (m Model) renderCounters() string {
	if len(m.snap.Counters) == 0 {
		return ""
	}
	if m.width > 0 && m.width < config.CompactModeThreshold {
		return m.renderCountersCompact()
	}
	cardWidth := m.contentWidth()/len(m.snap.Counters) - 2
	if cardWidth < config.MinCardWidth {
		cardWidth = config.MinCardWidth
	}

	frame := framesFor(m.theme).Card
	cards := make([]string, 0, len(m.snap.Counters))
	for _, c := range m.snap.Counters {
		f := frame
		if c.ID == m.focus {
			f = f.BorderForeground(m.theme.Focused.GetForeground())
		}
		cards = append(cards, f.Width(cardWidth).Render(m.renderCard(c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderCard(c models.Counter) string {
	heading := m.theme.Header.Render(fmt.Sprintf("Tank %d", c.ID))
	clock := m.counterStyle(c).Render(util.FormatClock(c.ElapsedSeconds))
	phase := m.counterStyle(c).Render(phaseLabel(c.Phase()))
	clicks := m.theme.Dim.Render(fmt.Sprintf("filter starts %d", c.FilterClicks))
	return strings.Join([]string{heading, clock, phase, clicks}, "\n")
}

func (m Model) renderCountersCompact() string {
	width := m.contentWidth()
	lines := make([]string, 0, len(m.snap.Counters))
	for _, c := range m.snap.Counters {
		marker := "  "
		if c.ID == m.focus {
			marker = m.theme.Focused.Render("> ")
		}
		line := fmt.Sprintf("%s%d  %s  %s", marker, c.ID,
			m.counterStyle(c).Render(util.FormatClock(c.ElapsedSeconds)),
			m.counterStyle(c).Render(phaseLabel(c.Phase())))
		lines = append(lines, ansi.Truncate(line, width, config.TruncationSuffix))
	}
	return strings.Join(lines, "\n")
}

func (m Model) counterStyle(c models.Counter) lipgloss.Style {
	switch c.Phase() {
	case models.CounterRunning:
		return m.theme.Running
	case models.CounterPaused:
		return m.theme.Paused
	default:
		return m.theme.Empty
	}
}

func phaseLabel(p models.CounterPhase) string {
	switch p {
	case models.CounterRunning:
		return "running"
	case models.CounterPaused:
		return "paused"
	default:
		return "empty"
	}
}

func (m Model) renderFilterLine() string {
	line := fmt.Sprintf("Filter check after %d qualifying starts: %d so far",
		m.snap.FilterThreshold, m.snap.FilterStartEvents)
	return m.theme.Dim.Render(ansi.Truncate(line, m.contentWidth(), config.TruncationSuffix))
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	status := ansi.Truncate(m.status, m.contentWidth(), config.TruncationSuffix)
	if m.statusErr {
		return m.theme.Error.Render(status)
	}
	return m.theme.Highlight.Render(status)
}

func (m Model) renderFooter() string {
	help := m.keys.Footer(m.viewMode)
	return m.theme.Dim.Render(ansi.Truncate(help, m.contentWidth(), config.TruncationSuffix))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.Focused.Render("Keys") + "\n\n")
	for _, binding := range m.keys.Described(ViewDashboard) {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", keyLabel(binding.Key), binding.Description))
	}
	b.WriteString("\n" + m.theme.Dim.Render("digits 1-5 pick a tank, h/l or arrows move focus"))
	b.WriteString("\n" + m.theme.Dim.Render("[?] or [esc] to close"))
	box := framesFor(m.theme).Modal.Render(b.String())
	return m.place(box)
}

func (m Model) renderModal() string {
	var b strings.Builder
	title := m.theme.Focused
	if m.modal.Type() == ModalAlert {
		title = m.theme.Alarm
	}
	b.WriteString(title.Render(m.modal.Title()) + "\n\n")
	b.WriteString(m.theme.Counter.Render(m.modal.Body()) + "\n\n")
	b.WriteString(m.theme.Dim.Render(m.modal.Buttons()))
	if n := len(m.snap.Pending); n > 1 && m.modal.Type() == ModalAlert {
		b.WriteString("\n" + m.theme.Dim.Render(fmt.Sprintf("%d more alerts waiting", n-1)))
	}
	box := framesFor(m.theme).Modal.Render(b.String())
	return m.place(box)
}

func (m Model) place(box string) string {
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
