package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Counter   lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Empty     lipgloss.Style
	Alarm     lipgloss.Style
	Input     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Align(lipgloss.Center),
		Counter:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Alarm:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(50),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),                                                                   // Purple
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true).Align(lipgloss.Center), // Cyan
		Counter:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),                                  // White
		Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),                       // Green
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color("215")),                                  // Orange
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("60")),                                   // Comment
		Alarm:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),                       // Red
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(50),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("210")),
	},
}

// ThemeNames returns the registered theme keys in a stable order.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nextTheme returns the key after current, wrapping around.
func nextTheme(current string) string {
	names := ThemeNames()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

type frameSet struct {
	Header lipgloss.Style
	Card   lipgloss.Style
	Modal  lipgloss.Style
}

func framesFor(t Theme) frameSet {
	return frameSet{
		Header: lipgloss.NewStyle().Align(lipgloss.Center).Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		Card:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		Modal:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Border).Padding(1, 2),
	}
}
