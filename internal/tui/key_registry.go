package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode selects which screen of the dashboard is showing.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewHelp
)

// KeyHandler reacts to one key press. handled=false lets the next binding
// for the same key try.
type KeyHandler func(m Model, key string) (Model, tea.Cmd, bool)

// KeyBinding ties a key to a handler. A binding without Views is live on
// every screen; one without Description stays out of the footer and the
// help screen.
type KeyBinding struct {
	Key         string
	Handler     KeyHandler
	Description string
	Views       []ViewMode
	Priority    int
}

func (b KeyBinding) activeIn(view ViewMode) bool {
	if len(b.Views) == 0 {
		return true
	}
	for _, v := range b.Views {
		if v == view {
			return true
		}
	}
	return false
}

// Keymap holds the dashboard bindings, highest priority first.
type Keymap struct {
	bindings []KeyBinding
}

func NewKeymap() *Keymap {
	return &Keymap{}
}

// Bind adds b. Bindings of equal priority keep their registration order.
func (k *Keymap) Bind(b KeyBinding) {
	k.bindings = append(k.bindings, b)
	sort.SliceStable(k.bindings, func(i, j int) bool {
		return k.bindings[i].Priority > k.bindings[j].Priority
	})
}

// Dispatch runs the bindings for key on the model's current screen until one
// handles it.
func (k *Keymap) Dispatch(m Model, key string) (Model, tea.Cmd, bool) {
	for _, b := range k.bindings {
		if b.Key != key || !b.activeIn(m.viewMode) {
			continue
		}
		if next, cmd, handled := b.Handler(m, key); handled {
			return next, cmd, true
		}
	}
	return m, nil, false
}

// Described lists the bindings live on view that carry a description, one per
// description, so the five tank digits show up once.
func (k *Keymap) Described(view ViewMode) []KeyBinding {
	seen := make(map[string]bool)
	var out []KeyBinding
	for _, b := range k.bindings {
		if b.Description == "" || seen[b.Description] || !b.activeIn(view) {
			continue
		}
		seen[b.Description] = true
		out = append(out, b)
	}
	return out
}

// Footer is the one-line key hint under the tank cards.
func (k *Keymap) Footer(view ViewMode) string {
	var parts []string
	for _, b := range k.Described(view) {
		parts = append(parts, "["+keyLabel(b.Key)+"] "+b.Description)
	}
	return strings.Join(parts, "  ")
}

func keyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

// defaultKeymap wires the dashboard keys. Digits address tanks directly;
// the focus keys and space act on the highlighted tank.
func defaultKeymap() *Keymap {
	k := NewKeymap()
	dash := []ViewMode{ViewDashboard}

	k.Bind(KeyBinding{Key: "q", Handler: handleQuit, Description: "quit", Priority: 100})
	k.Bind(KeyBinding{Key: "?", Handler: handleHelpToggle, Description: "help", Priority: 90})
	k.Bind(KeyBinding{Key: "esc", Handler: handleHelpToggle, Views: []ViewMode{ViewHelp}, Priority: 90})

	for _, key := range []string{"1", "2", "3", "4", "5"} {
		k.Bind(KeyBinding{Key: key, Handler: handleToggleDigit, Description: "toggle tank", Views: dash, Priority: 50})
	}
	k.Bind(KeyBinding{Key: " ", Handler: handleToggleFocused, Description: "toggle focused", Views: dash, Priority: 50})
	k.Bind(KeyBinding{Key: "c", Handler: handleClearFocused, Description: "clear", Views: dash, Priority: 50})

	for _, key := range []string{"left", "h"} {
		k.Bind(KeyBinding{Key: key, Handler: handleFocusPrev, Views: dash, Priority: 40})
	}
	for _, key := range []string{"right", "l"} {
		k.Bind(KeyBinding{Key: key, Handler: handleFocusNext, Views: dash, Priority: 40})
	}

	k.Bind(KeyBinding{Key: "a", Handler: handleActivate, Description: "activate", Views: dash, Priority: 30})
	k.Bind(KeyBinding{Key: "R", Handler: handleReset, Description: "reset all", Views: dash, Priority: 30})
	k.Bind(KeyBinding{Key: "p", Handler: handleReport, Description: "report", Views: dash, Priority: 20})
	k.Bind(KeyBinding{Key: "t", Handler: handleTheme, Description: "theme", Views: dash, Priority: 10})
	return k
}
