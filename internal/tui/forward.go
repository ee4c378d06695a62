package tui

import (
	"sync"

	"github.com/akyairhashvil/kamreen/internal/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Sender is the part of *tea.Program the forwarder needs.
type Sender interface {
	Send(msg tea.Msg)
}

// ForwardSnapshots returns an engine listener that wakes the dashboard with a
// SnapshotMsg after every commit, wherever the commit came from. The listener
// never blocks: it may run inside Update, where a direct Send would deadlock.
// Bursts collapse into a single message. stop ends the forwarder.
func ForwardSnapshots(p Sender) (listener func(models.Snapshot), stop func()) {
	wake := make(chan struct{}, 1)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-done:
				return
			case <-wake:
				p.Send(SnapshotMsg{})
			}
		}
	}()

	listener = func(models.Snapshot) {
		select {
		case wake <- struct{}{}:
		default:
		}
	}
	stop = func() { once.Do(func() { close(done) }) }
	return listener, stop
}
