package engine

import (
	"sync"

	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/rs/zerolog"
)

// TransitionLogger logs phase changes between consecutive snapshots.
// Register its Observe method with Engine.Subscribe.
type TransitionLogger struct {
	logger zerolog.Logger

	mu   sync.Mutex
	last *models.Snapshot
}

func NewTransitionLogger(logger zerolog.Logger) *TransitionLogger {
	return &TransitionLogger{logger: logger}
}

// Observe records snap and logs what changed since the previous one.
func (t *TransitionLogger) Observe(snap models.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.last
	t.last = &snap
	if prev == nil {
		return
	}
	if prev.Phase != snap.Phase {
		t.logger.Info().
			Str("from", string(prev.Phase)).
			Str("to", string(snap.Phase)).
			Msg("service phase changed")
	}
	for i, c := range snap.Counters {
		if i >= len(prev.Counters) {
			break
		}
		before := prev.Counters[i].Phase()
		after := c.Phase()
		if before != after {
			t.logger.Debug().
				Int("counter", c.ID).
				Str("from", string(before)).
				Str("to", string(after)).
				Int("filter_clicks", c.FilterClicks).
				Msg("counter phase changed")
		}
	}
}
