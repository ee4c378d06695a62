package engine

import (
	"time"

	"github.com/akyairhashvil/kamreen/internal/models"
)

// ActivateGlobal starts the service interval from zero. The caller must have
// obtained the reservoir confirmation first. Activating a running service is a no-op.
func (e *Engine) ActivateGlobal() error {
	e.mu.Lock()
	if !e.hydrated {
		e.mu.Unlock()
		return e.reject("activate", 0, ErrNotHydrated)
	}
	if e.state.Global.Running {
		e.mu.Unlock()
		return nil
	}
	e.state.Global = models.GlobalAlarm{Running: true}
	e.logger.Info().Msg("service activated")
	snap := e.commitLocked()
	listeners := e.listenersLocked()
	e.mu.Unlock()

	publish(listeners, snap)
	return nil
}

// ResetAll tears down any alert in flight and returns every sub-machine to its
// initial state. Valid from any phase.
func (e *Engine) ResetAll() error {
	e.mu.Lock()
	if !e.hydrated {
		e.mu.Unlock()
		return e.reject("reset", 0, ErrNotHydrated)
	}
	e.stopSoundLocked(models.AlertAlarm)
	e.stopSoundLocked(models.AlertFilter)
	e.pending = nil
	e.state = InitialState()
	e.logger.Info().Msg("all timers reset")
	snap := e.commitLocked()
	listeners := e.listenersLocked()
	e.mu.Unlock()

	publish(listeners, snap)
	return nil
}

// ToggleCounter starts a stopped counter or pauses a running one. Counters
// can only be toggled while the service is running.
func (e *Engine) ToggleCounter(id int) error {
	e.mu.Lock()
	if !e.hydrated {
		e.mu.Unlock()
		return e.reject("toggle", id, ErrNotHydrated)
	}
	idx, ok := e.counterIndex(id)
	if !ok {
		e.mu.Unlock()
		return e.reject("toggle", id, ErrUnknownCounter)
	}
	if !e.state.Global.Running {
		e.mu.Unlock()
		return e.reject("toggle", id, ErrServiceStopped)
	}

	now := e.clock.Now()
	prev := e.state.Counters[idx]
	next := prev
	if prev.Running {
		paused := time.UnixMilli(now.UnixMilli())
		next.Running = false
		next.LastPausedAt = &paused
		e.logger.Debug().Int("counter", id).Int("elapsed", prev.ElapsedSeconds).Msg("counter paused")
	} else {
		qualifying := e.qualifies(prev, now)
		next.Running = true
		next.Empty = false
		next.LastPausedAt = nil
		if qualifying {
			next.FilterClicks++
			e.recordQualifyingStartLocked()
		}
		e.logger.Debug().Int("counter", id).Bool("qualifying", qualifying).Msg("counter started")
	}
	e.state.Counters[idx] = next
	snap := e.commitLocked()
	listeners := e.listenersLocked()
	e.mu.Unlock()

	publish(listeners, snap)
	return nil
}

// ClearCounter resets one counter to empty without touching the others or the
// shared filter accumulator.
func (e *Engine) ClearCounter(id int) error {
	e.mu.Lock()
	if !e.hydrated {
		e.mu.Unlock()
		return e.reject("clear", id, ErrNotHydrated)
	}
	idx, ok := e.counterIndex(id)
	if !ok {
		e.mu.Unlock()
		return e.reject("clear", id, ErrUnknownCounter)
	}
	e.state.Counters[idx] = emptyCounter(id)
	e.logger.Debug().Int("counter", id).Msg("counter cleared")
	snap := e.commitLocked()
	listeners := e.listenersLocked()
	e.mu.Unlock()

	publish(listeners, snap)
	return nil
}

// Acknowledge drains one pending confirmation of kind and silences its sound
// once nothing of that kind is pending. Unknown acknowledgments are ignored.
func (e *Engine) Acknowledge(kind models.AlertKind) {
	e.mu.Lock()
	idx := -1
	for i, k := range e.pending {
		if k == kind {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return
	}
	e.pending = append(e.pending[:idx], e.pending[idx+1:]...)
	if !e.pendingLocked(kind) {
		e.stopSoundLocked(kind)
	}
	e.logger.Info().Str("kind", string(kind)).Msg("alert acknowledged")
	snap := e.snapshotLocked()
	listeners := e.listenersLocked()
	e.mu.Unlock()

	publish(listeners, snap)
}

func (e *Engine) reject(op string, id int, err error) error {
	e.metrics.IncRejected(op)
	return rejectIntent(op, id, err)
}
