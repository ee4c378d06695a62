package engine

import "github.com/akyairhashvil/kamreen/internal/util"

// Tick applies one clock second. The global interval and every running
// counter advance together in a single pass; nothing happens before hydration.
// It reports whether any state changed.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	if !e.hydrated {
		e.mu.Unlock()
		return false
	}

	changed := false
	if e.state.Global.Running {
		g := &e.state.Global
		g.ElapsedSeconds = util.Clamp(g.ElapsedSeconds+1, 0, e.intervalSeconds)
		if g.ElapsedSeconds >= e.intervalSeconds {
			e.fireAlarmLocked()
		}
		changed = true
	}
	for i := range e.state.Counters {
		if e.state.Counters[i].Running {
			e.state.Counters[i].ElapsedSeconds++
			changed = true
		}
	}
	if !changed {
		e.mu.Unlock()
		return false
	}

	e.metrics.IncTicks()
	snap := e.commitLocked()
	listeners := e.listenersLocked()
	e.mu.Unlock()

	publish(listeners, snap)
	return true
}
