package engine

import (
	"context"
	"errors"

	"github.com/akyairhashvil/kamreen/internal/storage"
	"github.com/akyairhashvil/kamreen/internal/util"
)

// Hydrate loads the persisted snapshot and unlocks ticks, intents and writes.
// Storage failures are never fatal: the engine falls back to defaults for
// anything that cannot be read. Only the first call has any effect.
func (e *Engine) Hydrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.hydrated {
		e.mu.Unlock()
		return nil
	}
	loader := e.loader
	e.mu.Unlock()

	var data []byte
	if loader != nil {
		var err error
		data, err = loader.Load(ctx)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			e.logger.Info().Msg("no saved state, starting fresh")
			data = nil
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			util.LogWarn(e.logger, "load saved state failed, using defaults", err)
			e.metrics.IncPersistErrors()
			data = nil
		}
	}

	e.mu.Lock()
	if e.hydrated {
		e.mu.Unlock()
		return nil
	}
	if data != nil {
		st, issues := DecodeState(data, e.intervalSeconds)
		for _, issue := range issues {
			e.logger.Warn().Str("field", issue.Field).Str("reason", issue.Reason).Msg("saved state field ignored")
		}
		if st.FilterStartEvents >= e.filterThreshold {
			e.logger.Warn().Int("filter_start_events", st.FilterStartEvents).Msg("saved filter accumulator out of range, reset")
			st.FilterStartEvents = 0
		}
		e.state = st
	}
	e.hydrated = true
	e.logger.Info().
		Bool("global_running", e.state.Global.Running).
		Int("global_elapsed", e.state.Global.ElapsedSeconds).
		Msg("state hydrated")
	snap := e.snapshotLocked()
	listeners := e.listenersLocked()
	e.mu.Unlock()

	publish(listeners, snap)
	return nil
}
