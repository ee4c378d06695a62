package engine

import (
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/models"
)

// qualifies decides from the pre-toggle counter whether a start feeds the
// filter accumulator: a start from empty, or a resume at least filterGrace
// after the last pause. The boundary is inclusive.
func (e *Engine) qualifies(prev models.Counter, now time.Time) bool {
	if prev.Running {
		return false
	}
	if prev.Empty {
		return true
	}
	if prev.LastPausedAt == nil {
		return true
	}
	return now.Sub(*prev.LastPausedAt) >= e.filterGrace
}

func (e *Engine) recordQualifyingStartLocked() {
	e.state.FilterStartEvents++
	if e.state.FilterStartEvents < e.filterThreshold {
		return
	}
	e.fireLocked(models.AlertFilter, config.FilterVibration, func() { e.state.FilterStartEvents = 0 })
}

func (e *Engine) fireAlarmLocked() {
	e.fireLocked(models.AlertAlarm, config.AlarmVibration, func() { e.state.Global.ElapsedSeconds = 0 })
}

// PromptFor returns the confirmation shown for an alert kind.
func PromptFor(kind models.AlertKind) models.Prompt {
	if kind == models.AlertFilter {
		return models.Prompt{
			Kind:    kind,
			Title:   config.FilterTitle,
			Message: config.FilterMessage,
			Button:  config.AckButton,
		}
	}
	return models.Prompt{
		Kind:    models.AlertAlarm,
		Title:   config.AlarmTitle,
		Message: config.AlarmMessage,
		Button:  config.AckButton,
	}
}

// fireLocked runs the alert sequence: vibrate, start the looping sound, apply
// the state reset, then raise the blocking confirmation.
func (e *Engine) fireLocked(kind models.AlertKind, pattern []time.Duration, reset func()) {
	e.logger.Info().Str("kind", string(kind)).Msg("alert fired")
	e.metrics.IncAlerts(string(kind))

	if err := e.effects.Vibrate(pattern); err != nil {
		e.effectFailed("vibrate", kind, err)
	}
	if err := e.effects.PlayLoopingSound(kind); err != nil {
		e.effectFailed("sound", kind, err)
	}
	reset()
	e.pending = append(e.pending, kind)
	if err := e.effects.ShowConfirmation(PromptFor(kind)); err != nil {
		e.effectFailed("confirm", kind, err)
	}
}

func (e *Engine) stopSoundLocked(kind models.AlertKind) {
	if err := e.effects.StopSound(kind); err != nil {
		e.effectFailed("stop_sound", kind, err)
	}
}

func (e *Engine) effectFailed(effect string, kind models.AlertKind, err error) {
	e.metrics.IncEffectErrors(effect)
	e.logger.Warn().Err(err).Str("effect", effect).Str("kind", string(kind)).Msg("alert effect failed")
}
