package engine

import (
	"time"

	"github.com/akyairhashvil/kamreen/internal/models"
)

// Effects is the alert surface the engine drives. Every call is
// fire-and-forget: errors are logged and never block a transition.
//
//go:generate mockgen -source=effects.go -destination=mock_effects_test.go -package=engine
type Effects interface {
	PlayLoopingSound(kind models.AlertKind) error
	StopSound(kind models.AlertKind) error
	Vibrate(pattern []time.Duration) error
	ShowConfirmation(prompt models.Prompt) error
}

// NopEffects discards every effect.
type NopEffects struct{}

func (NopEffects) PlayLoopingSound(models.AlertKind) error { return nil }
func (NopEffects) StopSound(models.AlertKind) error        { return nil }
func (NopEffects) Vibrate([]time.Duration) error           { return nil }
func (NopEffects) ShowConfirmation(models.Prompt) error    { return nil }
