// Package engine owns the global service alarm, the five tank counters and
// the shared filter-alert accumulator. All state changes go through the
// intent methods and Tick; each runs to completion under a single mutex.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/metrics"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/rs/zerolog"
)

// Loader reads the persisted snapshot once at startup.
type Loader interface {
	Load(ctx context.Context) ([]byte, error)
}

// Writer accepts encoded snapshots for best-effort persistence.
type Writer interface {
	Submit(data []byte)
}

// Options configures an Engine. Zero values fall back to the defaults in config.
type Options struct {
	AlarmInterval   time.Duration
	FilterGrace     time.Duration
	FilterThreshold int
	Clock           Clock
	Effects         Effects
	Loader          Loader
	Writer          Writer
	Metrics         *metrics.Metrics
	Logger          zerolog.Logger
}

// Engine is the timer state machine.
type Engine struct {
	mu sync.Mutex

	intervalSeconds int
	filterGrace     time.Duration
	filterThreshold int

	clock   Clock
	effects Effects
	loader  Loader
	writer  Writer
	metrics *metrics.Metrics
	logger  zerolog.Logger

	state     models.EngineState
	pending   []models.AlertKind
	hydrated  bool
	listeners []func(models.Snapshot)
}

// New returns an engine holding the canonical initial state. It refuses
// ticks, intents and writes until Hydrate has run.
func New(opts Options) *Engine {
	interval := opts.AlarmInterval
	if interval <= 0 {
		interval = config.AlarmInterval
	}
	grace := opts.FilterGrace
	if grace <= 0 {
		grace = config.FilterResumeGrace
	}
	threshold := opts.FilterThreshold
	if threshold <= 0 {
		threshold = config.FilterAlertAfter
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	effects := opts.Effects
	if effects == nil {
		effects = NopEffects{}
	}
	secs := int(interval / time.Second)
	if secs < 1 {
		secs = 1
	}

	return &Engine{
		intervalSeconds: secs,
		filterGrace:     grace,
		filterThreshold: threshold,
		clock:           clock,
		effects:         effects,
		loader:          opts.Loader,
		writer:          opts.Writer,
		metrics:         opts.Metrics,
		logger:          opts.Logger,
		state:           InitialState(),
	}
}

// InitialState is the canonical reset state: service stopped, every tank empty.
func InitialState() models.EngineState {
	counters := make([]models.Counter, config.CounterCount)
	for i := range counters {
		counters[i] = emptyCounter(config.FirstCounter + i)
	}
	return models.EngineState{Counters: counters}
}

func emptyCounter(id int) models.Counter {
	return models.Counter{ID: id, Empty: true}
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs outside the engine lock and may call back into the engine.
func (e *Engine) Subscribe(fn func(models.Snapshot)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// Snapshot returns a copy of the current state for rendering.
func (e *Engine) Snapshot() models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// State returns a deep copy of the durable state.
func (e *Engine) State() models.EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Hydrated reports whether the persisted snapshot has been applied.
func (e *Engine) Hydrated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hydrated
}

// Active reports whether anything needs clock ticks.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hydrated {
		return false
	}
	if e.state.Global.Running {
		return true
	}
	for _, c := range e.state.Counters {
		if c.Running {
			return true
		}
	}
	return false
}

func (e *Engine) phaseLocked() models.GlobalPhase {
	if !e.state.Global.Running {
		return models.GlobalStopped
	}
	if e.pendingLocked(models.AlertAlarm) {
		return models.GlobalAlarmFiring
	}
	return models.GlobalRunning
}

func (e *Engine) pendingLocked(kind models.AlertKind) bool {
	for _, k := range e.pending {
		if k == kind {
			return true
		}
	}
	return false
}

func (e *Engine) snapshotLocked() models.Snapshot {
	st := e.state.Clone()
	return models.Snapshot{
		Phase:             e.phaseLocked(),
		GlobalElapsed:     st.Global.ElapsedSeconds,
		GlobalRunning:     st.Global.Running,
		AlarmInterval:     e.intervalSeconds,
		Counters:          st.Counters,
		FilterStartEvents: st.FilterStartEvents,
		FilterThreshold:   e.filterThreshold,
		Pending:           append([]models.AlertKind(nil), e.pending...),
		Alarming:          e.pendingLocked(models.AlertAlarm),
		FilterAlerting:    e.pendingLocked(models.AlertFilter),
		Hydrated:          e.hydrated,
	}
}

// commitLocked persists the state and returns the snapshot to publish once
// the lock is released.
func (e *Engine) commitLocked() models.Snapshot {
	e.persistLocked()
	snap := e.snapshotLocked()
	running := 0
	for _, c := range snap.Counters {
		if c.Running {
			running++
		}
	}
	e.metrics.SetState(running, snap.GlobalElapsed, snap.FilterStartEvents)
	return snap
}

func (e *Engine) persistLocked() {
	if !e.hydrated || e.writer == nil {
		return
	}
	data, err := EncodeState(e.state)
	if err != nil {
		e.logger.Error().Err(err).Msg("encode snapshot")
		e.metrics.IncPersistErrors()
		return
	}
	e.writer.Submit(data)
}

func (e *Engine) listenersLocked() []func(models.Snapshot) {
	return append([]func(models.Snapshot){}, e.listeners...)
}

func publish(listeners []func(models.Snapshot), snap models.Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}

func (e *Engine) counterIndex(id int) (int, bool) {
	idx := id - config.FirstCounter
	if idx < 0 || idx >= len(e.state.Counters) {
		return 0, false
	}
	return idx, true
}
