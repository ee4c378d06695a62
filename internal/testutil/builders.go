package testutil

import (
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/akyairhashvil/kamreen/internal/util"
)

// StateBuilder provides fluent API for creating test engine states.
type StateBuilder struct {
	state models.EngineState
}

// NewState starts from the canonical reset state.
func NewState() *StateBuilder {
	counters := make([]models.Counter, config.CounterCount)
	for i := range counters {
		counters[i] = models.Counter{ID: config.FirstCounter + i, Empty: true}
	}
	return &StateBuilder{state: models.EngineState{Counters: counters}}
}

func (b *StateBuilder) Running(elapsed int) *StateBuilder {
	b.state.Global = models.GlobalAlarm{ElapsedSeconds: elapsed, Running: true}
	return b
}

func (b *StateBuilder) WithFilterStartEvents(n int) *StateBuilder {
	b.state.FilterStartEvents = n
	return b
}

// WithCounter replaces the counter with c.ID.
func (b *StateBuilder) WithCounter(c models.Counter) *StateBuilder {
	idx := c.ID - config.FirstCounter
	if idx >= 0 && idx < len(b.state.Counters) {
		b.state.Counters[idx] = c
	}
	return b
}

func (b *StateBuilder) Build() models.EngineState {
	return b.state.Clone()
}

// CounterBuilder provides fluent API for creating test counters.
type CounterBuilder struct {
	counter models.Counter
}

func NewCounter(id int) *CounterBuilder {
	return &CounterBuilder{counter: models.Counter{ID: id, Empty: true}}
}

func (b *CounterBuilder) Running(elapsed int) *CounterBuilder {
	b.counter.ElapsedSeconds = elapsed
	b.counter.Running = true
	b.counter.Empty = false
	b.counter.LastPausedAt = nil
	return b
}

func (b *CounterBuilder) PausedAt(elapsed int, at time.Time) *CounterBuilder {
	b.counter.ElapsedSeconds = elapsed
	b.counter.Running = false
	b.counter.Empty = false
	b.counter.LastPausedAt = util.Ptr(time.UnixMilli(at.UnixMilli()))
	return b
}

func (b *CounterBuilder) WithFilterClicks(n int) *CounterBuilder {
	b.counter.FilterClicks = n
	return b
}

func (b *CounterBuilder) Build() models.Counter {
	return b.counter
}
