package models

import "time"

// GlobalPhase enumerates the states of the global maintenance alarm.
type GlobalPhase string

const (
	GlobalStopped     GlobalPhase = "stopped"
	GlobalRunning     GlobalPhase = "running"
	GlobalAlarmFiring GlobalPhase = "alarm_firing"
)

// CounterPhase enumerates the states of a single tank counter.
type CounterPhase string

const (
	CounterEmpty   CounterPhase = "empty"
	CounterPaused  CounterPhase = "paused"
	CounterRunning CounterPhase = "running"
)

// AlertKind distinguishes the two alert sequences.
type AlertKind string

const (
	AlertAlarm  AlertKind = "alarm"
	AlertFilter AlertKind = "filter"
)

// Prompt is a blocking confirmation shown to the user.
type Prompt struct {
	Kind    AlertKind
	Title   string
	Message string
	Button  string
}

// GlobalAlarm is the periodic maintenance countdown that gates all counters.
type GlobalAlarm struct {
	ElapsedSeconds int
	Running        bool
}

// Counter is one tank stopwatch.
type Counter struct {
	ID             int
	ElapsedSeconds int
	Running        bool
	Empty          bool
	FilterClicks   int
	LastPausedAt   *time.Time
}

// Phase derives the counter state from its flags.
func (c Counter) Phase() CounterPhase {
	switch {
	case c.Running:
		return CounterRunning
	case c.Empty:
		return CounterEmpty
	default:
		return CounterPaused
	}
}

// EngineState is the full durable state owned by the timer engine.
type EngineState struct {
	Global            GlobalAlarm
	Counters          []Counter
	FilterStartEvents int
}

// Clone returns a deep copy so callers never share counter slices or pause timestamps.
func (s EngineState) Clone() EngineState {
	out := s
	out.Counters = make([]Counter, len(s.Counters))
	for i, c := range s.Counters {
		if c.LastPausedAt != nil {
			ts := *c.LastPausedAt
			c.LastPausedAt = &ts
		}
		out.Counters[i] = c
	}
	return out
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Phase             GlobalPhase
	GlobalElapsed     int
	GlobalRunning     bool
	AlarmInterval     int
	Counters          []Counter
	FilterStartEvents int
	FilterThreshold   int
	Pending           []AlertKind
	Alarming          bool
	FilterAlerting    bool
	Hydrated          bool
}

// Remaining returns the time left until the next alarm crossing.
func (s Snapshot) Remaining() time.Duration {
	left := s.AlarmInterval - s.GlobalElapsed
	if left < 0 {
		left = 0
	}
	return time.Duration(left) * time.Second
}

// Counter returns the counter with the given id.
func (s Snapshot) Counter(id int) (Counter, bool) {
	for _, c := range s.Counters {
		if c.ID == id {
			return c, true
		}
	}
	return Counter{}, false
}
