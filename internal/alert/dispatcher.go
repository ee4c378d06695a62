package alert

import (
	"context"
	"sync"
	"time"

	"github.com/akyairhashvil/kamreen/internal/engine"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/rs/zerolog"
)

var _ engine.Effects = (*Dispatcher)(nil)

const defaultNotifyTimeout = 45 * time.Second

// Dispatcher is the engine's alert surface: it loops the bell, logs haptic
// patterns, forwards confirmations to the presentation layer and fans the
// alert out to remote notifiers in the background.
type Dispatcher struct {
	bell          *BellPlayer
	notifier      Notifier
	notifyTimeout time.Duration
	now           func() time.Time
	logger        zerolog.Logger

	mu       sync.Mutex
	onPrompt func(models.Prompt)
	wg       sync.WaitGroup
}

// DispatcherOptions wires a Dispatcher. Nil fields are skipped.
type DispatcherOptions struct {
	Bell          *BellPlayer
	Notifier      Notifier
	NotifyTimeout time.Duration
	Now           func() time.Time
	Logger        zerolog.Logger
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	timeout := opts.NotifyTimeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		bell:          opts.Bell,
		notifier:      opts.Notifier,
		notifyTimeout: timeout,
		now:           now,
		logger:        opts.Logger,
	}
}

// OnPrompt sets the handler that presents blocking confirmations. The handler
// runs while the engine holds its lock and must not call back into the engine.
func (d *Dispatcher) OnPrompt(fn func(models.Prompt)) {
	d.mu.Lock()
	d.onPrompt = fn
	d.mu.Unlock()
}

func (d *Dispatcher) PlayLoopingSound(kind models.AlertKind) error {
	if d.bell == nil {
		return nil
	}
	return d.bell.Start(kind)
}

func (d *Dispatcher) StopSound(kind models.AlertKind) error {
	if d.bell != nil {
		d.bell.Stop(kind)
	}
	return nil
}

// Vibrate records the pattern; terminals have no haptic output.
func (d *Dispatcher) Vibrate(pattern []time.Duration) error {
	var total time.Duration
	for _, p := range pattern {
		total += p
	}
	d.logger.Debug().Int("pulses", len(pattern)).Dur("total", total).Msg("haptic pattern")
	return nil
}

func (d *Dispatcher) ShowConfirmation(prompt models.Prompt) error {
	d.mu.Lock()
	handler := d.onPrompt
	d.mu.Unlock()
	if handler != nil {
		handler(prompt)
	}

	if d.notifier != nil {
		event := Event{
			Kind:    prompt.Kind,
			Title:   prompt.Title,
			Message: prompt.Message,
			FiredAt: d.now(),
		}
		d.wg.Add(1)
		go d.notify(event)
	}
	return nil
}

func (d *Dispatcher) notify(event Event) {
	defer d.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), d.notifyTimeout)
	defer cancel()
	if err := d.notifier.Notify(ctx, event); err != nil {
		d.logger.Warn().Err(err).Str("kind", string(event.Kind)).Msg("alert notification failed")
	}
}

// Close waits for in-flight notifications and silences the bell.
func (d *Dispatcher) Close() {
	d.wg.Wait()
	if d.bell != nil {
		d.bell.Close()
	}
}
