package storage

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AsyncWriter saves snapshots on a background goroutine. Only the most recent
// pending snapshot is kept; older ones are dropped before they are written.
type AsyncWriter struct {
	store   Store
	logger  zerolog.Logger
	timeout time.Duration
	onError func(error)

	mu      sync.Mutex
	pending []byte
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

// NewAsyncWriter starts the writer goroutine. onError may be nil.
func NewAsyncWriter(store Store, logger zerolog.Logger, timeout time.Duration, onError func(error)) *AsyncWriter {
	w := &AsyncWriter{
		store:   store,
		logger:  logger,
		timeout: timeout,
		onError: onError,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w
}

// Submit queues data for writing, replacing anything not yet written.
func (w *AsyncWriter) Submit(data []byte) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.pending = data
	select {
	case w.wake <- struct{}{}:
	default:
	}
	w.mu.Unlock()
}

// Close writes any pending snapshot and stops the goroutine.
func (w *AsyncWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.wake)
	w.mu.Unlock()

	<-w.done
}

func (w *AsyncWriter) loop() {
	defer close(w.done)
	for range w.wake {
		w.flush()
	}
	w.flush()
}

func (w *AsyncWriter) flush() {
	w.mu.Lock()
	data := w.pending
	w.pending = nil
	w.mu.Unlock()
	if data == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := w.store.Save(ctx, data); err != nil {
		w.logger.Warn().Err(err).Msg("snapshot write failed")
		if w.onError != nil {
			w.onError(err)
		}
	}
}
