package alert

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/rs/zerolog"
)

// ErrPlayerClosed is returned when a sound is started after Close.
var ErrPlayerClosed = errors.New("bell player closed")

const bellChar = "\a"

// BellPlayer loops the terminal bell, one goroutine per alert kind.
type BellPlayer struct {
	out      io.Writer
	interval time.Duration
	muted    bool
	logger   zerolog.Logger

	mu      sync.Mutex
	writeMu sync.Mutex
	loops   map[models.AlertKind]chan struct{}
	closed  bool
	wg      sync.WaitGroup
}

func NewBellPlayer(out io.Writer, interval time.Duration, muted bool, logger zerolog.Logger) *BellPlayer {
	if interval <= 0 {
		interval = time.Second
	}
	return &BellPlayer{
		out:      out,
		interval: interval,
		muted:    muted,
		logger:   logger,
		loops:    make(map[models.AlertKind]chan struct{}),
	}
}

// Start begins looping the bell for kind. Starting a kind that is already
// playing is a no-op.
func (p *BellPlayer) Start(kind models.AlertKind) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPlayerClosed
	}
	if _, ok := p.loops[kind]; ok {
		return nil
	}
	stop := make(chan struct{})
	p.loops[kind] = stop
	p.wg.Add(1)
	go p.loop(kind, stop)
	return nil
}

// Stop silences kind. Stopping a kind that is not playing is a no-op.
func (p *BellPlayer) Stop(kind models.AlertKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if stop, ok := p.loops[kind]; ok {
		close(stop)
		delete(p.loops, kind)
	}
}

// Playing reports whether kind is looping.
func (p *BellPlayer) Playing(kind models.AlertKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.loops[kind]
	return ok
}

// Close stops every loop and waits for the goroutines to exit.
func (p *BellPlayer) Close() {
	p.mu.Lock()
	p.closed = true
	for kind, stop := range p.loops {
		close(stop)
		delete(p.loops, kind)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *BellPlayer) loop(kind models.AlertKind, stop <-chan struct{}) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if !p.ring() {
			p.logger.Warn().Str("kind", string(kind)).Msg("bell output failed, loop stopped")
			return
		}
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (p *BellPlayer) ring() bool {
	if p.muted || p.out == nil {
		return true
	}
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_, err := io.WriteString(p.out, bellChar)
	return err == nil
}
