package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type memStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
	err   error
	gate  chan struct{}
}

func (m *memStore) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return m.data, nil
}

func (m *memStore) Save(_ context.Context, data []byte) error {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.err != nil {
		return m.err
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Close() error { return nil }

func TestAsyncWriterFlushesOnClose(t *testing.T) {
	store := &memStore{}
	w := NewAsyncWriter(store, zerolog.Nop(), time.Second, nil)
	w.Submit([]byte("one"))
	w.Submit([]byte("two"))
	w.Close()

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != "two" {
		t.Fatalf("last write = %q, want %q", got, "two")
	}
}

func TestAsyncWriterKeepsLatestOnly(t *testing.T) {
	store := &memStore{gate: make(chan struct{})}
	w := NewAsyncWriter(store, zerolog.Nop(), time.Second, nil)

	w.Submit([]byte("a"))
	// Let the goroutine pick up "a" and block inside Save.
	time.Sleep(20 * time.Millisecond)
	w.Submit([]byte("b"))
	w.Submit([]byte("c"))
	close(store.gate)
	w.Close()

	if string(store.data) != "c" {
		t.Fatalf("final data = %q, want c", store.data)
	}
	if store.saves > 2 {
		t.Fatalf("saves = %d, expected intermediate snapshot to be dropped", store.saves)
	}
}

func TestAsyncWriterReportsErrors(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	var mu sync.Mutex
	var seen []error
	w := NewAsyncWriter(store, zerolog.Nop(), time.Second, func(err error) {
		mu.Lock()
		seen = append(seen, err)
		mu.Unlock()
	})
	w.Submit([]byte("x"))
	w.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(seen))
	}
}

func TestAsyncWriterSubmitAfterCloseIsIgnored(t *testing.T) {
	store := &memStore{}
	w := NewAsyncWriter(store, zerolog.Nop(), time.Second, nil)
	w.Close()
	w.Submit([]byte("late"))
	w.Close()
	if store.saves != 0 {
		t.Fatalf("expected no saves, got %d", store.saves)
	}
}
