package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akyairhashvil/kamreen/internal/storage"
	"github.com/rs/zerolog"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := New(path, zerolog.Nop())
	payload := []byte(`{"globalElapsed":12,"globalRunning":true}`)

	if err := store.Save(context.Background(), payload); err != nil {
		t.Fatalf("save state: %v", err)
	}
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if string(loaded) != string(payload) {
		t.Fatalf("expected %s, got %s", payload, loaded)
	}

	if err := store.Save(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("overwrite state: %v", err)
	}
	loaded, _ = store.Load(context.Background())
	if string(loaded) != `{}` {
		t.Fatalf("expected overwrite, got %s", loaded)
	}
}

func TestStore_MissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.json"), zerolog.Nop())
	if _, err := store.Load(context.Background()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "state.json"), zerolog.Nop())
	for i := 0; i < 3; i++ {
		if err := store.Save(context.Background(), []byte(`{}`)); err != nil {
			t.Fatalf("save state: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the state file, got %d entries", len(entries))
	}
}

func TestStore_CancelledContext(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "state.json"), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Save(ctx, []byte(`{}`)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
