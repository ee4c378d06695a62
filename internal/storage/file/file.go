// Package file persists the engine snapshot as a JSON file on disk.
package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/akyairhashvil/kamreen/internal/storage"
	"github.com/rs/zerolog"
)

// Store writes the snapshot atomically through a temp file and rename.
type Store struct {
	path   string
	logger zerolog.Logger
}

// New returns a JSON-file backed store.
func New(path string, logger zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// Load reads the snapshot. A missing file yields storage.ErrNotFound.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("path", s.path).Msg("state file missing")
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save replaces the snapshot file atomically.
func (s *Store) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := storage.EnsureDir(dir); err != nil {
		return err
	}

	tempFile, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return err
	}
	cleanup := func() {
		_ = os.Remove(tempFile.Name())
	}

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		cleanup()
		return err
	}
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		cleanup()
		return err
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tempFile.Name(), s.path); err != nil {
		cleanup()
		return err
	}

	if dirHandle, err := os.Open(dir); err == nil {
		_ = dirHandle.Sync()
		_ = dirHandle.Close()
	}
	return nil
}

// Close is a no-op; the file is not held open between writes.
func (s *Store) Close() error { return nil }
