package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no snapshot has been saved yet.
var ErrNotFound = errors.New("storage: record not found")

// Store holds the single persisted engine snapshot.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}
