// Package bolt stores the engine snapshot in an embedded bbolt database.
package bolt

import (
	"context"
	"fmt"
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/storage"
	"go.etcd.io/bbolt"
)

const bucketState = "state"

// Store implements storage.Store using bbolt.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store.
func Open(path string) (*Store, error) {
	if err := storage.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketState)); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucketState, err)
		}
		return nil
	})
}

// Load returns the stored snapshot.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketState))
		if bucket == nil {
			return fmt.Errorf("bucket %s missing", bucketState)
		}
		value := bucket.Get([]byte(config.StateKey))
		if value == nil {
			return storage.ErrNotFound
		}
		// bbolt values are only valid inside the transaction.
		out = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save overwrites the stored snapshot.
func (s *Store) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketState))
		if bucket == nil {
			return fmt.Errorf("bucket %s missing", bucketState)
		}
		return bucket.Put([]byte(config.StateKey), data)
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
