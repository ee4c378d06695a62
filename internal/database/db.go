// Package database keeps the engine snapshot in a SQLite settings table.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/storage"
	_ "github.com/mattn/go-sqlite3"
)

// Database wraps the SQLite connection.
type Database struct {
	DB *sql.DB
}

// Open opens (or creates) the database file and its schema.
func Open(path string) (*Database, error) {
	if err := storage.EnsureParentDir(path); err != nil {
		return nil, wrapSettingErr("open", path, err)
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, wrapSettingErr("open", path, err)
	}
	// One writer at a time keeps SQLITE_BUSY out of the save path.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, wrapSettingErr("ping", path, err)
	}
	d := &Database{DB: db}
	if err := d.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, query := range queries {
		if _, err := d.DB.Exec(query); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Load returns the stored snapshot.
func (d *Database) Load(ctx context.Context) ([]byte, error) {
	value, ok, err := d.GetSetting(ctx, config.StateKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, storage.ErrNotFound
	}
	return []byte(value), nil
}

// Save overwrites the stored snapshot.
func (d *Database) Save(ctx context.Context, data []byte) error {
	return d.SetSetting(ctx, config.StateKey, string(data))
}

// Close closes the connection.
func (d *Database) Close() error {
	return d.DB.Close()
}
