package database

import (
	"context"
	"database/sql"
	"errors"
)

// GetSetting returns the value stored under key. ok is false when the key is
// absent or NULL.
func (d *Database) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value *string
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapSettingErr("get", key, err)
	}
	if value != nil {
		return *value, true, nil
	}
	return "", false, nil
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	_, err := d.DB.ExecContext(ctx, "INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at", key, value)
	return wrapSettingErr("set", key, err)
}
