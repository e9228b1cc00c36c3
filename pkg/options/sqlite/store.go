// Package sqlite provides a SQLite-backed options store so flash messages
// and other small blobs survive process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists option values in a single SQLite table.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a SQLite options store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: ping db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return store, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) migrate() error {
	_, err := s.sqlDB.Exec(`CREATE TABLE IF NOT EXISTS options (
		option_name TEXT PRIMARY KEY,
		option_value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	return err
}

// Get loads an option value by name.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, fmt.Errorf("sqlite: store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, fmt.Errorf("sqlite: key is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT option_value FROM options WHERE option_name = ?`,
		key,
	)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("sqlite: get option: %w", err)
	}
	return value, true, nil
}

// Set upserts an option value by name.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("sqlite: store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("sqlite: key is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO options (option_name, option_value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(option_name) DO UPDATE SET
			option_value = excluded.option_value,
			updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: set option: %w", err)
	}
	return nil
}

// Delete removes an option by name. Missing names are a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("sqlite: store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("sqlite: key is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM options WHERE option_name = ?`, key); err != nil {
		return fmt.Errorf("sqlite: delete option: %w", err)
	}
	return nil
}
