package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type openConfig struct {
	busyTimeout int
	synchronous string
	mkdirAll    bool
	readOnly    bool
}

func defaultOpenConfig() openConfig {
	return openConfig{
		busyTimeout: 10_000,
		synchronous: "NORMAL",
		mkdirAll:    true,
	}
}

// OpenOption customises Open.
type OpenOption func(*openConfig)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) OpenOption { return func(c *openConfig) { c.busyTimeout = ms } }

// WithSynchronous sets PRAGMA synchronous. Default: "NORMAL".
func WithSynchronous(mode string) OpenOption { return func(c *openConfig) { c.synchronous = mode } }

// WithoutMkdirAll fails instead of creating the parent directory.
func WithoutMkdirAll() OpenOption { return func(c *openConfig) { c.mkdirAll = false } }

// WithReadOnly opens an existing database file with mode=ro. Nothing is created
// or written: no directory, no journal mode change, no schema.
func WithReadOnly() OpenOption { return func(c *openConfig) { c.readOnly = true } }

// Open opens a SQLite database with WAL journaling and the slots table in place.
func Open(path string, opts ...OpenOption) (*sql.DB, error) {
	cfg := defaultOpenConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if path == ":memory:" {
		// A private in-memory database never touches disk and starts without the table.
		cfg.readOnly = false
	}
	if cfg.readOnly {
		return openReadOnly(path, cfg)
	}

	if cfg.mkdirAll && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		fmt.Sprintf("PRAGMA synchronous = %s", cfg.synchronous),
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: exec schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

func openReadOnly(path string, cfg openConfig) (*sql.DB, error) {
	dsn := "file:" + filepath.ToSlash(path) + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	p := fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout)
	if _, err := db.Exec(p); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: %s: %w", p, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

const schema = `CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`
