// Package sqlite stores the note collection as one row of a SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

// DefaultSlot is the row key used when Config.Slot is empty.
const DefaultSlot = "notes"

// Config holds the configuration for the SQLite store.
type Config struct {
	Path     string // database file, or ":memory:"
	Slot     string
	ReadOnly bool
	Logger   *slog.Logger
	Options  []OpenOption
}

// Store implements core.Store on the slots table.
type Store struct {
	db     *sql.DB
	config Config

	mu       sync.RWMutex
	lastSave *time.Time
}

// NewStore opens the database and ensures the schema exists.
// A ReadOnly store opens an existing file with mode=ro and writes nothing.
func NewStore(cfg Config) (*Store, error) {
	cfg.Path = strings.TrimSpace(cfg.Path)
	if cfg.Path == "" {
		return nil, errors.New("sqlite store path is required")
	}
	if cfg.Slot == "" {
		cfg.Slot = DefaultSlot
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	opts := cfg.Options
	if cfg.ReadOnly {
		opts = append(append([]OpenOption{}, opts...), WithReadOnly())
	}
	db, err := Open(cfg.Path, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, config: cfg}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the slot row. A missing row or an undecodable value yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]core.Note, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.config.Slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []core.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}

	notes, err := core.UnmarshalCollection([]byte(value))
	if err != nil {
		s.config.Logger.Warn("discarding undecodable slot", "slot", s.config.Slot, "error", err)
		return []core.Note{}, nil
	}
	return notes, nil
}

// Save upserts the slot row.
func (s *Store) Save(ctx context.Context, notes []core.Note) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	data, err := core.MarshalCollection(notes)
	if err != nil {
		return fmt.Errorf("failed to encode slot: %w", err)
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.config.Slot, string(data), now.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}

	s.mu.Lock()
	s.lastSave = &now
	s.mu.Unlock()
	return nil
}

var _ core.Store = (*Store)(nil)
