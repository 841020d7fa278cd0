// Package bolt stores the note collection as one value in a bbolt database.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/aretw0/jotter/pkg/core"
)

// DefaultSlot is the key used when Config.Slot is empty.
const DefaultSlot = "notes"

var bucketSlots = []byte("slots")

// Config holds the configuration for the bbolt store.
type Config struct {
	Path     string // database file
	Slot     string
	ReadOnly bool
	Timeout  time.Duration // how long Open waits for the file lock
	Logger   *slog.Logger
}

// Store implements core.Store with a single key in the "slots" bucket.
type Store struct {
	db     *bbolt.DB
	config Config

	mu       sync.RWMutex
	lastSave *time.Time
}

// NewStore opens (creating if needed) the database at cfg.Path.
func NewStore(cfg Config) (*Store, error) {
	cfg.Path = strings.TrimSpace(cfg.Path)
	if cfg.Path == "" {
		return nil, errors.New("bolt store path is required")
	}
	if cfg.Slot == "" {
		cfg.Slot = DefaultSlot
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if !cfg.ReadOnly {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: cfg.Timeout, ReadOnly: cfg.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	if !cfg.ReadOnly {
		err = db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketSlots)
			return err
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return &Store{db: db, config: cfg}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the slot value. A missing or undecodable value yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSlots)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(s.config.Slot)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	if data == nil {
		return []core.Note{}, nil
	}

	notes, err := core.UnmarshalCollection(data)
	if err != nil {
		s.config.Logger.Warn("discarding undecodable slot", "slot", s.config.Slot, "error", err)
		return []core.Note{}, nil
	}
	return notes, nil
}

// Save replaces the slot value in one transaction.
func (s *Store) Save(ctx context.Context, notes []core.Note) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := core.MarshalCollection(notes)
	if err != nil {
		return fmt.Errorf("failed to encode slot: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSlots)
		if err != nil {
			return err
		}
		return b.Put([]byte(s.config.Slot), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	s.lastSave = &now
	s.mu.Unlock()
	return nil
}

var _ core.Store = (*Store)(nil)
