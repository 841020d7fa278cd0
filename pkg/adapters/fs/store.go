// Package fs stores the note collection as a single JSON file on disk.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
)

// DefaultSlot is the slot name used when Config.Slot is empty.
const DefaultSlot = "notes"

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string // directory holding the slot file
	Slot         string // slot name; the file is <Slot>.json
	MustExist    bool   // fail Initialize instead of creating Path
	Versioning   bool   // commit the slot file to git after every save
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error) // receives watcher runtime errors
}

// Store implements core.Store on top of one JSON file.
type Store struct {
	Path   string
	config Config
	git    *git.Client

	mu            sync.RWMutex
	watcherActive bool
	lastSave      *time.Time
}

// NewStore creates a new filesystem-backed store. It performs no I/O.
func NewStore(config Config) *Store {
	if config.Slot == "" {
		config.Slot = DefaultSlot
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Store{
		Path:   config.Path,
		config: config,
		git:    git.NewClient(config.Path, config.Logger),
	}
}

// SlotPath returns the absolute location of the slot file.
func (s *Store) SlotPath() string {
	return filepath.Join(s.Path, s.slotFile())
}

func (s *Store) slotFile() string {
	return s.config.Slot + ".json"
}

// Initialize ensures the directory exists and, with versioning, that it is a git repository.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
	} else if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	if !s.config.Versioning || s.config.ReadOnly {
		return nil
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}
	if s.git.IsRepo() {
		return nil
	}
	if err := s.git.Init(); err != nil {
		return fmt.Errorf("failed to git init: %w", err)
	}
	if err := s.ensureIgnore(); err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}
	if err := s.git.Add(".gitignore"); err != nil {
		return fmt.Errorf("failed to add .gitignore: %w", err)
	}
	if err := s.git.Commit(git.FormatCommitMessage(git.CommitTypeChore, "", "ignore jotter lock and temp files", "")); err != nil {
		return fmt.Errorf("failed to commit .gitignore: %w", err)
	}
	return nil
}

func (s *Store) ensureIgnore() error {
	ignorePath := filepath.Join(s.Path, ".gitignore")
	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	existing := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		existing[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, entry := range []string{git.LockFile, TempFilePrefix + "*"} {
		if !existing[entry] {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	_, err = f.WriteString(strings.Join(missing, "\n") + "\n")
	return err
}

// Load reads the slot. A missing file or a corrupt payload yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.SlotPath())
	if os.IsNotExist(err) {
		return []core.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}

	notes, err := core.UnmarshalCollection(data)
	if err != nil {
		s.config.Logger.Warn("discarding undecodable slot", "path", s.SlotPath(), "error", err)
		return []core.Note{}, nil
	}
	return notes, nil
}

// Save overwrites the slot atomically and, with versioning, commits it.
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
	if err := writeFileAtomic(s.SlotPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	s.lastSave = &now
	s.mu.Unlock()

	if s.config.Versioning {
		return s.commit(ctx)
	}
	return nil
}

func (s *Store) commit(ctx context.Context) error {
	unlock, err := s.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	status, err := s.git.Status(s.slotFile())
	if err != nil {
		return fmt.Errorf("failed to git status: %w", err)
	}
	if status == "" {
		return nil
	}

	if err := s.git.Add(s.slotFile()); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}

	msg := git.FormatCommitMessage(git.CommitTypeDocs, s.config.Slot, "update "+s.config.Slot, "")
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	if err := s.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
