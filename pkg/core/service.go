package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Service handles the business logic for notes.
// Every mutation is a load-mutate-save sequence against the Store, serialized
// by a single-writer lock so concurrent callers cannot lose updates.
type Service struct {
	mu     sync.RWMutex
	store  Store
	ids    *IDGenerator
	now    func() time.Time
	logger *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source (used for ids and timestamps).
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithServiceLogger sets the logger for the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new Service.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		ids:    &IDGenerator{},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Create validates the input and prepends a new note to the collection.
func (s *Service) Create(ctx context.Context, text, category string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, fmt.Errorf("%w: note text cannot be empty", ErrValidation)
	}
	category, err := NormalizeCategory(category)
	if err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return Note{}, fmt.Errorf("failed to load notes: %w", err)
	}

	now := s.now()
	note := Note{
		ID:        s.ids.Next(now, maxID(notes)),
		Text:      text,
		Category:  category,
		Timestamp: now.UnixMilli(),
	}

	notes = append([]Note{note}, notes...)
	if err := s.store.Save(ctx, notes); err != nil {
		return Note{}, fmt.Errorf("failed to save notes: %w", err)
	}

	s.logger.Debug("note created", "id", note.ID, "category", note.Category)
	return note, nil
}

// Update replaces the text and category of an existing note in place.
// The id and the position in the collection are preserved; the timestamp is refreshed.
func (s *Service) Update(ctx context.Context, id int64, text, category string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, fmt.Errorf("%w: note text cannot be empty", ErrValidation)
	}
	category, err := NormalizeCategory(category)
	if err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return Note{}, fmt.Errorf("failed to load notes: %w", err)
	}

	idx := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if idx == -1 {
		return Note{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	notes[idx].Text = text
	notes[idx].Category = category
	notes[idx].Timestamp = s.now().UnixMilli()

	if err := s.store.Save(ctx, notes); err != nil {
		return Note{}, fmt.Errorf("failed to save notes: %w", err)
	}

	s.logger.Debug("note updated", "id", id, "category", category)
	return notes[idx], nil
}

// Remove deletes the note with the given id.
// It reports whether a note was removed; removing an absent id is not an error
// and leaves the store untouched.
func (s *Service) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load notes: %w", err)
	}

	kept := slices.DeleteFunc(slices.Clone(notes), func(n Note) bool { return n.ID == id })
	if len(kept) == len(notes) {
		return false, nil
	}

	if err := s.store.Save(ctx, kept); err != nil {
		return false, fmt.Errorf("failed to save notes: %w", err)
	}

	s.logger.Debug("note removed", "id", id)
	return true, nil
}

// Clear removes every note from the collection.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, []Note{}); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	s.logger.Debug("notes cleared")
	return nil
}

// FindAll returns the whole collection, newest first.
func (s *Service) FindAll(ctx context.Context) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	return notes, nil
}

// FindByID retrieves a single note.
func (s *Service) FindByID(ctx context.Context, id int64) (Note, error) {
	notes, err := s.FindAll(ctx)
	if err != nil {
		return Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Search loads the collection and applies the criteria.
func (s *Service) Search(ctx context.Context, c Criteria) ([]Note, error) {
	notes, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(notes, c), nil
}

// Watch observes changes made to the slot if the store supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, fmt.Errorf("store does not support watching")
	}
	return w.Watch(ctx)
}

// Close releases the store if it holds resources (database handles).
func (s *Service) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Store returns the underlying store.
func (s *Service) Store() Store {
	return s.store
}
