package core

import "context"

// Store reads and writes the whole note collection to a single persistence slot.
// It holds no business logic.
type Store interface {
	// Load returns the persisted collection. A missing or undecodable slot
	// yields an empty collection and a nil error; only I/O failures are returned.
	Load(ctx context.Context) ([]Note, error)

	// Save replaces the slot with the full collection.
	Save(ctx context.Context, notes []Note) error
}

// Watchable is implemented by stores that can report changes made to the slot
// by another process.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// EventType represents the type of change observed on the slot.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the slot.
type Event struct {
	Type      EventType
	Slot      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Slot
}

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit message)
// to stores that version the slot.
const ChangeReasonKey contextKey = "change_reason"
