package bolt

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState is the introspection snapshot of a bbolt store.
type StoreState struct {
	Path     string     `json:"path"`
	Slot     string     `json:"slot"`
	ReadOnly bool       `json:"read_only"`
	LastSave *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:     s.config.Path,
		Slot:     s.config.Slot,
		ReadOnly: s.config.ReadOnly,
		LastSave: s.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "bolt"
}

var (
	_ introspection.Introspectable = (*Store)(nil)
	_ introspection.Component      = (*Store)(nil)
)
