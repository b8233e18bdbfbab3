package persona

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Lookup for an unknown persona id.
var ErrNotFound = errors.New("persona not found")

// Store exposes persona retrieval for handlers and the prompt builder.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
}

// MemoryStore is a read-only Store built once at startup.
type MemoryStore struct {
	order []string
	byID  map[string]Persona
}

// NewMemoryStore indexes the supplied personas. Later duplicates replace
// earlier entries with the same id.
func NewMemoryStore(items []Persona) *MemoryStore {
	s := &MemoryStore{byID: make(map[string]Persona, len(items))}
	for _, item := range items {
		if _, seen := s.byID[item.ID]; !seen {
			s.order = append(s.order, item.ID)
		}
		s.byID[item.ID] = clone(item)
	}
	return s
}

// List returns the personas in registration order.
func (s *MemoryStore) List() []Persona {
	out := make([]Persona, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.byID[id]))
	}
	return out
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	p, ok := s.byID[id]
	if !ok {
		return Persona{}, false
	}
	return clone(p), true
}

// Lookup is FindByID for callers that want an error.
func Lookup(store Store, id string) (Persona, error) {
	p, ok := store.FindByID(id)
	if !ok {
		return Persona{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// clone keeps callers from mutating the shared service slice.
func clone(p Persona) Persona {
	p.Services = append([]Service(nil), p.Services...)
	return p
}
