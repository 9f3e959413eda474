package engine

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateKey   = errors.New("state key already registered")
	ErrEmptyKey       = errors.New("state key is empty")
	ErrNilState       = errors.New("state is nil")
	ErrRegistryFrozen = errors.New("state registry is frozen")
)

// StateRegistry owns every state of the application by key. It never calls
// lifecycle methods on them.
type StateRegistry struct {
	states map[string]AppState
	keys   []string
	frozen bool
}

func NewStateRegistry() *StateRegistry {
	return &StateRegistry{
		states: make(map[string]AppState),
	}
}

func (r *StateRegistry) Register(key string, state AppState) error {
	switch {
	case r.frozen:
		return fmt.Errorf("cannot register %q: %w", key, ErrRegistryFrozen)
	case key == "":
		return ErrEmptyKey
	case state == nil:
		return fmt.Errorf("cannot register %q: %w", key, ErrNilState)
	}
	if _, exists := r.states[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	r.states[key] = state
	r.keys = append(r.keys, key)
	return nil
}

func (r *StateRegistry) Lookup(key string) (AppState, bool) {
	state, ok := r.states[key]
	return state, ok
}

// Keys returns the registered keys in registration order.
func (r *StateRegistry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r *StateRegistry) Len() int {
	return len(r.keys)
}

// Freeze rejects any further registration.
func (r *StateRegistry) Freeze() {
	r.frozen = true
}

func (r *StateRegistry) Frozen() bool {
	return r.frozen
}
