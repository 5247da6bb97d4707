package store

import (
	"fmt"
	"sort"
	"sync"

	"treasury_go/internal/domain"
)

// EventKind tags a store notification. Only Added is emitted; the others are reserved.
type EventKind uint8

const (
	Added EventKind = iota
	Removed
	Updated
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "ADDED"
	case Removed:
		return "REMOVED"
	case Updated:
		return "UPDATED"
	default:
		return "UNKNOWN"
	}
}

// Event is delivered to every listener on publish.
type Event[V any] struct {
	Kind  EventKind
	Value V
}

// Listener receives store events synchronously, in registration order.
type Listener[V any] interface {
	OnEvent(ev Event[V])
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc[V any] func(ev Event[V])

func (f ListenerFunc[V]) OnEvent(ev Event[V]) {
	f(ev)
}

// OnAdd builds a listener that only reacts to Added events.
func OnAdd[V any](fn func(v V)) Listener[V] {
	return ListenerFunc[V](func(ev Event[V]) {
		if ev.Kind == Added {
			fn(ev.Value)
		}
	})
}

// Store keeps the latest value per key and fans every publish out to its listeners.
// The lock is never held while listeners run, so listeners may publish again (into this
// store or any other) without deadlocking.
type Store[V domain.Keyed] struct {
	name      string
	mu        sync.RWMutex
	values    map[string]V
	listeners []Listener[V]
}

// New creates an empty store. name is used in error messages and logs.
func New[V domain.Keyed](name string) *Store[V] {
	return &Store[V]{
		name:   name,
		values: make(map[string]V),
	}
}

func (s *Store[V]) Name() string {
	return s.name
}

// Upsert replaces the value for key, then notifies every listener with Added.
func (s *Store[V]) Upsert(key string, v V) {
	s.mu.Lock()
	s.values[key] = v
	listeners := s.listeners
	s.mu.Unlock()

	ev := Event[V]{Kind: Added, Value: v}
	for _, l := range listeners {
		l.OnEvent(ev)
	}
}

// Replace overwrites the value for key without notifying listeners.
func (s *Store[V]) Replace(key string, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = v
}

// Publish is Upsert under the value's own key.
func (s *Store[V]) Publish(v V) {
	s.Upsert(v.Key(), v)
}

// Get returns the latest value, or domain.ErrKeyNotFound.
func (s *Store[V]) Get(key string) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%s store: %q: %w", s.name, key, domain.ErrKeyNotFound)
	}
	return v, nil
}

// Lookup is Get without the error.
func (s *Store[V]) Lookup(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// AddListener appends to the fan-out list. There is no removal.
func (s *Store[V]) AddListener(l Listener[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy on write: an Upsert in progress keeps iterating its own snapshot.
	next := make([]Listener[V], len(s.listeners), len(s.listeners)+1)
	copy(next, s.listeners)
	s.listeners = append(next, l)
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}

// Keys returns all keys in sorted order.
func (s *Store[V]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns all values sorted by key.
func (s *Store[V]) Values() []V {
	keys := s.Keys()

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]V, 0, len(keys))
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			result = append(result, v)
		}
	}
	return result
}
