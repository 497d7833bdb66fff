package config

import (
	"fmt"
	"sync"
)

// Store caches loaded configuration values by key with reference counting
// A value is loaded on first Acquire and evicted when its last handle is released,
// unless the key is pinned
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	value  any
	refs   int
	pinned bool
}

// Handle is one reference to a cached value
type Handle[T any] struct {
	store    *Store
	key      string
	value    T
	released bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Acquire returns a handle to key, calling load only when the key is not cached
// Load runs under the store lock and must not call back into the store
func Acquire[T any](s *Store, key string, load func() (T, error)) (*Handle[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		v, err := load()
		if err != nil {
			return nil, err
		}
		e = &entry{value: v}
		s.entries[key] = e
	}
	v, ok := e.value.(T)
	if !ok {
		return nil, fmt.Errorf("%w: key %q holds %T", ErrCatalog, key, e.value)
	}
	e.refs++
	return &Handle[T]{store: s, key: key, value: v}, nil
}

// Value returns the cached value
func (h *Handle[T]) Value() T {
	return h.value
}

// Key returns the cache key
func (h *Handle[T]) Key() string {
	return h.key
}

// Release drops this reference; calling it again is a no-op
func (h *Handle[T]) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	h.store.release(h.key)
}

func (s *Store) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return
	}
	if e.refs > 0 {
		e.refs--
	}
	if e.refs == 0 && !e.pinned {
		delete(s.entries, key)
	}
}

// Pin keeps key cached regardless of references; unknown keys are ignored
func (s *Store) Pin(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.pinned = true
	}
}

// Refs returns the live reference count of key
func (s *Store) Refs(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.refs
	}
	return 0
}

// Cached reports whether key currently holds a value
func (s *Store) Cached(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

// Catalog acquires the catalog at path through the store
// The empty path shares the embedded default catalog
func (s *Store) Catalog(path string) (*Handle[*Catalog], error) {
	return Acquire(s, "catalog:"+path, func() (*Catalog, error) {
		return Load(path)
	})
}
