package engine

import (
	"sync"

	"github.com/lixenwraith/arsenal/core"
)

// Store maps entities to one capability or component type T
// Insertion order is kept for deterministic iteration
type Store[T any] struct {
	mu         sync.RWMutex
	components map[core.Entity]T
	entities   []core.Entity
}

// NewStore creates an empty store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// SetComponent inserts or replaces the value for an entity
func (s *Store[T]) SetComponent(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
}

// GetComponent retrieves the value for an entity
func (s *Store[T]) GetComponent(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// RemoveEntity drops the entity, keeping order of the rest
func (s *Store[T]) RemoveEntity(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
}

// HasEntity checks if entity has this component
func (s *Store[T]) HasEntity(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// GetAllEntities returns a snapshot of entities in insertion order
func (s *Store[T]) GetAllEntities() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// CountEntities returns number of entities with this component
func (s *Store[T]) CountEntities() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Range visits a snapshot in insertion order until fn returns false
func (s *Store[T]) Range(fn func(e core.Entity, val T) bool) {
	s.mu.RLock()
	entities := make([]core.Entity, len(s.entities))
	copy(entities, s.entities)
	s.mu.RUnlock()

	for _, e := range entities {
		val, ok := s.GetComponent(e)
		if !ok {
			continue
		}
		if !fn(e, val) {
			return
		}
	}
}

// ClearAllComponents removes all components from this store
func (s *Store[T]) ClearAllComponents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = make(map[core.Entity]T)
	s.entities = make([]core.Entity, 0, 64)
}
