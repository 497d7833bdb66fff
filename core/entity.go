package core

import "sync/atomic"

// Entity is a unique identifier for anything living in the arena
// Zero is reserved for "no entity"
type Entity uint64

// EntityAllocator hands out monotonically increasing entity ids
type EntityAllocator struct {
	next atomic.Uint64
}

// Next returns a fresh non-zero entity
func (a *EntityAllocator) Next() Entity {
	return Entity(a.next.Add(1))
}
