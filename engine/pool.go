package engine

// Resettable is implemented by pooled values; Reset runs when a slot is reused
type Resettable interface {
	Reset()
}

// Handle addresses a pool slot; a stale generation never resolves
type Handle struct {
	Index      uint32
	Generation uint32
}

// IsZero reports an unassigned handle
func (h Handle) IsZero() bool {
	return h.Generation == 0
}

type poolSlot[T Resettable] struct {
	value      T
	generation uint32
	active     bool
}

// Pool is a slot arena of reusable values
// A slot is owned by exactly one live handle between Spawn and Despawn
type Pool[T Resettable] struct {
	newFn  func() T
	slots  []poolSlot[T]
	free   []uint32
	active int
}

// NewPool creates a pool that builds values with newFn on demand
func NewPool[T Resettable](newFn func() T, capacity int) *Pool[T] {
	return &Pool[T]{
		newFn: newFn,
		slots: make([]poolSlot[T], 0, capacity),
		free:  make([]uint32, 0, capacity),
	}
}

// Spawn takes a free slot, resetting a reused value, or grows the arena
func (p *Pool[T]) Spawn() (Handle, T) {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[idx].value.Reset()
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, poolSlot[T]{value: p.newFn()})
	}
	s := &p.slots[idx]
	s.generation++
	s.active = true
	p.active++
	return Handle{Index: idx, Generation: s.generation}, s.value
}

// Get resolves a live handle
func (p *Pool[T]) Get(h Handle) (T, bool) {
	var zero T
	if int(h.Index) >= len(p.slots) {
		return zero, false
	}
	s := &p.slots[h.Index]
	if !s.active || s.generation != h.Generation {
		return zero, false
	}
	return s.value, true
}

// Despawn returns the slot; stale or repeated handles are rejected with false
func (p *Pool[T]) Despawn(h Handle) bool {
	if int(h.Index) >= len(p.slots) {
		return false
	}
	s := &p.slots[h.Index]
	if !s.active || s.generation != h.Generation {
		return false
	}
	s.active = false
	p.active--
	p.free = append(p.free, h.Index)
	return true
}

// Active returns the number of live slots
func (p *Pool[T]) Active() int {
	return p.active
}

// Capacity returns the number of allocated slots
func (p *Pool[T]) Capacity() int {
	return len(p.slots)
}

// Each visits live slots in index order; fn may despawn the visited handle
func (p *Pool[T]) Each(fn func(h Handle, v T)) {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.active {
			continue
		}
		fn(Handle{Index: uint32(i), Generation: s.generation}, s.value)
	}
}
