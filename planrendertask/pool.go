// Package planrendertask implements the Persistent Render Task: the same
// pipeline -> TUC -> VAO -> instance shape as rendertask.Tree, but with
// pool-allocated nodes that survive across frames so an object entering or
// leaving visibility costs one slot acquire/release instead of a full tree
// rebuild. Slot reuse follows deoglCollideListManager.h's free-list
// discipline (a flat array of {payload, inUse} cells, grown on demand,
// first-fit reused on release) generalized with a generation counter per
// slot so a Handle captured before its slot was reclaimed is detected
// instead of silently aliasing new data.
package planrendertask

// Handle identifies a pool slot at the generation it was acquired.
// Release bumps the slot's generation, so any Handle still held
// by a caller becomes stale and Pool.Valid reports it as such.
type Handle struct {
	index      int
	generation uint32
}

type slot[T any] struct {
	payload    T
	inUse      bool
	generation uint32
}

// Pool is a generation-counted free-list allocator over T, grounded on
// deoglCollideListManager's pListCount/pListSize/pFindNextList trio: slots
// are reused first-fit before the backing array grows.
type Pool[T any] struct {
	slots []slot[T]
	free  []int
}

// NewPool creates an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

// Acquire returns a Handle to a zero-valued T, reusing a released slot
// first-fit before appending a new one.
func (p *Pool[T]) Acquire() Handle {
	if n := len(p.free); n > 0 {
		best := 0
		for i := 1; i < n; i++ {
			if p.free[i] < p.free[best] {
				best = i
			}
		}
		idx := p.free[best]
		p.free = append(p.free[:best], p.free[best+1:]...)
		p.slots[idx].inUse = true
		return Handle{index: idx, generation: p.slots[idx].generation}
	}
	idx := len(p.slots)
	p.slots = append(p.slots, slot[T]{inUse: true})
	return Handle{index: idx, generation: 0}
}

// Release frees h's slot for reuse and bumps its generation, invalidating
// any other Handle still referencing it.
func (p *Pool[T]) Release(h Handle) {
	if !p.Valid(h) {
		return
	}
	s := &p.slots[h.index]
	s.inUse = false
	s.generation++
	var zero T
	s.payload = zero
	p.free = append(p.free, h.index)
}

// Valid reports whether h still refers to a live slot at its acquired generation.
func (p *Pool[T]) Valid(h Handle) bool {
	if h.index < 0 || h.index >= len(p.slots) {
		return false
	}
	s := &p.slots[h.index]
	return s.inUse && s.generation == h.generation
}

// Get returns the payload for h and whether h is still valid.
func (p *Pool[T]) Get(h Handle) (T, bool) {
	var zero T
	if !p.Valid(h) {
		return zero, false
	}
	return p.slots[h.index].payload, true
}

// Set overwrites the payload for h, reporting false without effect if h is stale.
func (p *Pool[T]) Set(h Handle, payload T) bool {
	if !p.Valid(h) {
		return false
	}
	p.slots[h.index].payload = payload
	return true
}

// Len returns the number of slots currently in use.
func (p *Pool[T]) Len() int {
	return len(p.slots) - len(p.free)
}

// Cap returns the backing array size, in-use and free slots combined.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}
