// Package reflection implements the Reflection/GI Pipeline: an environment
// map slot manager with LRU reclaim, a screen-space reflection ray march,
// K-way barycentric environment-map blending for pixels the ray march
// misses, and a round-robin GI probe update scheduler. Grounded on
// deoglRenderReflection.cpp's deoglEnvMapSlotManager-driven slot
// reservation and its SSR/envmap-fallback composition.
package reflection

import (
	"container/list"
	"fmt"
)

// SlotManager assigns a fixed number of texture-array slots to environment
// maps on demand, reclaiming the least-recently-used slot when a new
// environment map needs one and none are free — mirroring
// deoglEnvMapSlotManager's bounded-slot-count reuse discipline rather than
// growing the array per environment map in the scene.
type SlotManager struct {
	capacity int
	lru      *list.List
	byOwner  map[uint64]*list.Element
}

type slotEntry struct {
	slot  int
	owner uint64
}

// NewSlotManager creates a SlotManager over capacity texture-array layers.
func NewSlotManager(capacity int) *SlotManager {
	m := &SlotManager{
		capacity: capacity,
		lru:      list.New(),
		byOwner:  make(map[uint64]*list.Element),
	}
	for i := 0; i < capacity; i++ {
		m.lru.PushBack(&slotEntry{slot: i, owner: 0})
	}
	return m
}

// Acquire returns the texture-array slot assigned to owner, assigning a
// free or reclaimed slot if it doesn't have one yet. The returned
// reclaimed bool is true when a different owner's slot was evicted to make
// room, so the caller knows to mark that owner's environment map dirty for
// re-render next time it becomes visible.
//
// Parameters:
//   - owner: a stable identifier for the environment map (e.g. its probe index)
//
// Returns:
//   - slot: the assigned texture-array layer index
//   - reclaimedOwner: the owner evicted to free this slot, or 0 if none
//   - reclaimed: true if a slot was reclaimed from another owner
//   - error: non-nil if capacity is zero
func (m *SlotManager) Acquire(owner uint64) (slot int, reclaimedOwner uint64, reclaimed bool, err error) {
	if m.capacity == 0 {
		return 0, 0, false, fmt.Errorf("reflection: slot manager has zero capacity")
	}
	if e, ok := m.byOwner[owner]; ok {
		m.lru.MoveToBack(e)
		return e.Value.(*slotEntry).slot, 0, false, nil
	}

	// Front of the list is the least-recently-used slot.
	e := m.lru.Front()
	entry := e.Value.(*slotEntry)
	if entry.owner != 0 {
		reclaimedOwner = entry.owner
		reclaimed = true
		delete(m.byOwner, entry.owner)
	}

	entry.owner = owner
	m.lru.MoveToBack(e)
	m.byOwner[owner] = e

	return entry.slot, reclaimedOwner, reclaimed, nil
}

// Release gives owner's slot back to the free pool, moving it to the front
// of the LRU list so it is reused before any still-in-use slot is evicted.
func (m *SlotManager) Release(owner uint64) {
	e, ok := m.byOwner[owner]
	if !ok {
		return
	}
	delete(m.byOwner, owner)
	e.Value.(*slotEntry).owner = 0
	m.lru.MoveToFront(e)
}

// Touch marks owner's slot as most-recently-used without reassigning it,
// called once per frame an environment map is actually sampled so an
// environment map that is visible every frame is never evicted in favor of
// one visible only occasionally.
func (m *SlotManager) Touch(owner uint64) {
	if e, ok := m.byOwner[owner]; ok {
		m.lru.MoveToBack(e)
	}
}

// Len returns the number of slots currently assigned to an owner.
func (m *SlotManager) Len() int {
	return len(m.byOwner)
}

// Capacity returns the total number of texture-array slots.
func (m *SlotManager) Capacity() int {
	return m.capacity
}
