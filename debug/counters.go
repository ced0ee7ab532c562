// Package debug implements the hierarchical debug-information tree: named
// per-frame counters and CPU wall-clock phase timers, plus a texture-to-PNG snapshot
// dumper for visual debugging. Grounded on deoglRenderPlanDebug.h's flat
// set of named frame counters and deoglRenderDebug.h's texture-display
// helpers, generalized from a fixed struct of named fields into name-keyed
// maps any phase can add counters to without a debug.go change.
package debug

import "sync"

// Counters is a per-frame set of named integer and float statistics,
// mirroring deoglRenderPlanDebug.h's ViewObjects/RenderedTriangles/
// OccMapRenderTime-style fields but keyed by name instead of one field per
// stat, so plan.Phase implementations can add their own without touching
// this package.
type Counters struct {
	mu     sync.Mutex
	ints   map[string]int
	floats map[string]float64
}

// NewCounters creates an empty counter set.
func NewCounters() *Counters {
	return &Counters{
		ints:   make(map[string]int),
		floats: make(map[string]float64),
	}
}

// Increment adds count to the named integer counter, creating it at zero
// if this is its first use this frame.
func (c *Counters) Increment(name string, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ints[name] += count
}

// Int returns the current value of the named integer counter.
func (c *Counters) Int(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ints[name]
}

// SetFloat sets the named float counter, replacing any prior value —
// for per-frame timings (deoglRenderPlanDebug.h's OccMapRenderTime,
// OccTestTime) that are measured, not accumulated.
func (c *Counters) SetFloat(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.floats[name] = value
}

// Float returns the current value of the named float counter.
func (c *Counters) Float(name string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.floats[name]
}

// Reset clears every counter for the next frame, per
// deoglRenderPlanDebug.h's Reset.
func (c *Counters) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.ints {
		delete(c.ints, k)
	}
	for k := range c.floats {
		delete(c.floats, k)
	}
}

// Snapshot returns a copy of every counter currently set, for reporting
// without holding the lock open.
func (c *Counters) Snapshot() (ints map[string]int, floats map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ints = make(map[string]int, len(c.ints))
	for k, v := range c.ints {
		ints[k] = v
	}
	floats = make(map[string]float64, len(c.floats))
	for k, v := range c.floats {
		floats[k] = v
	}
	return ints, floats
}
