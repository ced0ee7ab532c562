// Package shadowcache implements the Shadow Caster Cache: each light owns
// one Caster aggregating three tiers — Solid, Transparent, Ambient — each
// with three slots — Static, Dynamic, Temporary. Static is rebuilt only
// when the caster set or map size changes; Dynamic is rebuilt per frame
// when dirty; Temporary is borrowed from a shared pool for one-shot,
// layer-mask-restricted renders (e.g. masked reflections) and returned
// afterward. Sizing and defaults are grounded on engine/light/shadow.go's
// ShadowMapResolution/DefaultShadow* constants, generalized from a single
// directional shadow map to the full tier/slot matrix.
package shadowcache

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Tier identifies which of the three shadow tiers a map belongs to.
type Tier int

const (
	// TierSolid holds depth/depth-cube maps for opaque geometry.
	TierSolid Tier = iota
	// TierTransparent holds depth + modulation-color maps for alpha-testable
	// and colored-transparent casters.
	TierTransparent
	// TierAmbient holds depth-only maps used to modulate the fixed ambient term.
	TierAmbient
)

// Slot identifies which of the three caching lifetimes a map uses.
type Slot int

const (
	// SlotStatic is a long-lived map rebuilt only when the static caster set
	// or the requested size changes.
	SlotStatic Slot = iota
	// SlotDynamic is rebuilt per frame when marked dirty.
	SlotDynamic
	// SlotTemporary is borrowed from the shared temporary pool for one-shot renders.
	SlotTemporary
)

// ShadowType controls which slots a given light's shadow build actually uses.
type ShadowType int

const (
	// ShadowTypeStaticOnly renders only into the Static slot.
	ShadowTypeStaticOnly ShadowType = iota
	// ShadowTypeDynamicOnly renders only into the Dynamic slot; used whenever
	// a layer-mask refilter forces a one-shot recompute.
	ShadowTypeDynamicOnly
	// ShadowTypeStaticAndDynamic composites both the Static and Dynamic slots.
	ShadowTypeStaticAndDynamic
)

// Map is one rendered shadow map: a depth texture (and, for the
// Transparent tier, a companion color texture) plus the size it was built
// at and a dirty flag.
type Map struct {
	Size        uint32
	Depth       *wgpu.Texture
	DepthView   *wgpu.TextureView
	Color       *wgpu.Texture // non-nil only for TierTransparent
	ColorView   *wgpu.TextureView
	Dirty       bool
	lastUseTick uint64
	touched     bool
}

// Release releases this map's GPU resources.
func (m *Map) Release() {
	if m.DepthView != nil {
		m.DepthView.Release()
		m.DepthView = nil
	}
	if m.Depth != nil {
		m.Depth.Release()
		m.Depth = nil
	}
	if m.ColorView != nil {
		m.ColorView.Release()
		m.ColorView = nil
	}
	if m.Color != nil {
		m.Color.Release()
		m.Color = nil
	}
}

// Caster is the per-light shadow cache aggregate: three tiers, each
// holding a Static, Dynamic, and (while borrowed) Temporary map.
type Caster struct {
	mu        *sync.Mutex
	shadowType ShadowType
	tiers     [3]map[Slot]*Map // indexed by Tier
}

// NewCaster creates an empty Caster for one light, with no maps allocated
// yet; a map exists only once SetMap installs one, so lights that never end
// up visible never pay for shadow GPU memory.
func NewCaster(shadowType ShadowType) *Caster {
	c := &Caster{mu: &sync.Mutex{}, shadowType: shadowType}
	for i := range c.tiers {
		c.tiers[i] = make(map[Slot]*Map)
	}
	return c
}

// ShadowType returns the configured shadow type for this light.
func (c *Caster) ShadowType() ShadowType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shadowType
}

// SetShadowType updates the light's configured shadow type (e.g. forced to
// DynamicOnly for one frame by a layer-mask refilter).
func (c *Caster) SetShadowType(t ShadowType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shadowType = t
}

// Map returns the map currently cached at (tier, slot), or nil if none has
// been built yet.
func (c *Caster) Map(tier Tier, slot Slot) *Map {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tiers[tier][slot]
}

// SetMap installs a newly rendered map at (tier, slot), releasing the map
// previously cached there, if any. SetMap does not compare sizes (see Invalidate's invariant
// (i): size mismatch drops and forces a rebuild — the invalidation decision
// belongs to the slot-selection pass in shadowrender, not the cache).
func (c *Caster) SetMap(tier Tier, slot Slot, m *Map) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old := c.tiers[tier][slot]; old != nil && old != m {
		old.Release()
	}
	c.tiers[tier][slot] = m
}

// Invalidate drops the map at (tier, slot) so it will be rebuilt next time
// it is needed. Called when the requested size no longer matches the
// cached size (invariant (i)) or when the static caster set changes.
func (c *Caster) Invalidate(tier Tier, slot Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m := c.tiers[tier][slot]; m != nil {
		m.Release()
		delete(c.tiers[tier], slot)
	}
}

// NeedsRebuild reports whether the map at (tier, slot) is missing, marked
// dirty, or sized differently than requestedSize.
func (c *Caster) NeedsRebuild(tier Tier, slot Slot, requestedSize uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.tiers[tier][slot]
	if m == nil {
		return true
	}
	if m.Size != requestedSize {
		return true
	}
	return slot == SlotDynamic && m.Dirty
}

// MarkDirty flags the Dynamic slot of tier for rebuild next frame. Static
// and Temporary maps ignore this; only Dynamic participates in per-frame
// dirty tracking.
func (c *Caster) MarkDirty(tier Tier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m := c.tiers[tier][SlotDynamic]; m != nil {
		m.Dirty = true
	}
}

// ClearDirty resets the Dynamic slot's dirty flag after a rebuild.
func (c *Caster) ClearDirty(tier Tier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m := c.tiers[tier][SlotDynamic]; m != nil {
		m.Dirty = false
	}
}

// AgeThresholdTicks is the number of consecutive untouched frames after
// which a Static or Dynamic map is reclaimed by Age. Temporary maps are
// never aged here; they return to their pool as soon as their one-shot
// render completes.
const AgeThresholdTicks = 120

// Touch marks the map at (tier, slot) as used this frame, resetting its
// lastUseTick to 0. Called by the light renderer whenever it decides a
// cached map is still valid and skips rebuilding it.
func (c *Caster) Touch(tier Tier, slot Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m := c.tiers[tier][slot]; m != nil {
		m.lastUseTick = 0
		m.touched = true
	}
}

// LastUseTick returns the number of consecutive frames since (tier, slot)
// was last touched, or 0 if no map is cached there.
func (c *Caster) LastUseTick(tier Tier, slot Slot) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m := c.tiers[tier][slot]; m != nil {
		return m.lastUseTick
	}
	return 0
}

// Age advances the aging clock by one frame: every Static or Dynamic map
// not touched since the last call to Age has its lastUseTick incremented,
// and any map whose lastUseTick then exceeds threshold is released and
// dropped from the cache, forcing a rebuild the next time it is needed.
// Touched maps have their touched flag cleared for the next frame.
// SlotTemporary maps are left untouched by aging; they are owned by the
// shared pool, not this caster's reclaim policy.
func (c *Caster) Age(threshold uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for tier := range c.tiers {
		for slot, m := range c.tiers[tier] {
			if slot == SlotTemporary {
				continue
			}
			if m.touched {
				m.touched = false
				continue
			}
			m.lastUseTick++
			if m.lastUseTick > threshold {
				m.Release()
				delete(c.tiers[tier], slot)
			}
		}
	}
}

// Release releases every GPU resource this caster owns across all tiers and slots.
func (c *Caster) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tiers {
		for slot, m := range c.tiers[i] {
			m.Release()
			delete(c.tiers[i], slot)
		}
	}
}
