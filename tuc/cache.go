package tuc

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// entry is a cached, reference-counted bind group keyed by Config content.
type entry struct {
	bindGroup *wgpu.BindGroup
	refCount  int
}

// Cache deduplicates wgpu.BindGroup creation by Config content: requesting
// the same set of resource bindings twice returns the same underlying
// bind group instead of allocating a new one. Entries are reference
// counted; a Config goes out of the cache once its last user releases it.
type Cache struct {
	mu      sync.Mutex
	device  *wgpu.Device
	layout  *wgpu.BindGroupLayout
	entries map[string]*entry
}

// NewCache creates a TUC cache that builds bind groups against the given
// layout on demand.
//
// Parameters:
//   - device: the wgpu device used to create bind groups
//   - layout: the bind group layout all Configs in this cache conform to
//
// Returns:
//   - *Cache: the newly created cache
func NewCache(device *wgpu.Device, layout *wgpu.BindGroupLayout) *Cache {
	return &Cache{
		device:  device,
		layout:  layout,
		entries: make(map[string]*entry),
	}
}

// Acquire returns the bind group for cfg, creating and caching it on first
// request. Each call that returns a new reference must be matched with a
// Release call for that same Config.
//
// Parameters:
//   - cfg: the texture-unit config describing the desired bindings
//
// Returns:
//   - *wgpu.BindGroup: the (possibly shared) bind group
//   - error: non-nil if bind group creation fails
func (c *Cache) Acquire(cfg Config) (*wgpu.BindGroup, error) {
	key := cfg.Key()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.refCount++
		c.mu.Unlock()
		return e.bindGroup, nil
	}
	c.mu.Unlock()

	entries, err := toBindGroupEntries(cfg)
	if err != nil {
		return nil, err
	}
	bg, err := c.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  c.layout,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		// Lost the race to another goroutine building the same config;
		// release our duplicate and share theirs.
		bg.Release()
		e.refCount++
		return e.bindGroup, nil
	}
	c.entries[key] = &entry{bindGroup: bg, refCount: 1}
	return bg, nil
}

// Release decrements the reference count for cfg's bind group, releasing
// the underlying GPU object once no draw references it anymore.
//
// Parameters:
//   - cfg: the config previously passed to Acquire
func (c *Cache) Release(cfg Config) {
	key := cfg.Key()

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.refCount--
	if e.refCount <= 0 {
		e.bindGroup.Release()
		delete(c.entries, key)
	}
}

// Len returns the number of distinct bind groups currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func toBindGroupEntries(cfg Config) ([]wgpu.BindGroupEntry, error) {
	out := make([]wgpu.BindGroupEntry, len(cfg.Slots))
	for i, s := range cfg.Slots {
		switch {
		case s.TextureView != nil:
			out[i] = wgpu.BindGroupEntry{Binding: uint32(s.Binding), TextureView: s.TextureView}
		case s.Sampler != nil:
			out[i] = wgpu.BindGroupEntry{Binding: uint32(s.Binding), Sampler: s.Sampler}
		case s.Buffer != nil:
			out[i] = wgpu.BindGroupEntry{Binding: uint32(s.Binding), Buffer: s.Buffer, Offset: s.BufferOffset, Size: s.BufferSize}
		default:
			return nil, fmt.Errorf("tuc: slot at binding %d has no texture view, sampler, or buffer set", s.Binding)
		}
	}
	return out, nil
}
