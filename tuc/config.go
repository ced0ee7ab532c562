// Package tuc implements the Texture-Unit Config: an immutable descriptor
// of which textures, samplers, and buffers bind to which slots for one
// draw. It generalizes engine/renderer/bind_group_provider's mutable,
// named-map-based provider into a value comparable by content so that two
// draws requesting the identical set of GPU resource bindings share one
// wgpu.BindGroup instead of each allocating their own.
package tuc

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Slot is a single binding within a Texture-Unit Config: a texture view, a
// sampler, or a buffer range bound at a given shader binding index. Exactly
// one of TextureView, Sampler, or Buffer should be set.
type Slot struct {
	Binding      int
	TextureView  *wgpu.TextureView
	Sampler      *wgpu.Sampler
	Buffer       *wgpu.Buffer
	BufferOffset uint64
	BufferSize   uint64
}

// Config is the immutable set of slots describing one draw's resource
// bindings. Two Configs with identical slot contents (same pointer
// identities, same bindings) produce the same Key and so resolve to the
// same cached wgpu.BindGroup.
type Config struct {
	Slots []Slot
}

// Key returns a deterministic string uniquely identifying this Config's
// resource bindings by pointer identity. Configs built from the same
// underlying GPU resources at the same bindings produce equal keys
// regardless of slot order, which is what lets the Cache dedup by content
// rather than by which TUC struct happened to be constructed.
func (c Config) Key() string {
	parts := make([]string, len(c.Slots))
	for i, s := range c.Slots {
		var ref uintptr
		switch {
		case s.TextureView != nil:
			ref = ptrOf(s.TextureView)
		case s.Sampler != nil:
			ref = ptrOf(s.Sampler)
		case s.Buffer != nil:
			ref = ptrOf(s.Buffer)
		}
		parts[i] = strconv.Itoa(s.Binding) + ":" + strconv.FormatUint(uint64(ref), 16)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
