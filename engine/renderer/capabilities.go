package renderer

import "github.com/cogentcore/webgpu/wgpu"

// Capabilities records the adapter-dependent choices the rest of the
// renderer needs before it can build G-buffer, occlusion, or shadow cache
// resources, mirroring deoglRTChoices.h's role as a single place interested
// parties query rather than re-deriving adapter limits themselves.
type Capabilities struct {
	// SupportsArrayTextures reports whether 2D array textures are usable,
	// gating occlusion.NewPyramid's packed-vs-array mip layout choice.
	SupportsArrayTextures bool

	// MaxTextureArrayLayers is the adapter's texture array layer limit,
	// bounding how many reflection probes or shadow cache layers one
	// texture array can hold.
	MaxTextureArrayLayers uint32

	// MaxColorAttachments is the adapter's simultaneous render target
	// limit, bounding how many G-buffer channels one pass can write.
	MaxColorAttachments uint32
}

// QueryCapabilities derives Capabilities from the adapter's reported
// limits. WebGPU always exposes 2D array textures, so
// SupportsArrayTextures is true whenever the array layer limit is
// large enough to hold more than one layer.
func QueryCapabilities(adapter *wgpu.Adapter) Capabilities {
	supported := adapter.GetLimits()
	return Capabilities{
		SupportsArrayTextures: supported.Limits.MaxTextureArrayLayers > 1,
		MaxTextureArrayLayers: supported.Limits.MaxTextureArrayLayers,
		MaxColorAttachments:   supported.Limits.MaxColorAttachments,
	}
}

// Capabilities reports the adapter-derived feature set the backend was
// built against.
func (r *renderer) Capabilities() Capabilities {
	return QueryCapabilities(r.backend.Adapter())
}
