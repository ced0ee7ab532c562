// Package pipeline is the generalized Pipeline Cache: immutable
// rasterization-state + shader-program pairs keyed by a Config value. It
// adapts engine/renderer/pipeline's pipeline/PipelineBuilderOption pattern,
// adding the fields a deferred-shading render task needs (stencil, tessellation
// patch-vertex count, clip-control/inverse-depth, and the two indirect-draw
// index bases) and, per deoglRenderTaskSharedShader.h, making the cache key a
// plain comparable struct compared field-by-field rather than a hashed string.
package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Config is the Pipeline Cache's key. It is a plain comparable struct (no
// slices, maps, or pointers) so it can be used directly as a Go map key;
// two Configs with identical field values always hit the same cache entry.
type Config struct {
	VertexShaderKey   string
	FragmentShaderKey string
	ComputeShaderKey  string

	DepthTestEnabled    bool
	DepthWriteEnabled   bool
	DepthBias           int32
	DepthBiasSlopeScale float32

	BlendEnabled bool
	CullMode     wgpu.CullMode
	Topology     wgpu.PrimitiveTopology
	FrontFace    wgpu.FrontFace
	WriteMask    wgpu.ColorWriteMask

	// StencilEnabled/StencilCompare support the occlusion subsystem's
	// stencil-assisted visibility test and the shadow renderer's
	// cube-face masking path.
	StencilEnabled bool
	StencilCompare wgpu.CompareFunction

	// PatchVertexCount is nonzero only for tessellation pipelines (unused by
	// the current render task set but reserved, per the teacher's pattern of
	// carrying fields the wgpu binding supports even when unexercised).
	PatchVertexCount uint32

	// ClipControlInverseDepth selects the infinite-far / reversed-Z
	// projection path; see engine/camera's extended projection and
	// deoglRTChoices.h's clip-control capability flag.
	ClipControlInverseDepth bool

	// SPBInstanceIndexBase and DrawIDOffset let the render task executor
	// reuse one Config/pipeline across multiple indirect-draw batches that
	// differ only in where their instance data starts within the shared
	// parameter buffer.
	SPBInstanceIndexBase uint32
	DrawIDOffset         uint32
}
