// Package occlusion implements the Occlusion Subsystem: a linear-depth
// Z-pyramid built by successive min/max mip reductions of the depth
// prepass, and a point-sampled visibility test that compares a collide
// list entry's bounding sphere against the pyramid. Per
// deoglRenderOcclusion.cpp/.h, the pyramid's texture layout (packed
// min/max channels vs. two separate textures) is a capability decision
// made once at construction from a SupportsArrayTextures flag, never
// switched mid-run.
package occlusion

import (
	"fmt"

	"github.com/kestrelrender/kestrel/pipeline"

	"github.com/cogentcore/webgpu/wgpu"
)

// Layout identifies which of the two GPU texture layouts the pyramid uses.
// Chosen once at construction and never changed afterward.
type Layout int

const (
	// LayoutPackedMinMax stores min and max depth in the R and G channels of
	// a single RG32Float texture, used when the device supports
	// multiple-render-target writes to a single mip chain in one pass.
	LayoutPackedMinMax Layout = iota
	// LayoutSeparateMinMax stores min and max depth in two independent
	// R32Float textures, used on devices without array-texture support for
	// simultaneous MRT writes across mip levels.
	LayoutSeparateMinMax
)

// Pyramid owns the GPU depth-pyramid textures. It creates no per-mip views
// of its own; Reduce reads and writes levels through the bind groups its
// caller supplies, and Release frees any views recorded in mipViews.
type Pyramid struct {
	layout Layout
	width  uint32
	height uint32
	levels int

	minTex  *wgpu.Texture
	maxTex  *wgpu.Texture // nil when layout is LayoutPackedMinMax
	packed  *wgpu.Texture // nil when layout is LayoutSeparateMinMax
	mipViews []*wgpu.TextureView
}

// NewPyramid creates the GPU textures for a depth pyramid covering a
// width×height source depth buffer, choosing layout based on
// supportsArrayTextures (queried once from renderer.Capabilities at
// construction).
//
// Parameters:
//   - device: the wgpu device to create textures on
//   - width, height: the source linear-depth buffer's resolution
//   - supportsArrayTextures: whether the device can MRT-write across mips in one pass
//
// Returns:
//   - *Pyramid: the newly created pyramid
//   - error: non-nil if texture creation fails
func NewPyramid(device *wgpu.Device, width, height uint32, supportsArrayTextures bool) (*Pyramid, error) {
	levels := mipLevelCount(width, height)
	p := &Pyramid{width: width, height: height, levels: levels}

	if supportsArrayTextures {
		p.layout = LayoutPackedMinMax
		tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "occlusion.pyramid.packed",
			Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
			Dimension:     wgpu.TextureDimension2D,
			Format:        wgpu.TextureFormatRG32Float,
			MipLevelCount: uint32(levels),
			SampleCount:   1,
			Usage:         wgpu.TextureUsageStorageBinding | wgpu.TextureUsageTextureBinding,
		})
		if err != nil {
			return nil, err
		}
		p.packed = tex
	} else {
		p.layout = LayoutSeparateMinMax
		minTex, err := device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "occlusion.pyramid.min",
			Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
			Dimension:     wgpu.TextureDimension2D,
			Format:        wgpu.TextureFormatR32Float,
			MipLevelCount: uint32(levels),
			SampleCount:   1,
			Usage:         wgpu.TextureUsageStorageBinding | wgpu.TextureUsageTextureBinding,
		})
		if err != nil {
			return nil, err
		}
		maxTex, err := device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "occlusion.pyramid.max",
			Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
			Dimension:     wgpu.TextureDimension2D,
			Format:        wgpu.TextureFormatR32Float,
			MipLevelCount: uint32(levels),
			SampleCount:   1,
			Usage:         wgpu.TextureUsageStorageBinding | wgpu.TextureUsageTextureBinding,
		})
		if err != nil {
			minTex.Release()
			return nil, err
		}
		p.minTex = minTex
		p.maxTex = maxTex
	}

	return p, nil
}

// Layout returns the texture layout this pyramid was constructed with.
func (p *Pyramid) Layout() Layout { return p.layout }

// Levels returns the number of mip levels in the pyramid.
func (p *Pyramid) Levels() int { return p.levels }

// Reduce dispatches one compute pass per mip level, each reading the
// previous level and writing the min/max-reduced next level, via the
// min/max reduction pipeline resolved from cfg, with one compute pass and
// one dispatch of 8x8 workgroups per level.
//
// Parameters:
//   - encoder: the active compute command encoder
//   - resolve: resolves the reduction pipeline's Config to a Pipeline
//   - bindGroupForLevel: returns the bind group reading level-1 and writing level
//
// Returns:
//   - error: non-nil if a pipeline fails to resolve
func (p *Pyramid) Reduce(encoder *wgpu.CommandEncoder, resolve func(pipeline.Config) (pipeline.Pipeline, error), bindGroupForLevel func(level int) *wgpu.BindGroup) error {
	cfg := pipeline.Config{ComputeShaderKey: "occlusion_reduce"}
	pl, err := resolve(cfg)
	if err != nil {
		return fmt.Errorf("occlusion: resolving reduction pipeline: %w", err)
	}
	cp, ok := pl.Handle().(*wgpu.ComputePipeline)
	if !ok || cp == nil {
		return fmt.Errorf("occlusion: reduction pipeline has no compute handle")
	}

	w, h := p.width, p.height
	for level := 1; level < p.levels; level++ {
		w = (w + 1) / 2
		h = (h + 1) / 2

		pass := encoder.BeginComputePass(nil)
		pass.SetPipeline(cp)
		pass.SetBindGroup(0, bindGroupForLevel(level), nil)
		pass.DispatchWorkgroups((w+7)/8, (h+7)/8, 1)
		pass.End()
	}
	return nil
}

// Release releases the pyramid's GPU textures and views.
func (p *Pyramid) Release() {
	for _, v := range p.mipViews {
		if v != nil {
			v.Release()
		}
	}
	p.mipViews = nil
	if p.packed != nil {
		p.packed.Release()
		p.packed = nil
	}
	if p.minTex != nil {
		p.minTex.Release()
		p.minTex = nil
	}
	if p.maxTex != nil {
		p.maxTex.Release()
		p.maxTex = nil
	}
}

func mipLevelCount(width, height uint32) int {
	levels := 1
	for width > 1 || height > 1 {
		width = (width + 1) / 2
		height = (height + 1) / 2
		levels++
	}
	return levels
}
