// Package sky implements the Sky/Cascaded Renderer: a directional light's
// view frustum is split into near-to-far cascade levels, each getting its
// own orthographic shadow map sized to just that slice. The package renders
// only these cascades; it produces no sun occlusion map.
// Grounded on deoglRenderLightSpot.cpp's shadow-map setup/render sequencing
// (deoglRenderLightSky.cpp itself was not present in the retrieved
// DragonEngine sources; the spot light's per-map setup generalizes directly
// since a cascade is just an orthographic "spot" aimed along the sun).
package sky

import (
	"fmt"
	"math"

	"github.com/kestrelrender/kestrel/common"
	"github.com/kestrelrender/kestrel/engine/light"
	"github.com/kestrelrender/kestrel/rendertask"
	"github.com/kestrelrender/kestrel/shadowrender"

	"github.com/cogentcore/webgpu/wgpu"
)

// Cascade is one level of a sky light's split shadow frustum.
type Cascade struct {
	// SplitNear/SplitFar are the view-space depths this cascade covers.
	SplitNear, SplitFar float32

	// ViewProj is the column-major 4x4 orthographic view-projection matrix
	// this cascade's shadow map was rendered with.
	ViewProj [16]float32

	DepthView *wgpu.TextureView
}

// Renderer renders a sky light's shadow cascades; it has no sun occlusion map.
type Renderer struct {
	resolution    uint32
	cascadeCount  int
	shadowRenderer *shadowrender.Renderer
}

// NewRenderer creates a sky Renderer. It stores resolution and cascadeCount
// but does not read them: RenderCascades renders one view per Cascade it is
// given, into depth views the caller created.
func NewRenderer(shadowRenderer *shadowrender.Renderer, resolution uint32, cascadeCount int) *Renderer {
	return &Renderer{shadowRenderer: shadowRenderer, resolution: resolution, cascadeCount: cascadeCount}
}

// SplitDistances computes cascadeCount split planes between near and far
// using a practical split scheme: a blend of logarithmic and uniform
// splits, matching the usual cascaded-shadow-map distribution (logarithmic
// alone makes the near cascades very thin; uniform alone makes the near
// cascades too coarse while spending resolution on the far ones).
//
// Parameters:
//   - near, far: the camera's near/far clip distances
//   - cascadeCount: the number of cascade levels to split into
//   - blend: 0 = fully uniform, 1 = fully logarithmic; 0.5 is a common default
//
// Returns:
//   - []float32: cascadeCount+1 split distances, near-to-far inclusive of both ends
func SplitDistances(near, far float32, cascadeCount int, blend float32) []float32 {
	if cascadeCount <= 0 {
		return nil
	}
	splits := make([]float32, cascadeCount+1)
	splits[0] = near
	ratio := far / near
	for i := 1; i <= cascadeCount; i++ {
		t := float32(i) / float32(cascadeCount)
		logSplit := near * powf32(ratio, t)
		uniSplit := near + (far-near)*t
		splits[i] = blend*logSplit + (1-blend)*uniSplit
	}
	return splits
}

func powf32(base, exp float32) float32 {
	if base <= 0 {
		return 0
	}
	return float32(math.Pow(float64(base), float64(exp)))
}

// RenderCascades derives each cascade's crop box from its visible occluder
// samples, builds an orthographic view-projection tight to that box via
// light.ReduceCropBox, and submits trees through the shadow renderer in
// near-to-far order.
//
// Parameters:
//   - sun: the sky light, providing direction
//   - cascades: one Cascade per level, with DepthView already set by the caller's shadow cache
//   - occluderSamples: per-cascade flattened occluder-position grids (see light.ReduceCropBox)
//   - treeForCascade: builds the render task tree for a cascade level
//
// Returns:
//   - error: non-nil if a cascade's render submission fails
func (r *Renderer) RenderCascades(sun light.Light, cascades []Cascade, occluderSamples [][][3]float32, treeForCascade func(level int) *rendertask.Tree) error {
	if len(cascades) != len(occluderSamples) {
		return fmt.Errorf("sky: cascades/occluderSamples length mismatch: %d vs %d", len(cascades), len(occluderSamples))
	}

	views := make([]*wgpu.TextureView, len(cascades))
	for i := range cascades {
		box := light.ReduceCropBox(occluderSamples[i], light.CropBoxStartResolution, light.CropBoxStartResolution)
		cascades[i].ViewProj = orthoFromCropBox(sun.Direction(), box)
		views[i] = cascades[i].DepthView
	}

	return r.shadowRenderer.RenderCascades(views, treeForCascade)
}

// orthoFromCropBox builds a column-major orthographic view-projection
// matrix looking along dir that tightly bounds box, centering the view on
// the box's midpoint the way PrepareShadows centers its single directional
// frustum on the camera's look-at target.
func orthoFromCropBox(dir [3]float32, box light.CropBox) [16]float32 {
	cx := (box.Min[0] + box.Max[0]) * 0.5
	cy := (box.Min[1] + box.Max[1]) * 0.5
	cz := (box.Min[2] + box.Max[2]) * 0.5

	halfExtent := maxf32(box.Max[0]-box.Min[0], maxf32(box.Max[1]-box.Min[1], box.Max[2]-box.Min[2])) * 0.5
	if halfExtent <= 0 {
		halfExtent = 1
	}

	var view [16]float32
	eyeX := cx - dir[0]*halfExtent*2
	eyeY := cy - dir[1]*halfExtent*2
	eyeZ := cz - dir[2]*halfExtent*2
	common.LookAt(view[:], eyeX, eyeY, eyeZ, cx, cy, cz, 0, 1, 0)

	var proj [16]float32
	orthoProjection(proj[:], -halfExtent, halfExtent, -halfExtent, halfExtent, 0.01, halfExtent*4)

	var vp [16]float32
	common.Mul4(vp[:], proj[:], view[:])
	return vp
}

// orthoProjection builds a column-major orthographic projection matrix for
// WebGPU's [0, 1] depth range.
func orthoProjection(out []float32, left, right, bottom, top, near, far float32) {
	common.Identity(out)
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
}

func maxf32(a, b, c float32) float32 {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
