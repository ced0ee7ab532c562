// Package shadowrender submits depth-only draws into the shadow caster
// cache's textures: a single view for a spot/projector/cascade map, and six
// faces for a point light's cube map, following
// engine/scene/scene.go's PrepareShadows depth-only pass sequencing
// (BeginShadowFrame/BeginShadowPass/ShadowDrawCall/EndShadowPass/
// EndShadowFrame) generalized from one directional light to the full
// Solid/Transparent/Ambient shadow caster matrix.
package shadowrender

import (
	"fmt"

	"github.com/kestrelrender/kestrel/rendertask"

	"github.com/cogentcore/webgpu/wgpu"
)

// Frame batches every shadow pass submitted within one render frame behind a
// single command encoder, mirroring BeginShadowFrame/EndShadowFrame's
// one-encoder-per-frame discipline.
type Frame interface {
	// Begin opens the shadow command encoder for this frame.
	Begin() error

	// BeginView starts a depth-only render pass targeting view, clearing to
	// far depth (1.0).
	BeginView(view *wgpu.TextureView) *wgpu.RenderPassEncoder

	// EndView ends the current depth-only render pass.
	EndView(pass *wgpu.RenderPassEncoder)

	// End finishes and submits the shadow command encoder.
	End()
}

// CubeFace indexes the six faces of a point light's shadow cube map, in the
// +X,-X,+Y,-Y,+Z,-Z order expected by cube texture views.
type CubeFace int

const (
	CubeFacePosX CubeFace = iota
	CubeFaceNegX
	CubeFacePosY
	CubeFaceNegY
	CubeFacePosZ
	CubeFaceNegZ
)

// CubeFaceCount is the number of faces in a shadow cube map.
const CubeFaceCount = 6

// Renderer submits render-task trees into shadow caster cache maps.
type Renderer struct {
	frame    Frame
	executor *rendertask.Executor
}

// NewRenderer creates a shadow Renderer that submits draws through executor
// against views opened on frame.
func NewRenderer(frame Frame, executor *rendertask.Executor) *Renderer {
	return &Renderer{frame: frame, executor: executor}
}

// RenderView submits tree's draws into a single shadow map view: the path
// used for spot lights, projector lights, and each sky cascade.
func (r *Renderer) RenderView(view *wgpu.TextureView, tree *rendertask.Tree) error {
	pass := r.frame.BeginView(view)
	defer r.frame.EndView(pass)

	if err := r.executor.Execute(pass, tree); err != nil {
		return fmt.Errorf("shadowrender: rendering view: %w", err)
	}
	return nil
}

// RenderCube submits a tree per cube face into views, one per CubeFace.
// faceMask restricts rendering to the faces whose bit is set, letting a
// caller skip faces the collide list's CubeFaceMask determined are not
// touched by any visible occluder this frame.
func (r *Renderer) RenderCube(views [CubeFaceCount]*wgpu.TextureView, faceMask uint8, treeForFace func(CubeFace) *rendertask.Tree) error {
	for face := 0; face < CubeFaceCount; face++ {
		if faceMask&(1<<uint(face)) == 0 {
			continue
		}
		view := views[face]
		if view == nil {
			continue
		}
		tree := treeForFace(CubeFace(face))
		if tree == nil {
			continue
		}
		if err := r.RenderView(view, tree); err != nil {
			return fmt.Errorf("shadowrender: rendering cube face %d: %w", face, err)
		}
	}
	return nil
}

// RenderCascades submits one tree per sky cascade level, in near-to-far
// order, following deoglRenderLightSky.cpp's per-cascade depth pass
// sequencing within a single shadow frame.
func (r *Renderer) RenderCascades(views []*wgpu.TextureView, treeForCascade func(level int) *rendertask.Tree) error {
	for level, view := range views {
		if view == nil {
			continue
		}
		tree := treeForCascade(level)
		if tree == nil {
			continue
		}
		if err := r.RenderView(view, tree); err != nil {
			return fmt.Errorf("shadowrender: rendering cascade %d: %w", level, err)
		}
	}
	return nil
}
