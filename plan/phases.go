package plan

import (
	"fmt"
	"math"

	"github.com/kestrelrender/kestrel/collidelist"
	"github.com/kestrelrender/kestrel/engine/light"
	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/occlusion"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/reflection"
	"github.com/kestrelrender/kestrel/rendertask"
	"github.com/kestrelrender/kestrel/shadowcache"
	"github.com/kestrelrender/kestrel/shadowrender"
	"github.com/kestrelrender/kestrel/tuc"

	"github.com/cogentcore/webgpu/wgpu"
)

// PassSource opens and closes a named render pass within the frame's
// command encoder. renderer.GBufferPassSource implements this over the
// renderer's BeginGBufferPass/EndGBufferPass; tests substitute a fake.
type PassSource interface {
	BeginPass(name string) (*wgpu.RenderPassEncoder, error)
	EndPass(pass *wgpu.RenderPassEncoder)
}

// NewDepthPhase builds the Depth phase: the solid collide-list partition
// drawn into the G-buffer depth/normal/albedo targets via a single Render
// Task executor pass, mirroring deoglRenderDepthPass.cpp's "solid geometry
// first" ordering ahead of lighting.
func NewDepthPhase(passes PassSource, executor *rendertask.Executor, treeForFrame func(*Frame) *rendertask.Tree) Phase {
	return Phase{
		Name: "Depth",
		Run: func(f *Frame) error {
			pass, err := passes.BeginPass("depth")
			if err != nil {
				return fmt.Errorf("depth phase: %w", err)
			}
			defer passes.EndPass(pass)
			return executor.Execute(pass, treeForFrame(f))
		},
	}
}

// BoundsSource is implemented by collide-list objects that can report a
// world-space bounding sphere for occlusion testing. Entries whose Object
// does not implement it are always treated as visible, since there is
// nothing to test against the pyramid.
type BoundsSource interface {
	OcclusionSphere() occlusion.Sphere
}

// PyramidReducer is the subset of *occlusion.Pyramid the Occlusion phase
// needs, narrowed to an interface so a fake can stand in for tests that
// have no real wgpu device to build a Pyramid against.
type PyramidReducer interface {
	Reduce(encoder *wgpu.CommandEncoder, resolve func(pipeline.Config) (pipeline.Pipeline, error), bindGroupForLevel func(level int) *wgpu.BindGroup) error
}

// NewOcclusionPhase builds the Occlusion phase: reduce the camera's Z
// pyramid, then mark every collide-list entry whose object exposes a
// BoundsSource as occlusion-hidden when its bounding sphere tests hidden
// against the reduced pyramid, per deoglRenderOcclusion.cpp's
// reduce-then-cull ordering (the pyramid must finish reducing before any
// entry is tested against it). snapshot reads the just-reduced pyramid's
// coarsest mip back for Tester to sample; producing it from the GPU
// texture is the renderer's job, not this phase's.
func NewOcclusionPhase(
	encoder *wgpu.CommandEncoder,
	pyramid PyramidReducer,
	resolve func(pipeline.Config) (pipeline.Pipeline, error),
	bindGroupForLevel func(level int) *wgpu.BindGroup,
	snapshot func() (*occlusion.PyramidSnapshot, error),
) Phase {
	return Phase{
		Name: "Occlusion",
		Run: func(f *Frame) error {
			if err := pyramid.Reduce(encoder, resolve, bindGroupForLevel); err != nil {
				return fmt.Errorf("occlusion phase: reducing pyramid: %w", err)
			}

			snap, err := snapshot()
			if err != nil {
				return fmt.Errorf("occlusion phase: reading back pyramid: %w", err)
			}

			tester := occlusion.NewTester(occlusion.TestKindCamera, snap, nil)
			if f.CollideList == nil {
				return nil
			}
			for i := range f.CollideList.Entries {
				e := &f.CollideList.Entries[i]
				bounds, ok := e.Object.(BoundsSource)
				if !ok {
					continue
				}
				e.OcclusionHidden = tester.Occluded(bounds.OcclusionSphere())
			}
			return nil
		},
	}
}

// ShadowTarget is one light's render target for the Light phase: the
// shadow map views to render its casters into, and the Render Task trees
// to submit for each. A point light supplies up to six cube-face views; a
// spot/projector light supplies one; a sky light's cascades are rendered
// separately by sky.Renderer and do not go through this phase.
//
// Caster, ShadowSize, ShadowTier, and ShadowSlot drive the caching decision:
// when Caster is non-nil the phase consults Caster.NeedsRebuild(ShadowTier,
// ShadowSlot, ShadowSize) before rendering, skipping the render (and only
// touching the map's age counter) when the cached map is already current. A
// nil Caster always renders, for callers with no cache to consult.
type ShadowTarget struct {
	Light       light.Light
	Caster      *shadowcache.Caster
	CubeViews   [shadowrender.CubeFaceCount]*wgpu.TextureView
	FaceMask    uint8
	View        *wgpu.TextureView
	TreeForFace func(shadowrender.CubeFace) *rendertask.Tree
	TreeForView *rendertask.Tree

	ShadowSize uint32
	ShadowTier shadowcache.Tier
	ShadowSlot shadowcache.Slot
}

// lightObject is implemented by the collide-list entries scene.Scene's
// LightCollideList produces, letting LightTargetsFromList recover the
// wrapped light.Light without the plan package importing scene.
type lightObject interface {
	Light() light.Light
}

// LightEntry pairs a light with the CameraInside state the collide-list
// pass computed for it this frame, per original_source's rule that
// CameraInside is evaluated once per light per frame against a point-in-
// convex-hull test, never re-evaluated per pixel.
type LightEntry struct {
	Light        light.Light
	CameraInside bool
}

// LightTargetsFromList extracts LightEntry values back out of a collide
// list a scene.Scene's LightCollideList populated. Entries whose Object
// does not expose the lightObject accessor are skipped, so a list mixing
// light and non-light entries (not currently done, but not precluded)
// degrades gracefully.
func LightTargetsFromList(list *collidelist.List) []LightEntry {
	if list == nil {
		return nil
	}
	out := make([]LightEntry, 0, len(list.Entries))
	for _, e := range list.Entries {
		lo, ok := e.Object.(lightObject)
		if !ok {
			continue
		}
		out = append(out, LightEntry{Light: lo.Light(), CameraInside: e.CameraInside})
	}
	return out
}

// SpotFalloff computes a spot/projector light's cone edge attenuation at a
// normalized cone radius (0 at the light's axis, 1 at OuterCone), following
// deoglRenderLightSpot.cpp's edge curve: the transition band's width is set
// by smoothness, the clamped linear ramp across that band is then raised to
// exponent to reshape the curve.
//
// Parameters:
//   - coneRadius: normalized radius in the light's cone cross-section
//   - smoothness: width of the falloff transition band
//   - exponent: curve exponent applied to the clamped linear ramp
//
// Returns:
//   - float32: attenuation factor in [0, 1], 1 at the axis, 0 past OuterCone
func SpotFalloff(coneRadius, smoothness, exponent float32) float32 {
	halfSmooth := 0.5 * smoothness
	if halfSmooth <= 0 {
		if coneRadius <= 0 {
			return 1
		}
		return 0
	}

	factor := -1.0 / halfSmooth
	base := 0.5 / halfSmooth
	raw := coneRadius*factor + base
	switch {
	case raw < 0:
		raw = 0
	case raw > 1:
		raw = 1
	}
	return float32(math.Pow(float64(raw), float64(exponent)))
}

// AccumulationConfig derives the lighting accumulation draw's pipeline
// configuration from base, disabling the depth test and inverting the cull
// direction when the eye lies inside the light's volume: for each light
// rendered with CameraInside, the light draw must have depth testing
// disabled and culling inverted relative to the normal, eye-outside case.
func AccumulationConfig(base pipeline.Config, cameraInside bool) pipeline.Config {
	cfg := base
	if !cameraInside {
		return cfg
	}
	cfg.DepthTestEnabled = false
	switch cfg.CullMode {
	case wgpu.CullModeFront:
		cfg.CullMode = wgpu.CullModeBack
	case wgpu.CullModeBack:
		cfg.CullMode = wgpu.CullModeFront
	}
	return cfg
}

// volumeRenderObject adapts one light's volume draw into a
// rendertask.RenderObject so the accumulation pass submits through the same
// Tree/Executor machinery as Depth and Transparent instead of a hand-rolled
// bind/draw sequence. It carries no volume mesh: Mesh returns empty ranges
// and a zero index count, so the draw the executor issues for it renders no
// primitives.
type volumeRenderObject struct {
	light light.Light
	cfg   pipeline.Config
}

func (v volumeRenderObject) PipelineConfig() pipeline.Config { return v.cfg }
func (v volumeRenderObject) TUCConfig() tuc.Config            { return tuc.Config{} }
func (v volumeRenderObject) Mesh() (vertex, index gpubuf.Range, indexCount uint32) {
	return gpubuf.Range{}, gpubuf.Range{}, 0
}
func (v volumeRenderObject) ParamRange() gpubuf.Range { return gpubuf.Range{} }
func (v volumeRenderObject) IsSolid() bool            { return true }
func (v volumeRenderObject) IsOutline() bool          { return false }
func (v volumeRenderObject) IsDecal() bool            { return false }
func (v volumeRenderObject) CastsNoShadow() bool      { return true }

// NewLightPhase builds the Light phase: for each enabled light, ensure its
// shadow map is current — reusing the cached Static/Dynamic map and
// touching its age counter when shadowcache.Caster.NeedsRebuild reports no
// rebuild is needed, rendering via shadowrender.Renderer and then touching
// it when it is — then submit the lighting accumulation draw for every light
// the frame's light collide list carries (a draw with no volume mesh; see
// volumeRenderObject). baseConfigForLight selects the
// pipeline variant (shadow/ambient/stereo) for a light; AccumulationConfig
// then flips depth test and cull direction when that light's CameraInside
// flag is set. The accumulation draw is submitted through the same Render
// Task Tree/Executor machinery Depth and Transparent use. After every
// target has been visited, each touched caster's Age is advanced once so
// maps untouched past shadowcache.AgeThresholdTicks frames are reclaimed.
func NewLightPhase(
	renderer *shadowrender.Renderer,
	targets func(*Frame) []ShadowTarget,
	accumPasses PassSource,
	accumExecutor *rendertask.Executor,
	baseConfigForLight func(l light.Light) pipeline.Config,
) Phase {
	return Phase{
		Name: "Light",
		Run: func(f *Frame) error {
			var firstErr error
			agers := make(map[*shadowcache.Caster]struct{})

			for _, t := range targets(f) {
				if !t.Light.Enabled() || !t.Light.CastsShadows() {
					continue
				}

				rebuild := true
				if t.Caster != nil {
					agers[t.Caster] = struct{}{}
					rebuild = t.Caster.NeedsRebuild(t.ShadowTier, t.ShadowSlot, t.ShadowSize)
				}
				if !rebuild {
					t.Caster.Touch(t.ShadowTier, t.ShadowSlot)
					continue
				}

				var err error
				switch {
				case t.Light.Type() == light.LightTypePoint:
					err = renderer.RenderCube(t.CubeViews, t.FaceMask, t.TreeForFace)
				case t.View != nil && t.TreeForView != nil:
					err = renderer.RenderView(t.View, t.TreeForView)
				}
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("light phase: light %v: %w", t.Light.Type(), err)
					}
					continue
				}
				if t.Caster != nil {
					t.Caster.ClearDirty(t.ShadowTier)
					t.Caster.Touch(t.ShadowTier, t.ShadowSlot)
				}
			}

			if accumExecutor != nil && accumPasses != nil && f.LightList != nil && baseConfigForLight != nil {
				if err := runLightAccumulation(f, accumPasses, accumExecutor, baseConfigForLight); err != nil && firstErr == nil {
					firstErr = err
				}
			}

			for caster := range agers {
				caster.Age(shadowcache.AgeThresholdTicks)
			}

			return firstErr
		},
	}
}

// runLightAccumulation builds and submits one Render Task Tree containing
// every light in f.LightList's volume draw, pipeline-configured per light
// via baseConfigForLight and AccumulationConfig.
func runLightAccumulation(f *Frame, passes PassSource, executor *rendertask.Executor, baseConfigForLight func(light.Light) pipeline.Config) error {
	pass, err := passes.BeginPass("light-accumulation")
	if err != nil {
		return fmt.Errorf("light phase: accumulation: %w", err)
	}
	defer passes.EndPass(pass)

	tree := rendertask.NewTree()
	for _, entry := range LightTargetsFromList(f.LightList) {
		if !entry.Light.Enabled() {
			continue
		}
		cfg := AccumulationConfig(baseConfigForLight(entry.Light), entry.CameraInside)
		rendertask.AddToRenderTask(tree, []rendertask.RenderObject{volumeRenderObject{light: entry.Light, cfg: cfg}}, rendertask.AddOptions{})
	}
	return executor.Execute(pass, tree)
}

// NewReflectionPhase builds the Reflection phase: advance the GI probe
// scheduler's per-frame budget and hand the caller the probes due for an
// update this frame, skipping entirely when the frame requested
// NoReflections. Screen-space ray marching and env-map blending are driven
// per-pixel by the shading pass itself (reflection.March/reflection.Blend),
// not iterated here; this phase only owns the once-per-frame scheduling
// decisions (which probes update, which env-map slots are stale).
func NewReflectionPhase(probes *reflection.ProbeScheduler, onDue func(f *Frame, probeIndices []int) error) Phase {
	return Phase{
		Name: "Reflection",
		Run: func(f *Frame) error {
			if f.NoReflections {
				return nil
			}
			due := probes.Next()
			if onDue == nil || len(due) == 0 {
				return nil
			}
			return onDue(f, due)
		},
	}
}

// NewTransparentPhase builds the Transparent phase: the transparent
// collide-list partition drawn back-to-front after Light and Reflection
// have populated the HDR accumulation buffer and env-map slots it samples.
func NewTransparentPhase(passes PassSource, executor *rendertask.Executor, treeForFrame func(*Frame) *rendertask.Tree) Phase {
	return Phase{
		Name: "Transparent",
		Run: func(f *Frame) error {
			pass, err := passes.BeginPass("transparent")
			if err != nil {
				return fmt.Errorf("transparent phase: %w", err)
			}
			defer passes.EndPass(pass)
			return executor.Execute(pass, treeForFrame(f))
		},
	}
}

// NewGIPhase builds the GI phase: the final step of the frame, writing
// this frame's updated probe irradiance/distance data (computed by onDue
// during the Reflection phase) back so the next frame's shading pass reads
// current values. Kept as its own phase, after Transparent, so GI updates
// never race a frame still reading the previous values mid-draw.
func NewGIPhase(commit func(f *Frame) error) Phase {
	return Phase{
		Name: "GI",
		Run: func(f *Frame) error {
			if commit == nil {
				return nil
			}
			return commit(f)
		},
	}
}
