package plan

import (
	"errors"
	"testing"

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

type fakePassSource struct {
	begun int
	ended int
	fail  bool
}

func (f *fakePassSource) BeginPass(name string) (*wgpu.RenderPassEncoder, error) {
	if f.fail {
		return nil, errors.New("pass unavailable")
	}
	f.begun++
	return nil, nil
}

func (f *fakePassSource) EndPass(pass *wgpu.RenderPassEncoder) { f.ended++ }

func newEmptyExecutor() *rendertask.Executor {
	pipelines := func(pipeline.Config) (pipeline.Pipeline, error) { return nil, nil }
	bindGroups := func(tuc.Config) (*wgpu.BindGroup, error) { return nil, nil }
	return rendertask.NewExecutor(nil, pipelines, bindGroups)
}

func TestDepthPhaseOpensAndClosesOnePass(t *testing.T) {
	passes := &fakePassSource{}
	treeCalls := 0
	phase := NewDepthPhase(passes, newEmptyExecutor(), func(*Frame) *rendertask.Tree {
		treeCalls++
		return rendertask.NewTree()
	})

	if err := phase.Run(&Frame{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if passes.begun != 1 || passes.ended != 1 {
		t.Fatalf("begun=%d ended=%d, want 1/1", passes.begun, passes.ended)
	}
	if treeCalls != 1 {
		t.Fatalf("treeCalls = %d, want 1", treeCalls)
	}
}

func TestDepthPhasePropagatesBeginPassError(t *testing.T) {
	passes := &fakePassSource{fail: true}
	phase := NewDepthPhase(passes, newEmptyExecutor(), func(*Frame) *rendertask.Tree { return rendertask.NewTree() })

	if err := phase.Run(&Frame{}); err == nil {
		t.Fatal("expected an error when BeginPass fails")
	}
}

type fakeReducer struct {
	reduced bool
	fail    bool
}

func (r *fakeReducer) Reduce(encoder *wgpu.CommandEncoder, resolve func(pipeline.Config) (pipeline.Pipeline, error), bindGroupForLevel func(int) *wgpu.BindGroup) error {
	if r.fail {
		return errors.New("reduce failed")
	}
	r.reduced = true
	return nil
}

type sphereObject struct {
	sphere occlusion.Sphere
}

func (o sphereObject) PipelineConfig() pipeline.Config           { return pipeline.Config{} }
func (o sphereObject) TUCConfig() tuc.Config                     { return tuc.Config{} }
func (o sphereObject) Mesh() (gpubuf.Range, gpubuf.Range, uint32) {
	return gpubuf.Range{}, gpubuf.Range{}, 0
}
func (o sphereObject) ParamRange() gpubuf.Range           { return gpubuf.Range{} }
func (o sphereObject) IsSolid() bool                      { return true }
func (o sphereObject) IsOutline() bool                    { return false }
func (o sphereObject) IsDecal() bool                      { return false }
func (o sphereObject) CastsNoShadow() bool                { return false }
func (o sphereObject) OcclusionSphere() occlusion.Sphere  { return o.sphere }

func TestOcclusionPhaseLeavesEntriesVisibleWithoutDepthData(t *testing.T) {
	reducer := &fakeReducer{}
	resolve := func(pipeline.Config) (pipeline.Pipeline, error) { return nil, nil }
	bindGroupForLevel := func(int) *wgpu.BindGroup { return nil }
	snapshot := func() (*occlusion.PyramidSnapshot, error) {
		return &occlusion.PyramidSnapshot{
			Width: 0, Height: 0, MinDepth: nil, MaxDepth: nil,
		}, nil
	}

	phase := NewOcclusionPhase(nil, reducer, resolve, bindGroupForLevel, snapshot)

	list := &collidelist.List{}
	list.Add(collidelist.Entry{Object: sphereObject{sphere: occlusion.Sphere{X: 1, Y: 1, Z: 1, Radius: 1}}})
	frame := &Frame{CollideList: list}

	if err := phase.Run(frame); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reducer.reduced {
		t.Fatal("expected Reduce to be called")
	}
	if frame.CollideList.Entries[0].OcclusionHidden {
		t.Fatal("expected entry to stay visible when the pyramid has no recorded depth data")
	}
}

func TestOcclusionPhasePropagatesReduceError(t *testing.T) {
	reducer := &fakeReducer{fail: true}
	resolve := func(pipeline.Config) (pipeline.Pipeline, error) { return nil, nil }
	bindGroupForLevel := func(int) *wgpu.BindGroup { return nil }
	snapshot := func() (*occlusion.PyramidSnapshot, error) { return &occlusion.PyramidSnapshot{}, nil }

	phase := NewOcclusionPhase(nil, reducer, resolve, bindGroupForLevel, snapshot)
	if err := phase.Run(&Frame{}); err == nil {
		t.Fatal("expected an error when Reduce fails")
	}
}

type fakeShadowFrame struct{ viewsOpen int }

func (f *fakeShadowFrame) Begin() error { return nil }
func (f *fakeShadowFrame) BeginView(view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	f.viewsOpen++
	return nil
}
func (f *fakeShadowFrame) EndView(pass *wgpu.RenderPassEncoder) {}
func (f *fakeShadowFrame) End()                                 {}

func TestLightPhaseSkipsDisabledAndNonShadowingLights(t *testing.T) {
	sf := &fakeShadowFrame{}
	renderer := shadowrender.NewRenderer(sf, newEmptyExecutor())

	enabledSpot := light.NewLight(light.LightTypeSpot, light.WithCastsShadows(true))
	disabled := light.NewLight(light.LightTypeSpot, light.WithCastsShadows(true))
	disabled.SetEnabled(false)

	targets := func(*Frame) []ShadowTarget {
		return []ShadowTarget{
			{Light: enabledSpot, View: &wgpu.TextureView{}, TreeForView: rendertask.NewTree()},
			{Light: disabled, View: &wgpu.TextureView{}, TreeForView: rendertask.NewTree()},
		}
	}

	phase := NewLightPhase(renderer, targets, nil, nil, nil)
	if err := phase.Run(&Frame{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sf.viewsOpen != 1 {
		t.Fatalf("viewsOpen = %d, want 1 (disabled light must not render)", sf.viewsOpen)
	}
}

func TestLightPhaseSkipsRebuildWhenCasterIsCurrent(t *testing.T) {
	sf := &fakeShadowFrame{}
	renderer := shadowrender.NewRenderer(sf, newEmptyExecutor())

	spotLight := light.NewLight(light.LightTypeSpot, light.WithCastsShadows(true))
	caster := shadowcache.NewCaster(shadowcache.ShadowTypeStaticOnly)
	caster.SetMap(shadowcache.TierSolid, shadowcache.SlotStatic, &shadowcache.Map{Size: 512})

	targets := func(*Frame) []ShadowTarget {
		return []ShadowTarget{
			{
				Light:      spotLight,
				View:       &wgpu.TextureView{},
				TreeForView: rendertask.NewTree(),
				Caster:     caster,
				ShadowSize: 512,
				ShadowTier: shadowcache.TierSolid,
				ShadowSlot: shadowcache.SlotStatic,
			},
		}
	}

	phase := NewLightPhase(renderer, targets, nil, nil, nil)
	if err := phase.Run(&Frame{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sf.viewsOpen != 0 {
		t.Fatalf("viewsOpen = %d, want 0 (cached map at matching size needs no rebuild)", sf.viewsOpen)
	}
	if caster.LastUseTick(shadowcache.TierSolid, shadowcache.SlotStatic) != 0 {
		t.Fatal("expected Touch to reset lastUseTick to 0")
	}
}

func TestSpotFalloffMatchesTestableScenario(t *testing.T) {
	const smoothness = float32(0.3)
	const exponent = float32(2.0)

	if got := SpotFalloff(0.5, smoothness, exponent); got != 0 {
		t.Fatalf("SpotFalloff(0.5, ...) = %v, want 0", got)
	}
	if got := SpotFalloff(0.35, smoothness, exponent); got != 1 {
		t.Fatalf("SpotFalloff(0.35, ...) = %v, want 1", got)
	}
}

func TestReflectionPhaseSkippedWhenNoReflectionsRequested(t *testing.T) {
	probes := reflection.NewProbeScheduler(4, 2)
	called := false
	phase := NewReflectionPhase(probes, func(*Frame, []int) error { called = true; return nil })

	if err := phase.Run(&Frame{NoReflections: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if called {
		t.Fatal("expected onDue not to run when NoReflections is set")
	}
}

func TestReflectionPhaseInvokesOnDueWithDueProbes(t *testing.T) {
	probes := reflection.NewProbeScheduler(4, 2)
	var got []int
	phase := NewReflectionPhase(probes, func(_ *Frame, due []int) error { got = due; return nil })

	if err := phase.Run(&Frame{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v probes, want 2", got)
	}
}

func TestGIPhaseNoopWithoutCommit(t *testing.T) {
	phase := NewGIPhase(nil)
	if err := phase.Run(&Frame{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestGIPhaseInvokesCommit(t *testing.T) {
	called := false
	phase := NewGIPhase(func(*Frame) error { called = true; return nil })
	if err := phase.Run(&Frame{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !called {
		t.Fatal("expected commit to be invoked")
	}
}
