package shadowrender

import (
	"testing"

	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/rendertask"
	"github.com/kestrelrender/kestrel/tuc"

	"github.com/cogentcore/webgpu/wgpu"
)

type fakeFrame struct {
	begun     bool
	viewsOpen int
	ended     bool
}

func (f *fakeFrame) Begin() error { f.begun = true; return nil }
func (f *fakeFrame) BeginView(view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	f.viewsOpen++
	return nil
}
func (f *fakeFrame) EndView(pass *wgpu.RenderPassEncoder) {}
func (f *fakeFrame) End()                                 { f.ended = true }

func newEmptyExecutor() *rendertask.Executor {
	pipelines := func(pipeline.Config) (pipeline.Pipeline, error) { return nil, nil }
	bindGroups := func(tuc.Config) (*wgpu.BindGroup, error) { return nil, nil }
	return rendertask.NewExecutor(nil, pipelines, bindGroups)
}

func TestRenderViewOpensAndClosesOneView(t *testing.T) {
	f := &fakeFrame{}
	r := NewRenderer(f, newEmptyExecutor())

	if err := r.RenderView(nil, rendertask.NewTree()); err != nil {
		t.Fatalf("RenderView: %v", err)
	}
	if f.viewsOpen != 1 {
		t.Fatalf("viewsOpen = %d, want 1", f.viewsOpen)
	}
}

func TestRenderCubeSkipsMaskedFaces(t *testing.T) {
	f := &fakeFrame{}
	r := NewRenderer(f, newEmptyExecutor())

	var views [CubeFaceCount]*wgpu.TextureView
	views[CubeFacePosX] = &wgpu.TextureView{}
	views[CubeFaceNegZ] = &wgpu.TextureView{}
	mask := uint8(1<<CubeFacePosX | 1<<CubeFaceNegZ)

	calls := 0
	err := r.RenderCube(views, mask, func(face CubeFace) *rendertask.Tree {
		calls++
		return rendertask.NewTree()
	})
	if err != nil {
		t.Fatalf("RenderCube: %v", err)
	}
	if calls != 2 {
		t.Fatalf("treeForFace calls = %d, want 2", calls)
	}
	if f.viewsOpen != 2 {
		t.Fatalf("viewsOpen = %d, want 2", f.viewsOpen)
	}
}

func TestRenderCascadesRendersEachLevel(t *testing.T) {
	f := &fakeFrame{}
	r := NewRenderer(f, newEmptyExecutor())

	views := make([]*wgpu.TextureView, 3)
	views[0] = &wgpu.TextureView{}
	views[2] = &wgpu.TextureView{}
	levels := []int{}
	err := r.RenderCascades(views, func(level int) *rendertask.Tree {
		levels = append(levels, level)
		return rendertask.NewTree()
	})
	if err != nil {
		t.Fatalf("RenderCascades: %v", err)
	}
	if len(levels) != 2 || levels[0] != 0 || levels[1] != 2 {
		t.Fatalf("levels = %v, want [0 2]", levels)
	}
	if f.viewsOpen != 2 {
		t.Fatalf("viewsOpen = %d, want 2", f.viewsOpen)
	}
}
