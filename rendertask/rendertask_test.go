package rendertask

import (
	"testing"

	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/tuc"
)

type fakeObject struct {
	pCfg          pipeline.Config
	tCfg          tuc.Config
	vertex, index gpubuf.Range
	indexCount    uint32
	param         gpubuf.Range
	solid         bool
	outline       bool
	decal         bool
	noShadow      bool
}

func (o fakeObject) PipelineConfig() pipeline.Config                  { return o.pCfg }
func (o fakeObject) TUCConfig() tuc.Config                            { return o.tCfg }
func (o fakeObject) Mesh() (gpubuf.Range, gpubuf.Range, uint32)       { return o.vertex, o.index, o.indexCount }
func (o fakeObject) ParamRange() gpubuf.Range                         { return o.param }
func (o fakeObject) IsSolid() bool                                    { return o.solid }
func (o fakeObject) IsOutline() bool                                  { return o.outline }
func (o fakeObject) IsDecal() bool                                    { return o.decal }
func (o fakeObject) CastsNoShadow() bool                              { return o.noShadow }

func TestAddToRenderTaskCoalescesIdenticalLeaves(t *testing.T) {
	tree := NewTree()
	mesh := gpubuf.Range{Offset: 0, Size: 64}
	objects := []RenderObject{
		fakeObject{pCfg: pipeline.Config{VertexShaderKey: "v"}, vertex: mesh, index: mesh, indexCount: 6, solid: true},
		fakeObject{pCfg: pipeline.Config{VertexShaderKey: "v"}, vertex: mesh, index: mesh, indexCount: 6, solid: true},
	}

	AddToRenderTask(tree, objects, AddOptions{})

	if tree.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tree.Len())
	}

	count := 0
	tree.Walk(func(_ pipeline.Config, _ tuc.Config, v *VAONode) {
		count++
		if len(v.Instances) != 2 {
			t.Fatalf("expected both objects coalesced into one VAONode, got %d instances", len(v.Instances))
		}
	})
	if count != 1 {
		t.Fatalf("expected exactly one VAONode, got %d", count)
	}
}

func TestAddToRenderTaskPartitionsSolidOnly(t *testing.T) {
	tree := NewTree()
	mesh := gpubuf.Range{Offset: 0, Size: 64}
	objects := []RenderObject{
		fakeObject{vertex: mesh, index: mesh, indexCount: 6, solid: true},
		fakeObject{vertex: mesh, index: mesh, indexCount: 6, solid: false},
	}

	AddToRenderTask(tree, objects, AddOptions{SolidOnly: true})

	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}
}

func TestAddToRenderTaskExcludesShadowNone(t *testing.T) {
	tree := NewTree()
	mesh := gpubuf.Range{Offset: 0, Size: 64}
	objects := []RenderObject{
		fakeObject{vertex: mesh, index: mesh, indexCount: 6, noShadow: true},
		fakeObject{vertex: mesh, index: mesh, indexCount: 6, noShadow: false},
	}

	AddToRenderTask(tree, objects, AddOptions{ExcludeShadowNone: true})

	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}
}

func TestTreeResetClearsState(t *testing.T) {
	tree := NewTree()
	mesh := gpubuf.Range{Offset: 0, Size: 64}
	AddToRenderTask(tree, []RenderObject{fakeObject{vertex: mesh, index: mesh, indexCount: 6}}, AddOptions{})
	if tree.Len() != 1 {
		t.Fatalf("expected 1 before reset, got %d", tree.Len())
	}
	tree.Reset()
	if tree.Len() != 0 {
		t.Fatalf("expected 0 after reset, got %d", tree.Len())
	}
}
