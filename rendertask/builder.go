package rendertask

import (
	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/tuc"
)

// RenderObject is anything AddToRenderTask can place into a Tree: a
// component, a prop-field instance, or a light volume. Scene-level types
// (game_object, light) implement this directly rather than rendertask
// depending on them, keeping the tree builder free of scene-graph imports.
type RenderObject interface {
	// PipelineConfig returns the rasterization/shader configuration this
	// object draws with.
	PipelineConfig() pipeline.Config

	// TUCConfig returns the texture-unit bindings this object draws with.
	TUCConfig() tuc.Config

	// Mesh returns the shared-buffer vertex/index range and index count for
	// this object's geometry.
	Mesh() (vertex, index gpubuf.Range, indexCount uint32)

	// ParamRange returns the range in the shared parameter buffer holding
	// this object's per-instance data.
	ParamRange() gpubuf.Range

	// IsSolid reports whether this object belongs in the solid (opaque)
	// partition as opposed to the transparent partition.
	IsSolid() bool

	// IsOutline reports whether this object is an outline-only decoration pass.
	IsOutline() bool

	// IsDecal reports whether this object is a decal projected onto other geometry.
	IsDecal() bool

	// CastsNoShadow reports whether this object is excluded from shadow-map
	// render tasks (e.g. it is shadow-casting-disabled).
	CastsNoShadow() bool
}

// AddOptions is the single options struct AddToRenderTask takes, per
// deoglAddToRenderTask.h's filter-composition rule: solid/transparent
// partitioning happens first, then outline/decal/shadow-none are
// independent boolean exclusions logically ANDed together, not chained
// method calls.
type AddOptions struct {
	// SolidOnly includes only objects where IsSolid() is true.
	SolidOnly bool
	// TransparentOnly includes only objects where IsSolid() is false.
	// Mutually exclusive with SolidOnly; if both are set, SolidOnly wins.
	TransparentOnly bool
	// ExcludeOutline drops objects where IsOutline() is true.
	ExcludeOutline bool
	// ExcludeDecal drops objects where IsDecal() is true.
	ExcludeDecal bool
	// ExcludeShadowNone drops objects where CastsNoShadow() is true; set
	// when building a shadow-map render task so non-casters are skipped.
	ExcludeShadowNone bool
}

func (o AddOptions) accepts(obj RenderObject) bool {
	if o.SolidOnly && !obj.IsSolid() {
		return false
	}
	if !o.SolidOnly && o.TransparentOnly && obj.IsSolid() {
		return false
	}
	if o.ExcludeOutline && obj.IsOutline() {
		return false
	}
	if o.ExcludeDecal && obj.IsDecal() {
		return false
	}
	if o.ExcludeShadowNone && obj.CastsNoShadow() {
		return false
	}
	return true
}

// AddToRenderTask partitions objects into tree according to opts,
// coalescing objects that share the same pipeline, TUC, and mesh into one
// VAONode's instance list so the executor can draw them with a single
// instanced/indirect call.
//
// Parameters:
//   - tree: the render task tree to add matching objects into
//   - objects: the candidate objects, typically one frame's collide list
//   - opts: the filter/partition options (see AddOptions)
func AddToRenderTask(tree *Tree, objects []RenderObject, opts AddOptions) {
	for _, obj := range objects {
		if !opts.accepts(obj) {
			continue
		}
		addOne(tree, obj)
	}
}

func addOne(tree *Tree, obj RenderObject) {
	pCfg := obj.PipelineConfig()
	pk := pipelineKey(pCfg)
	pn, ok := tree.Pipelines[pk]
	if !ok {
		pn = &PipelineNode{Config: pCfg, TUCs: make(map[string]*TUCNode)}
		tree.Pipelines[pk] = pn
		tree.order = append(tree.order, pk)
	}

	tCfg := obj.TUCConfig()
	tk := tCfg.Key()
	tn, ok := pn.TUCs[tk]
	if !ok {
		tn = &TUCNode{Config: tCfg, VAOs: make(map[vaoKey]*VAONode)}
		pn.TUCs[tk] = tn
		pn.order = append(pn.order, tk)
	}

	vr, ir, indexCount := obj.Mesh()
	vk := vaoKey{vertexOffset: vr.Offset, indexOffset: ir.Offset}
	vn, ok := tn.VAOs[vk]
	if !ok {
		vn = &VAONode{VertexRange: vr, IndexRange: ir, IndexCount: indexCount}
		tn.VAOs[vk] = vn
		tn.order = append(tn.order, vk)
	}

	vn.Instances = append(vn.Instances, Instance{ParamRange: obj.ParamRange()})
}
