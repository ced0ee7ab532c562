// Package rendertask implements the Render Task: a four-level tree keyed
// pipeline → texture-unit-config → VAO (mesh) → instance, plus the builder
// (AddToRenderTask) that partitions a collide list into the tree and the
// executor that walks it issuing draw calls. Identical leaves (same
// pipeline, TUC, and mesh) coalesce into one instanced draw instead of one
// draw per object, mirroring the instance-batching behavior
// engine/scene/scene.go already applies to animator instances, generalized
// here to any render object.
package rendertask

import (
	"fmt"

	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/tuc"
)

// Instance is one object's contribution to a coalesced draw: the range in
// the shared parameter buffer holding its per-instance data (model matrix,
// material index, etc).
type Instance struct {
	ParamRange gpubuf.Range
}

// VAONode is the leaf level of the tree: one mesh (vertex/index range) and
// the list of instances drawing it under the same pipeline and TUC.
type VAONode struct {
	VertexRange gpubuf.Range
	IndexRange  gpubuf.Range
	IndexCount  uint32
	Instances   []Instance
}

// TUCNode groups VAO nodes sharing the same texture-unit config under one pipeline.
type TUCNode struct {
	Config tuc.Config
	VAOs   map[vaoKey]*VAONode
	order  []vaoKey
}

// PipelineNode groups TUC nodes sharing the same pipeline configuration.
type PipelineNode struct {
	Config pipeline.Config
	TUCs   map[string]*TUCNode
	order  []string
}

// Tree is the full render task: pipeline → TUC → VAO → instance. One Tree
// is built per pass per frame (solid geometry pass, a given shadow map,
// etc); Persistent Render Tasks (planrendertask) wrap the same shape with
// pooled, incrementally-updated nodes instead of rebuilding from scratch.
type Tree struct {
	Pipelines map[string]*PipelineNode
	order     []string
}

type vaoKey struct {
	vertexOffset uint64
	indexOffset  uint64
}

// NewTree creates an empty render task tree.
func NewTree() *Tree {
	return &Tree{Pipelines: make(map[string]*PipelineNode)}
}

// pipelineKey turns a pipeline.Config into a stable map key. Config is
// already a comparable struct usable as a map key on its own, but the tree
// also needs a stable iteration order for deterministic draw submission, so
// leaves are indexed by a string derived from the Config's shader keys plus
// state, alongside a insertion-ordered slice.
func pipelineKey(cfg pipeline.Config) string {
	return fmt.Sprintf("%+v", cfg)
}

// Walk calls fn for every (pipeline, TUC, VAO) leaf in insertion order, the
// order the executor submits draws in.
func (t *Tree) Walk(fn func(pipeline.Config, tuc.Config, *VAONode)) {
	for _, pk := range t.order {
		pn := t.Pipelines[pk]
		for _, tk := range pn.order {
			tn := pn.TUCs[tk]
			for _, vk := range tn.order {
				fn(pn.Config, tn.Config, tn.VAOs[vk])
			}
		}
	}
}

// Reset clears the tree for reuse, keeping its backing maps allocated.
func (t *Tree) Reset() {
	for k := range t.Pipelines {
		delete(t.Pipelines, k)
	}
	t.order = t.order[:0]
}

// Len returns the total instance count across every leaf, used for debug
// counters (RenderedObjects).
func (t *Tree) Len() int {
	total := 0
	t.Walk(func(_ pipeline.Config, _ tuc.Config, v *VAONode) {
		total += len(v.Instances)
	})
	return total
}
