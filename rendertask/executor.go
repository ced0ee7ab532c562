package rendertask

import (
	"fmt"

	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/tuc"

	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineResolver maps a pipeline.Config to its realized Pipeline,
// building it on first request. Backed by pipeline.Cache in production.
type PipelineResolver func(pipeline.Config) (pipeline.Pipeline, error)

// BindGroupResolver maps a tuc.Config to its realized bind group, creating
// and caching it on first request. Backed by tuc.Cache in production.
type BindGroupResolver func(tuc.Config) (*wgpu.BindGroup, error)

// Executor walks a Tree once per pass, submitting one SetPipeline /
// SetBindGroup per (pipeline, TUC) change and one DrawIndexed per VAO leaf.
type Executor struct {
	pool      gpubuf.Pool
	pipelines PipelineResolver
	bindGroups BindGroupResolver
}

// NewExecutor creates an Executor that reads mesh ranges out of pool and
// resolves pipelines/bind groups through the given resolver functions.
func NewExecutor(pool gpubuf.Pool, pipelines PipelineResolver, bindGroups BindGroupResolver) *Executor {
	return &Executor{pool: pool, pipelines: pipelines, bindGroups: bindGroups}
}

// Execute submits every leaf in tree against pass, in tree order. Leaves
// whose instance count is more than one are drawn with a single instanced
// DrawIndexed call (same mesh, same pipeline, same TUC → GPU instancing);
// single-instance leaves draw with instanceCount 1. Objects that need a
// per-instance base offset into the parameter buffer write it via
// firstInstance, so the vertex shader can index gl_InstanceIndex-relative
// into the shared storage buffer.
func (ex *Executor) Execute(pass *wgpu.RenderPassEncoder, tree *Tree) error {
	var execErr error
	var currentPipelineKey string
	var currentTUCKey string

	tree.Walk(func(pCfg pipeline.Config, tCfg tuc.Config, v *VAONode) {
		if execErr != nil {
			return
		}
		if len(v.Instances) == 0 {
			return
		}

		pk := pipelineKey(pCfg)
		if pk != currentPipelineKey {
			p, err := ex.pipelines(pCfg)
			if err != nil {
				execErr = fmt.Errorf("rendertask: resolving pipeline: %w", err)
				return
			}
			rp, ok := p.Handle().(*wgpu.RenderPipeline)
			if !ok || rp == nil {
				execErr = fmt.Errorf("rendertask: pipeline %q has no render pipeline handle", pk)
				return
			}
			pass.SetPipeline(rp)
			currentPipelineKey = pk
			currentTUCKey = ""
		}

		tk := tCfg.Key()
		if tk != currentTUCKey {
			bg, err := ex.bindGroups(tCfg)
			if err != nil {
				execErr = fmt.Errorf("rendertask: resolving bind group: %w", err)
				return
			}
			pass.SetBindGroup(0, bg, nil)
			currentTUCKey = tk
		}

		pass.SetVertexBuffer(0, ex.pool.VertexBuffer(), v.VertexRange.Offset, v.VertexRange.Size)
		pass.SetIndexBuffer(ex.pool.IndexBuffer(), wgpu.IndexFormatUint32, v.IndexRange.Offset, v.IndexRange.Size)

		firstInstance := uint32(0)
		if len(v.Instances) > 0 {
			// Instances were appended contiguously into the shared parameter
			// buffer by the caller; the base offset divided by one
			// instance-record stride gives the starting instance index the
			// vertex shader uses to look itself up in the storage buffer.
			firstInstance = uint32(v.Instances[0].ParamRange.Offset / paramStride(v.Instances))
		}

		pass.DrawIndexed(v.IndexCount, uint32(len(v.Instances)), 0, 0, firstInstance)
	})

	return execErr
}

// paramStride returns the per-instance parameter block stride, inferred
// from the first two instances when available so non-uniform callers that
// pack instances back to back still compute a sane firstInstance base.
func paramStride(instances []Instance) uint64 {
	if len(instances) < 2 {
		if len(instances) == 1 && instances[0].ParamRange.Size > 0 {
			return instances[0].ParamRange.Size
		}
		return 1
	}
	stride := instances[1].ParamRange.Offset - instances[0].ParamRange.Offset
	if stride == 0 {
		return 1
	}
	return stride
}
