package main

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrelrender/kestrel/engine/model"
	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/occlusion"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/shapes"
	"github.com/kestrelrender/kestrel/tuc"
)

// staticMesh is a non-skinned prop drawn directly out of the shared
// vertex/index/param buffers: a scene.Object implemented without
// game_object.GameObject's bind_group_provider-per-object resource model,
// since a render task leaf needs gpubuf.Range values, not a dedicated
// GPU buffer per object.
type staticMesh struct {
	id uint64

	mesh       shapes.Mesh
	pipeline   pipeline.Config
	tuc        tuc.Config
	paramRange gpubuf.Range

	pool  gpubuf.Pool
	queue *wgpu.Queue

	x, y, z float32
}

func (s *staticMesh) ID() uint64     { return s.id }
func (s *staticMesh) SetID(id uint64) { s.id = id }

func (s *staticMesh) PipelineConfig() pipeline.Config { return s.pipeline }
func (s *staticMesh) TUCConfig() tuc.Config            { return s.tuc }

func (s *staticMesh) Mesh() (vertex, index gpubuf.Range, indexCount uint32) {
	return s.mesh.VertexRange, s.mesh.IndexRange, s.mesh.IndexCount
}

func (s *staticMesh) ParamRange() gpubuf.Range { return s.paramRange }

func (s *staticMesh) IsSolid() bool       { return true }
func (s *staticMesh) IsOutline() bool     { return false }
func (s *staticMesh) IsDecal() bool       { return false }
func (s *staticMesh) CastsNoShadow() bool { return false }

// OcclusionSphere satisfies plan.BoundsSource so the Occlusion phase can
// test this object against the reduced depth pyramid.
func (s *staticMesh) OcclusionSphere() occlusion.Sphere {
	return occlusion.Sphere{X: s.x, Y: s.y, Z: s.z, Radius: s.mesh.BoundsRadius}
}

// writeTransform marshals a column-major model matrix built from this
// object's world position into its parameter-buffer range.
func (s *staticMesh) writeTransform(columnMajor [16]float32) {
	data := model.GPUModelData{Model: columnMajor}
	s.queue.WriteBuffer(s.pool.ParamBuffer(), s.paramRange.Offset, data.Marshal())
}
