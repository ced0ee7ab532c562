// Package shapes is the CPU-authored primitive Shape Library: sphere, box,
// cylinder, capsule, and light-volume meshes (cone for spot/projector,
// sphere for point; there is no sky mesh) uploaded once into the
// shared vertex/index buffers owned by a gpubuf.Pool.
package shapes

import (
	"github.com/kestrelrender/kestrel/common"
	"github.com/kestrelrender/kestrel/engine/model"
	"github.com/kestrelrender/kestrel/gpubuf"

	"github.com/cogentcore/webgpu/wgpu"
)

// Mesh is a primitive uploaded into the shared buffer pool: a vertex range,
// an index range, and the index count needed to issue a DrawIndexed call.
type Mesh struct {
	Name         string
	VertexRange  gpubuf.Range
	IndexRange   gpubuf.Range
	IndexCount   uint32
	BoundsRadius float32
}

// Generator produces the CPU-side vertex/index data for a primitive shape.
// Box is a Generator; Sphere, Cylinder, Capsule, and SpotCone return one.
type Generator func() ([]model.GPUVertex, []uint32)

// Upload writes a generator's output into the pool's shared vertex/index
// buffers and returns the resulting Mesh descriptor.
//
// Parameters:
//   - name: debug name for the mesh
//   - gen: the CPU mesh generator
//   - pool: the shared buffer pool to upload into
//   - queue: the GPU queue used for the upload
//
// Returns:
//   - Mesh: the uploaded mesh descriptor
//   - error: non-nil if the pool has no room left
func Upload(name string, gen Generator, pool gpubuf.Pool, queue *wgpu.Queue) (Mesh, error) {
	verts, indices := gen()

	vertexBytes := common.SliceToBytes(verts)
	vr, err := pool.AllocateVertexRange(uint64(len(vertexBytes)))
	if err != nil {
		return Mesh{}, err
	}
	queue.WriteBuffer(pool.VertexBuffer(), vr.Offset, vertexBytes)

	indexBytes := common.SliceToBytes(indices)
	ir, err := pool.AllocateIndexRange(uint64(len(indexBytes)))
	if err != nil {
		pool.FreeVertexRange(vr)
		return Mesh{}, err
	}
	queue.WriteBuffer(pool.IndexBuffer(), ir.Offset, indexBytes)

	return Mesh{
		Name:         name,
		VertexRange:  vr,
		IndexRange:   ir,
		IndexCount:   uint32(len(indices)),
		BoundsRadius: boundingRadius(verts),
	}, nil
}

func boundingRadius(verts []model.GPUVertex) float32 {
	var max float32
	for _, v := range verts {
		d := v.Position[0]*v.Position[0] + v.Position[1]*v.Position[1] + v.Position[2]*v.Position[2]
		if d > max {
			max = d
		}
	}
	return sqrtf32(max)
}

func sqrtf32(v float32) float32 {
	if v <= 0 {
		return 0
	}
	// Newton's method, a handful of iterations is plenty for bounding radii.
	x := v
	for range 8 {
		x = 0.5 * (x + v/x)
	}
	return x
}
