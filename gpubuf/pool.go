// Package gpubuf owns the shared vertex, index, and parameter buffers that
// back every draw in a render task. Individual meshes and parameter blocks
// do not get their own GPU buffer; they sub-allocate a Range out of one of
// the pool's shared buffers, so the renderer can issue a single bind
// followed by many base-vertex/base-index draws instead of rebinding per
// object.
package gpubuf

import (
	"errors"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	errEmptyAlloc = errors.New("gpubuf: cannot allocate a zero-size range")
	errOutOfSpace = errors.New("gpubuf: no free range large enough, pool exhausted")
)

// pool is the implementation of the Pool interface.
type pool struct {
	mu *sync.Mutex

	vertexCapacity uint64
	indexCapacity  uint64
	paramCapacity  uint64

	vertexFree *freeList
	indexFree  *freeList
	paramFree  *freeList

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	paramBuffer  *wgpu.Buffer
}

// Pool is the shared GPU buffer pool. It owns one vertex buffer, one index
// buffer, and one parameter (storage) buffer, each sub-allocated with a
// free-list allocator. Shape Library meshes and Parameter Blocks request
// ranges from it rather than creating their own per-draw buffers.
type Pool interface {
	// Init creates the underlying GPU buffers at the configured capacities.
	// Must be called once before any Allocate* call.
	//
	// Parameters:
	//   - device: the wgpu device to create buffers on
	//
	// Returns:
	//   - error: non-nil if buffer creation fails
	Init(device *wgpu.Device) error

	// AllocateVertexRange reserves sizeBytes from the shared vertex buffer.
	//
	// Parameters:
	//   - sizeBytes: number of bytes to reserve
	//
	// Returns:
	//   - Range: the allocated byte range
	//   - error: non-nil if the pool has no free range large enough
	AllocateVertexRange(sizeBytes uint64) (Range, error)

	// FreeVertexRange returns a previously allocated vertex range to the pool.
	//
	// Parameters:
	//   - r: the range to free
	FreeVertexRange(r Range)

	// AllocateIndexRange reserves sizeBytes from the shared index buffer.
	//
	// Parameters:
	//   - sizeBytes: number of bytes to reserve
	//
	// Returns:
	//   - Range: the allocated byte range
	//   - error: non-nil if the pool has no free range large enough
	AllocateIndexRange(sizeBytes uint64) (Range, error)

	// FreeIndexRange returns a previously allocated index range to the pool.
	//
	// Parameters:
	//   - r: the range to free
	FreeIndexRange(r Range)

	// AllocateParamRange reserves sizeBytes from the shared parameter buffer.
	// Callers should round sizeBytes up to the device's minimum storage
	// buffer offset alignment before calling.
	//
	// Parameters:
	//   - sizeBytes: number of bytes to reserve
	//
	// Returns:
	//   - Range: the allocated byte range
	//   - error: non-nil if the pool has no free range large enough
	AllocateParamRange(sizeBytes uint64) (Range, error)

	// FreeParamRange returns a previously allocated parameter range to the pool.
	//
	// Parameters:
	//   - r: the range to free
	FreeParamRange(r Range)

	// VertexBuffer returns the shared GPU vertex buffer.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer, or nil if Init has not been called
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the shared GPU index buffer.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer, or nil if Init has not been called
	IndexBuffer() *wgpu.Buffer

	// ParamBuffer returns the shared GPU parameter (storage) buffer.
	//
	// Returns:
	//   - *wgpu.Buffer: the parameter buffer, or nil if Init has not been called
	ParamBuffer() *wgpu.Buffer

	// VertexHeadroom returns the size in bytes of the largest free vertex range.
	//
	// Returns:
	//   - uint64: free bytes in the largest contiguous vertex range
	VertexHeadroom() uint64

	// Release releases the underlying GPU buffers.
	Release()
}

var _ Pool = &pool{}

// NewPool creates a new Pool with the provided capacities and options.
// Buffers are not created until Init is called.
//
// Parameters:
//   - options: functional options configuring buffer capacities
//
// Returns:
//   - Pool: the newly created pool
func NewPool(options ...PoolBuilderOption) Pool {
	p := &pool{
		mu:             &sync.Mutex{},
		vertexCapacity: 16 * 1024 * 1024,
		indexCapacity:  4 * 1024 * 1024,
		paramCapacity:  8 * 1024 * 1024,
	}
	for _, opt := range options {
		opt(p)
	}
	p.vertexFree = newFreeList(p.vertexCapacity)
	p.indexFree = newFreeList(p.indexCapacity)
	p.paramFree = newFreeList(p.paramCapacity)
	return p
}

func (p *pool) Init(device *wgpu.Device) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	vb, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "gpubuf.vertex",
		Size:  p.vertexCapacity,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	ib, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "gpubuf.index",
		Size:  p.indexCapacity,
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return err
	}
	pb, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "gpubuf.params",
		Size:  p.paramCapacity,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		ib.Release()
		return err
	}

	p.vertexBuffer = vb
	p.indexBuffer = ib
	p.paramBuffer = pb
	return nil
}

func (p *pool) AllocateVertexRange(sizeBytes uint64) (Range, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vertexFree.alloc(sizeBytes)
}

func (p *pool) FreeVertexRange(r Range) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vertexFree.release(r)
}

func (p *pool) AllocateIndexRange(sizeBytes uint64) (Range, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexFree.alloc(sizeBytes)
}

func (p *pool) FreeIndexRange(r Range) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.indexFree.release(r)
}

func (p *pool) AllocateParamRange(sizeBytes uint64) (Range, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paramFree.alloc(sizeBytes)
}

func (p *pool) FreeParamRange(r Range) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paramFree.release(r)
}

func (p *pool) VertexBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vertexBuffer
}

func (p *pool) IndexBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexBuffer
}

func (p *pool) ParamBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paramBuffer
}

func (p *pool) VertexHeadroom() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vertexFree.largestFree()
}

func (p *pool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	if p.paramBuffer != nil {
		p.paramBuffer.Release()
		p.paramBuffer = nil
	}
}
