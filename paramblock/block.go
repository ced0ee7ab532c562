// Package paramblock implements the shared parameter-block list (SPBL):
// typed, GPU-visible parameter records laid out to std140 (uniform buffer)
// or std430 (storage buffer) alignment rules, sub-allocated out of a
// gpubuf.Pool range instead of each owning a dedicated buffer.
//
// A Block does not know its own Go struct shape; callers marshal their
// per-render / per-light / per-instance struct into a []byte (following the
// GPULight/GPUShadowData convention in engine/light/gpu_types.go) and hand
// it to Write. The block only owns the range and the layout choice.
package paramblock

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrelrender/kestrel/gpubuf"
)

// Layout identifies the GPU memory layout rules a Block's byte data must
// already satisfy. paramblock does not compute offsets itself; the caller's
// Marshal function (mirroring GPULight.Marshal, GPUShadowData.Marshal) is
// responsible for field ordering and padding.
type Layout int

const (
	// LayoutStd140 is the uniform-buffer layout: 16-byte vec/struct alignment.
	LayoutStd140 Layout = iota
	// LayoutStd430 is the storage-buffer layout: tighter array-of-struct packing.
	LayoutStd430
)

// BindingKind distinguishes whether a block binds as a uniform or a storage buffer.
type BindingKind int

const (
	// BindingUniform binds the block's range as a uniform buffer (UBO).
	BindingUniform BindingKind = iota
	// BindingStorage binds the block's range as a storage buffer (SSBO).
	BindingStorage
)

var errNotWritten = errors.New("paramblock: block has no range allocated, call Write first")

// block is the implementation of the Block interface.
type block struct {
	label  string
	layout Layout
	kind   BindingKind

	pool  gpubuf.Pool
	queue *wgpu.Queue

	rng       gpubuf.Range
	allocated bool
}

// Block is a single GPU-visible parameter record living inside the shared
// parameter buffer owned by a gpubuf.Pool. It is re-written (not
// reallocated) every frame when its size does not change; when the size
// grows it reallocates within the pool and frees the old range.
type Block interface {
	// Label returns the debug label for this block.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Layout returns the std140/std430 layout this block's bytes follow.
	//
	// Returns:
	//   - Layout: the block's layout
	Layout() Layout

	// Kind returns whether this block binds as a uniform or storage buffer.
	//
	// Returns:
	//   - BindingKind: the binding kind
	Kind() BindingKind

	// Range returns the block's current byte range within the pool's shared
	// parameter buffer. Returns the zero Range if Write has not been called.
	//
	// Returns:
	//   - gpubuf.Range: the allocated range
	Range() gpubuf.Range

	// Write uploads data into the block's GPU range, (re)allocating from the
	// pool if the block has no range yet or if data's length no longer fits
	// the current range.
	//
	// Parameters:
	//   - data: the marshaled byte payload to upload
	//
	// Returns:
	//   - error: non-nil if allocation or upload fails
	Write(data []byte) error

	// Release frees the block's range back to the pool.
	Release()
}

var _ Block = &block{}

// NewBlock creates a new Block backed by the given pool and GPU queue.
//
// Parameters:
//   - label: debug label
//   - layout: std140 or std430
//   - kind: uniform or storage binding
//   - pool: the shared GPU buffer pool to sub-allocate from
//   - queue: the wgpu queue used to upload written bytes
//
// Returns:
//   - Block: the newly created block
func NewBlock(label string, layout Layout, kind BindingKind, pool gpubuf.Pool, queue *wgpu.Queue) Block {
	return &block{
		label:  label,
		layout: layout,
		kind:   kind,
		pool:   pool,
		queue:  queue,
	}
}

func (b *block) Label() string {
	return b.label
}

func (b *block) Layout() Layout {
	return b.layout
}

func (b *block) Kind() BindingKind {
	return b.kind
}

func (b *block) Range() gpubuf.Range {
	return b.rng
}

func (b *block) Write(data []byte) error {
	size := uint64(len(data))
	if !b.allocated || size > b.rng.Size {
		if b.allocated {
			b.pool.FreeParamRange(b.rng)
		}
		r, err := b.pool.AllocateParamRange(size)
		if err != nil {
			return err
		}
		b.rng = r
		b.allocated = true
	}
	b.queue.WriteBuffer(b.pool.ParamBuffer(), b.rng.Offset, data)
	return nil
}

func (b *block) Release() {
	if b.allocated {
		b.pool.FreeParamRange(b.rng)
		b.allocated = false
	}
}

// MustRange returns the block's range, panicking if Write has never been
// called. Used by callers (tuc binding setup) that require an allocated
// range to already exist by construction.
func MustRange(b Block) gpubuf.Range {
	r := b.Range()
	if r.Size == 0 {
		panic(errNotWritten)
	}
	return r
}
