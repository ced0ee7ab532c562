// Package collidelist implements the per-frame Collide List: an ordered
// sequence of visible components, lights, prop fields, height-terrain
// sectors, and environment maps, each carrying cached per-frame visibility
// data. Lists are checked out of a small free-list pool at frame start and
// returned at frame end rather than allocated fresh, following
// deoglCollideListManager.h's per-frame pooling discipline.
package collidelist

import (
	"sync"

	"github.com/kestrelrender/kestrel/rendertask"
)

// Entry is one visible object plus the per-frame visibility data computed
// for it during the collide pass.
type Entry struct {
	Object rendertask.RenderObject

	// LOD is the level of detail selected for this entry this frame.
	LOD int

	// CubeFaceMask is a six-bit mask of which cube-map faces (point-light
	// shadow rendering) this entry is visible from, bit i set for face i.
	CubeFaceMask uint8

	// CameraInside reports whether the eye point lies inside this entry's
	// light volume (only meaningful for light entries).
	CameraInside bool

	// OcclusionHidden reports whether the occlusion subsystem's visibility
	// test determined this entry is fully occluded this frame.
	OcclusionHidden bool
}

// Visible reports whether the entry should be submitted to a render task
// this frame: it must not be occlusion-hidden.
func (e Entry) Visible() bool {
	return !e.OcclusionHidden
}

// List is the per-frame collide list. Its backing slice is reused across
// frames via Pool to avoid per-frame allocation.
type List struct {
	Entries []Entry
}

// Reset empties the list for reuse, keeping the backing array allocated.
func (l *List) Reset() {
	l.Entries = l.Entries[:0]
}

// Add appends an entry to the list.
func (l *List) Add(e Entry) {
	l.Entries = append(l.Entries, e)
}

// VisibleObjects returns the RenderObjects of every non-occluded entry,
// suitable for handing directly to rendertask.AddToRenderTask.
func (l *List) VisibleObjects() []rendertask.RenderObject {
	out := make([]rendertask.RenderObject, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.Visible() {
			out = append(out, e.Object)
		}
	}
	return out
}

// Pool hands out reusable *List values so per-frame collide-list
// construction does not allocate once steady state is reached.
type Pool struct {
	sync.Pool
}

// NewPool creates a collide-list pool.
func NewPool() *Pool {
	return &Pool{
		Pool: sync.Pool{
			New: func() any { return &List{} },
		},
	}
}

// Get returns an empty *List, either freshly allocated or recycled.
func (p *Pool) Get() *List {
	l := p.Pool.Get().(*List)
	l.Reset()
	return l
}

// Put returns l to the pool for reuse by a future frame.
func (p *Pool) Put(l *List) {
	p.Pool.Put(l)
}
