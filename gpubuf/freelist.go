package gpubuf

import "sort"

// Range describes a contiguous byte sub-range within a shared GPU buffer.
type Range struct {
	Offset uint64
	Size   uint64
}

// End returns the exclusive end offset of the range.
func (r Range) End() uint64 {
	return r.Offset + r.Size
}

// freeList is a sorted, coalescing first-fit allocator over a fixed-capacity
// byte range. It never grows past capacity; callers that run out of space
// get an error and must either evict or fall back to a temporary buffer.
type freeList struct {
	capacity uint64
	free     []Range // sorted by Offset, never adjacent/overlapping
}

func newFreeList(capacity uint64) *freeList {
	return &freeList{
		capacity: capacity,
		free:     []Range{{Offset: 0, Size: capacity}},
	}
}

// alloc finds the first free range big enough for size, carving it out.
// Returns an error if no range is large enough.
func (f *freeList) alloc(size uint64) (Range, error) {
	if size == 0 {
		return Range{}, errEmptyAlloc
	}
	for i, r := range f.free {
		if r.Size >= size {
			allocated := Range{Offset: r.Offset, Size: size}
			remaining := Range{Offset: r.Offset + size, Size: r.Size - size}
			if remaining.Size == 0 {
				f.free = append(f.free[:i], f.free[i+1:]...)
			} else {
				f.free[i] = remaining
			}
			return allocated, nil
		}
	}
	return Range{}, errOutOfSpace
}

// release returns a range to the free list, coalescing with adjacent neighbors.
func (f *freeList) release(r Range) {
	if r.Size == 0 {
		return
	}
	f.free = append(f.free, r)
	sort.Slice(f.free, func(i, j int) bool { return f.free[i].Offset < f.free[j].Offset })

	merged := f.free[:0]
	for _, cur := range f.free {
		if len(merged) > 0 && merged[len(merged)-1].End() == cur.Offset {
			merged[len(merged)-1].Size += cur.Size
		} else {
			merged = append(merged, cur)
		}
	}
	f.free = merged
}

// largestFree returns the size in bytes of the largest single contiguous
// free range, used by callers deciding whether a defragmentation pass is
// worthwhile.
func (f *freeList) largestFree() uint64 {
	var max uint64
	for _, r := range f.free {
		if r.Size > max {
			max = r.Size
		}
	}
	return max
}
