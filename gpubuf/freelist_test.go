package gpubuf

import "testing"

func TestFreeListAllocCarvesFromFront(t *testing.T) {
	f := newFreeList(1024)
	r, err := f.alloc(256)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	if r.Offset != 0 || r.Size != 256 {
		t.Fatalf("got %+v, want offset 0 size 256", r)
	}
	if got := f.largestFree(); got != 768 {
		t.Fatalf("largestFree() = %d, want 768", got)
	}
}

func TestFreeListOutOfSpace(t *testing.T) {
	f := newFreeList(128)
	if _, err := f.alloc(256); err == nil {
		t.Fatal("expected error allocating more than capacity")
	}
}

func TestFreeListReleaseCoalesces(t *testing.T) {
	f := newFreeList(1024)
	a, _ := f.alloc(256)
	b, _ := f.alloc(256)
	_, _ = f.alloc(256)

	f.release(a)
	f.release(b)

	if got := f.largestFree(); got != 512 {
		t.Fatalf("largestFree() = %d, want 512 after coalescing adjacent releases", got)
	}
}

func TestFreeListZeroSizeAllocFails(t *testing.T) {
	f := newFreeList(64)
	if _, err := f.alloc(0); err == nil {
		t.Fatal("expected error allocating zero bytes")
	}
}
