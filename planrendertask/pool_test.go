package planrendertask

import "testing"

func TestPoolAcquireGrowsAndReuses(t *testing.T) {
	p := NewPool[int]()
	a := p.Acquire()
	b := p.Acquire()
	if p.Cap() != 2 || p.Len() != 2 {
		t.Fatalf("Cap/Len = %d/%d, want 2/2", p.Cap(), p.Len())
	}
	p.Release(a)
	if p.Len() != 1 {
		t.Fatalf("Len after release = %d, want 1", p.Len())
	}
	c := p.Acquire()
	if p.Cap() != 2 {
		t.Fatalf("expected released slot reused, Cap = %d, want 2", p.Cap())
	}
	if c.index != a.index {
		t.Fatalf("expected first-fit reuse of released index %d, got %d", a.index, c.index)
	}
	_ = b
}

func TestPoolStaleHandleAfterRelease(t *testing.T) {
	p := NewPool[string]()
	h := p.Acquire()
	p.Set(h, "hello")
	p.Release(h)

	if p.Valid(h) {
		t.Fatal("expected handle to be invalid after release")
	}
	if _, ok := p.Get(h); ok {
		t.Fatal("expected Get to fail for stale handle")
	}

	h2 := p.Acquire()
	if h2.generation == h.generation {
		t.Fatal("expected reused slot to bump generation")
	}
	if p.Valid(h) {
		t.Fatal("old handle must stay invalid even after its slot is reacquired")
	}
}

func TestPoolSetFailsForStaleHandle(t *testing.T) {
	p := NewPool[int]()
	h := p.Acquire()
	p.Release(h)
	if p.Set(h, 5) {
		t.Fatal("expected Set to fail for released handle")
	}
}
