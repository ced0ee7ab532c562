package collidelist

import "testing"

func TestListVisibleObjectsSkipsOccluded(t *testing.T) {
	l := &List{}
	l.Add(Entry{Object: nil, OcclusionHidden: false})
	l.Add(Entry{Object: nil, OcclusionHidden: true})

	if len(l.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(l.Entries))
	}
	visible := 0
	for _, e := range l.Entries {
		if e.Visible() {
			visible++
		}
	}
	if visible != 1 {
		t.Fatalf("visible count = %d, want 1", visible)
	}
}

func TestPoolRecyclesAndResets(t *testing.T) {
	p := NewPool()
	l := p.Get()
	l.Add(Entry{})
	p.Put(l)

	l2 := p.Get()
	if len(l2.Entries) != 0 {
		t.Fatalf("recycled list should be empty, got %d entries", len(l2.Entries))
	}
}
