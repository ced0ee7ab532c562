package reflection

import "testing"

func TestProbeSchedulerRoundRobins(t *testing.T) {
	s := NewProbeScheduler(6, 2)
	first := s.Next()
	second := s.Next()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 probes per call, got %d and %d", len(first), len(second))
	}
	overlap := map[int]bool{}
	for _, p := range first {
		overlap[p] = true
	}
	for _, p := range second {
		if overlap[p] {
			t.Fatalf("expected round-robin to avoid repeating probe %d so soon", p)
		}
	}
}

func TestProbeSchedulerPrioritizesDirty(t *testing.T) {
	s := NewProbeScheduler(6, 2)
	s.MarkDirty(4)
	next := s.Next()
	found := false
	for _, p := range next {
		if p == 4 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected dirty probe 4 in %v", next)
	}
}

func TestProbeSchedulerHandlesZeroProbes(t *testing.T) {
	s := NewProbeScheduler(0, 2)
	if next := s.Next(); next != nil {
		t.Fatalf("expected nil for zero probes, got %v", next)
	}
}
