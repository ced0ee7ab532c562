package reflection

import "testing"

func TestSlotManagerAssignsDistinctSlots(t *testing.T) {
	m := NewSlotManager(2)
	s1, _, reclaimed1, err := m.Acquire(1)
	if err != nil {
		t.Fatal(err)
	}
	s2, _, reclaimed2, err := m.Acquire(2)
	if err != nil {
		t.Fatal(err)
	}
	if s1 == s2 {
		t.Fatalf("expected distinct slots, got %d and %d", s1, s2)
	}
	if reclaimed1 || reclaimed2 {
		t.Fatal("expected no reclaim while slots are free")
	}
}

func TestSlotManagerReusesOwnerSlot(t *testing.T) {
	m := NewSlotManager(2)
	s1, _, _, _ := m.Acquire(1)
	s1Again, _, reclaimed, _ := m.Acquire(1)
	if s1 != s1Again {
		t.Fatalf("expected same slot on repeat Acquire, got %d then %d", s1, s1Again)
	}
	if reclaimed {
		t.Fatal("expected no reclaim for an owner's own slot")
	}
}

func TestSlotManagerReclaimsLeastRecentlyUsed(t *testing.T) {
	m := NewSlotManager(2)
	m.Acquire(1)
	m.Acquire(2)
	// owner 1 is now least-recently-used; acquiring for a new owner should evict it.
	_, reclaimedOwner, reclaimed, err := m.Acquire(3)
	if err != nil {
		t.Fatal(err)
	}
	if !reclaimed || reclaimedOwner != 1 {
		t.Fatalf("expected owner 1 reclaimed, got owner=%d reclaimed=%v", reclaimedOwner, reclaimed)
	}
}

func TestSlotManagerTouchProtectsFromEviction(t *testing.T) {
	m := NewSlotManager(2)
	m.Acquire(1)
	m.Acquire(2)
	m.Touch(1) // now owner 2 is least-recently-used
	_, reclaimedOwner, reclaimed, _ := m.Acquire(3)
	if !reclaimed || reclaimedOwner != 2 {
		t.Fatalf("expected owner 2 reclaimed after Touch(1), got owner=%d reclaimed=%v", reclaimedOwner, reclaimed)
	}
}

func TestSlotManagerReleaseFreesSlotFirst(t *testing.T) {
	m := NewSlotManager(2)
	m.Acquire(1)
	m.Acquire(2)
	m.Release(1)
	_, reclaimedOwner, reclaimed, _ := m.Acquire(3)
	if reclaimed {
		t.Fatalf("expected released slot reused without reclaiming owner %d", reclaimedOwner)
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
}

func TestSlotManagerZeroCapacityErrors(t *testing.T) {
	m := NewSlotManager(0)
	if _, _, _, err := m.Acquire(1); err == nil {
		t.Fatal("expected error for zero-capacity slot manager")
	}
}
