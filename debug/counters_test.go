package debug

import "testing"

func TestIncrementAccumulates(t *testing.T) {
	c := NewCounters()
	c.Increment("rendered.objects", 3)
	c.Increment("rendered.objects", 2)
	if got := c.Int("rendered.objects"); got != 5 {
		t.Fatalf("Int() = %d, want 5", got)
	}
}

func TestSetFloatReplaces(t *testing.T) {
	c := NewCounters()
	c.SetFloat("occlusion.render_time_ms", 1.5)
	c.SetFloat("occlusion.render_time_ms", 2.5)
	if got := c.Float("occlusion.render_time_ms"); got != 2.5 {
		t.Fatalf("Float() = %v, want 2.5", got)
	}
}

func TestResetClearsAllCounters(t *testing.T) {
	c := NewCounters()
	c.Increment("a", 1)
	c.SetFloat("b", 1.0)
	c.Reset()
	if c.Int("a") != 0 || c.Float("b") != 0 {
		t.Fatal("expected Reset to clear both counter maps")
	}
}

func TestSnapshotReturnsIndependentCopy(t *testing.T) {
	c := NewCounters()
	c.Increment("a", 1)
	ints, _ := c.Snapshot()
	ints["a"] = 99
	if c.Int("a") != 1 {
		t.Fatal("mutating the Snapshot result should not affect the live counters")
	}
}
