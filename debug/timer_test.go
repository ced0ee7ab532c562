package debug

import "testing"

func TestBeginEndRecordsOneCall(t *testing.T) {
	tr := NewTree()
	tr.Begin("depth")
	tr.End("depth")

	spans := tr.Report()
	if len(spans) != 1 {
		t.Fatalf("len(Report()) = %d, want 1", len(spans))
	}
	if spans[0].Path != "depth" || spans[0].Calls != 1 {
		t.Fatalf("span = %+v, want path=depth calls=1", spans[0])
	}
}

func TestNestedBeginBuildsPath(t *testing.T) {
	tr := NewTree()
	tr.Begin("light")
	tr.Begin("shadow_cache")
	tr.End("shadow_cache")
	tr.End("light")

	spans := tr.Report()
	if len(spans) != 2 {
		t.Fatalf("len(Report()) = %d, want 2", len(spans))
	}
	if spans[0].Path != "light" {
		t.Fatalf("spans[0].Path = %q, want %q", spans[0].Path, "light")
	}
	if spans[1].Path != "light/shadow_cache" {
		t.Fatalf("spans[1].Path = %q, want %q", spans[1].Path, "light/shadow_cache")
	}
}

func TestMismatchedEndIsIgnored(t *testing.T) {
	tr := NewTree()
	tr.End("never_begun")
	if len(tr.Report()) != 0 {
		t.Fatal("expected an End with no matching Begin to record nothing")
	}
}

func TestResetClearsSpans(t *testing.T) {
	tr := NewTree()
	tr.Begin("depth")
	tr.End("depth")
	tr.Reset()
	if len(tr.Report()) != 0 {
		t.Fatal("expected Reset to clear recorded spans")
	}
}

func TestSlowestOrdersDescending(t *testing.T) {
	tr := NewTree()
	tr.Begin("a")
	tr.End("a")
	tr.Begin("b")
	tr.End("b")

	spans := tr.Slowest(1)
	if len(spans) != 1 {
		t.Fatalf("len(Slowest(1)) = %d, want 1", len(spans))
	}

	all := tr.Slowest(2)
	if len(all) != 2 || all[0].Duration < all[1].Duration {
		t.Fatalf("Slowest(2) = %+v, want 2 spans in descending duration order", all)
	}
}
