package config

import "testing"

func TestDefaultIsUsable(t *testing.T) {
	cfg := Default()
	if cfg.Shadow.SolidSize == 0 {
		t.Fatal("expected a non-zero default solid shadow size")
	}
	if cfg.Reflection.ProbeUpdatesPerFrame > cfg.Reflection.ProbeCount {
		t.Fatal("expected per-frame probe budget not to exceed the probe count")
	}
}

func TestParseOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := Parse([]byte(`
shadow:
  solid_size: 4096
debug:
  snapshot_enabled: true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Shadow.SolidSize != 4096 {
		t.Fatalf("got SolidSize %d, want 4096", cfg.Shadow.SolidSize)
	}
	if !cfg.Debug.SnapshotEnabled {
		t.Fatal("expected snapshot_enabled override to take effect")
	}

	// Fields the yaml doesn't mention keep Default's values.
	want := Default()
	if cfg.Shadow.TransparentSize != want.Shadow.TransparentSize {
		t.Fatalf("got TransparentSize %d, want default %d", cfg.Shadow.TransparentSize, want.Shadow.TransparentSize)
	}
	if cfg.Sky.CascadeCount != want.Sky.CascadeCount {
		t.Fatalf("got CascadeCount %d, want default %d", cfg.Sky.CascadeCount, want.Sky.CascadeCount)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.yaml"); err == nil {
		t.Fatal("expected an error loading a missing file")
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("shadow: [this is not a mapping")); err == nil {
		t.Fatal("expected an error parsing malformed yaml")
	}
}
