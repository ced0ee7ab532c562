package pipeline

import "testing"

func TestCacheDedupsByConfigValue(t *testing.T) {
	c := NewCache()
	cfg := Config{VertexShaderKey: "v", FragmentShaderKey: "f", CullMode: 0}

	calls := 0
	build := func(cfg Config) (Pipeline, error) {
		calls++
		return New(KindRender, cfg), nil
	}

	p1, err := c.GetOrCreate(cfg, build)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	p2, err := c.GetOrCreate(cfg, build)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if p1 != p2 {
		t.Fatal("expected identical Config to return the same Pipeline instance")
	}
	if calls != 1 {
		t.Fatalf("build called %d times, want 1", calls)
	}
}

func TestCacheDistinguishesDifferingConfigs(t *testing.T) {
	c := NewCache()
	build := func(cfg Config) (Pipeline, error) { return New(KindRender, cfg), nil }

	a := Config{VertexShaderKey: "v1"}
	b := Config{VertexShaderKey: "v2"}

	pa, _ := c.GetOrCreate(a, build)
	pb, _ := c.GetOrCreate(b, build)
	if pa == pb {
		t.Fatal("expected different Configs to produce different Pipelines")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}
