package pipeline

import "sync"

// Factory builds the GPU-side pipeline for a Config the cache has not seen
// before. It is supplied by the renderer, which owns the wgpu device and
// shader registry; the cache itself never touches wgpu directly.
type Factory func(Config) (Pipeline, error)

// Cache is the Pipeline Cache: a map from Config to the realized Pipeline,
// so that two render-task leaves requesting identical rasterization state
// and shaders share one wgpu pipeline object.
type Cache struct {
	mu      sync.Mutex
	entries map[Config]Pipeline
}

// NewCache creates an empty Pipeline Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Config]Pipeline)}
}

// GetOrCreate returns the cached Pipeline for cfg, building it with build
// on first request.
//
// Parameters:
//   - cfg: the pipeline configuration to look up
//   - build: called to construct the pipeline on a cache miss
//
// Returns:
//   - Pipeline: the cached or newly built pipeline
//   - error: non-nil if build fails
func (c *Cache) GetOrCreate(cfg Config, build Factory) (Pipeline, error) {
	c.mu.Lock()
	if p, ok := c.entries[cfg]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	p, err := build(cfg)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[cfg]; ok {
		return existing, nil
	}
	c.entries[cfg] = p
	return p, nil
}

// Len returns the number of distinct pipelines currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Each calls fn for every cached Config/Pipeline pair, in no particular order.
func (c *Cache) Each(fn func(Config, Pipeline)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for cfg, p := range c.entries {
		fn(cfg, p)
	}
}
