// Package config loads the render plan's file-based tuning knobs: shadow
// tier sizes, the occlusion pyramid's array-texture preference, reflection
// slot/probe budgets, sky cascade setup, and the debug-snapshot toggle.
// Everything else in the render path stays functional-options-over-builder
// (EngineBuilderOption, WindowBuilderOption); this is
// the one layer that reads from a file instead, grounded on gazed-vu's
// load.Shd yaml-unmarshal-into-a-tagged-struct convention.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kestrelrender/kestrel/engine/light"
)

// ShadowConfig sizes the three shadow tiers a shadowcache.Caster manages
// for every light. Fields absent from the file keep Default's values.
type ShadowConfig struct {
	// SolidSize/TransparentSize/AmbientSize are the per-tier map resolution
	// in texels, passed to shadowcache map creation the way
	// engine/light/shadow.go's ShadowMapResolution sizes a single
	// directional map today.
	SolidSize       uint32 `yaml:"solid_size"`
	TransparentSize uint32 `yaml:"transparent_size"`
	AmbientSize     uint32 `yaml:"ambient_size"`

	// TempPoolMapsPerSize caps how many temporary maps shadowcache.TempPool
	// keeps per distinct size before releasing the least recently returned.
	TempPoolMapsPerSize int `yaml:"temp_pool_maps_per_size"`
}

// OcclusionConfig controls the occlusion pyramid's capability preference.
type OcclusionConfig struct {
	// PreferArrayTextures requests occlusion.LayoutPackedMinMax when the
	// device supports it; false forces occlusion.LayoutSeparateMinMax even
	// on capable hardware, useful for debugging the separate-texture path
	// without faking a capability flag.
	PreferArrayTextures bool `yaml:"prefer_array_textures"`
}

// ReflectionConfig sizes the environment-map slot manager and the GI probe
// update scheduler.
type ReflectionConfig struct {
	// EnvMapSlotCapacity is the fixed number of texture-array layers
	// reflection.NewSlotManager reserves for environment maps.
	EnvMapSlotCapacity int `yaml:"envmap_slot_capacity"`

	// ProbeCount/ProbeUpdatesPerFrame feed reflection.NewProbeScheduler:
	// the total number of GI probes in the scene and how many of them get
	// refreshed each frame via round-robin.
	ProbeCount          int `yaml:"probe_count"`
	ProbeUpdatesPerFrame int `yaml:"probe_updates_per_frame"`
}

// SkyConfig sizes the cascaded sky/sun shadow renderer.
type SkyConfig struct {
	// CascadeResolution is the width and height, in texels, of each
	// cascade's orthographic depth map.
	CascadeResolution uint32 `yaml:"cascade_resolution"`
	// CascadeCount is the number of frustum splits sky.NewRenderer produces.
	CascadeCount int `yaml:"cascade_count"`
}

// DebugConfig toggles the debug subsystem's optional work.
type DebugConfig struct {
	// SnapshotEnabled turns on named-texture-to-PNG dumps (debug.Snapshot);
	// left off by default since it reads back GPU textures every time it
	// fires.
	SnapshotEnabled bool `yaml:"snapshot_enabled"`
	// CountersEnabled turns on debug.Tree's per-phase timing counters.
	CountersEnabled bool `yaml:"counters_enabled"`
}

// RenderConfig is the top-level shape of a render.yaml file.
type RenderConfig struct {
	Shadow     ShadowConfig     `yaml:"shadow"`
	Occlusion  OcclusionConfig  `yaml:"occlusion"`
	Reflection ReflectionConfig `yaml:"reflection"`
	Sky        SkyConfig        `yaml:"sky"`
	Debug      DebugConfig      `yaml:"debug"`
}

// Default returns the configuration used when no render.yaml is present or
// a loaded file omits a section, so every field below this point is always
// a usable value rather than a zero that callers must special-case.
func Default() *RenderConfig {
	return &RenderConfig{
		Shadow: ShadowConfig{
			SolidSize:           light.ShadowMapResolution,
			TransparentSize:     light.ShadowMapResolution,
			AmbientSize:         light.ShadowMapResolution / 2,
			TempPoolMapsPerSize: 4,
		},
		Occlusion: OcclusionConfig{
			PreferArrayTextures: true,
		},
		Reflection: ReflectionConfig{
			EnvMapSlotCapacity:   16,
			ProbeCount:           64,
			ProbeUpdatesPerFrame: 4,
		},
		Sky: SkyConfig{
			CascadeResolution: 2048,
			CascadeCount:      4,
		},
		Debug: DebugConfig{
			SnapshotEnabled: false,
			CountersEnabled: true,
		},
	}
}

// Load reads and parses a render.yaml file at path. Fields absent from the
// file keep Default's values, since RenderConfig is seeded from Default
// before unmarshaling over it rather than yaml.Unmarshal into a zero value.
func Load(path string) (*RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals raw yaml bytes into a RenderConfig seeded from Default.
func Parse(data []byte) (*RenderConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: yaml: %w", err)
	}
	return cfg, nil
}
