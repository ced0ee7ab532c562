package engine

import (
	"time"

	"github.com/kestrelrender/kestrel/engine/window"
	"github.com/kestrelrender/kestrel/plan"
	"github.com/kestrelrender/kestrel/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// The tick callback will be called at this rate for game logic updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// Scenes are rendered in ascending key order during the render loop.
//
// Parameters:
//   - key: the z-index determining render order (lower renders first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s *scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithOrchestrator sets the Plan Orchestrator each active scene's frame
// runs through. Construct it with plan.NewOrchestrator and register phases
// via Use before passing it here — engine.go only calls RunFrame, it never
// assembles phases itself, since which phases a renderer supports (does it
// have a G-buffer, a shadow cache, reflection probes) is backend-specific.
//
// Parameters:
//   - o: the configured Orchestrator
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithOrchestrator(o *plan.Orchestrator) EngineBuilderOption {
	return func(e *engine) {
		e.orchestrator = o
	}
}

// WithCompositeCallback sets the function that performs the final
// screen-space composite for a scene, called inside that scene's
// renderer's BeginFrame/EndFrame bracket after the frame's orchestrator
// phases have run. Typically issues one full-screen DrawCall against a
// lighting-resolve pipeline reading the G-buffer and shadow/reflection
// results the orchestrator just produced.
//
// Parameters:
//   - callback: function invoked per active scene, per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCompositeCallback(callback func(s *scene.Scene, deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.compositeCallback = callback
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
