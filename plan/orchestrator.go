// Package plan implements the Plan Orchestrator: the per-frame top-level
// sequencer that walks the Collide List through Depth, Occlusion, Light,
// Reflection, Transparent, and GI phases in a fixed order. It generalizes
// engine/engine.go's handleRender loop, which called a fixed list of
// scene methods under hand-written "Phase N" comments, into a named,
// inspectable list of Phase values any caller can register, time, and
// run — the light renderer, reflection pipeline, and occlusion pass all
// compose here because a frame needs them sequenced together, not because
// any one of them depends on the others' packages.
package plan

import (
	"errors"
	"fmt"

	"github.com/kestrelrender/kestrel/collidelist"
)

// Timer receives phase start/stop notifications, letting a caller feed
// per-phase timings into a profiler without RunFrame needing to import one.
// debug.Tree satisfies this interface.
type Timer interface {
	Begin(name string)
	End(name string)
}

type noopTimer struct{}

func (noopTimer) Begin(string) {}
func (noopTimer) End(string)   {}

// Frame is the per-frame render plan data every Phase reads from and
// writes to: camera/projection state, the visible-object collide list, and
// the lighting options a caller can force off for a given frame.
type Frame struct {
	Viewport     [2]uint32
	ViewMatrix   [16]float32
	ProjMatrix   [16]float32
	InfiniteProj bool
	LayerMask    uint32
	FlipCulling  bool

	CollideList *collidelist.List
	LightList   *collidelist.List

	NoReflections bool
	NoAmbient     bool
}

// Phase is one named step of the frame sequence.
type Phase struct {
	Name string
	Run  func(*Frame) error
}

// Orchestrator runs a fixed-order sequence of Phases over one Frame.
type Orchestrator struct {
	phases []Phase
	timer  Timer
}

// NewOrchestrator creates an Orchestrator with no phases registered yet. A
// nil timer is replaced with a no-op so RunFrame never needs a nil check.
func NewOrchestrator(timer Timer) *Orchestrator {
	if timer == nil {
		timer = noopTimer{}
	}
	return &Orchestrator{timer: timer}
}

// Use appends phase to the run sequence. Callers register phases in Depth,
// Occlusion, Light, Reflection, Transparent, GI order; Orchestrator itself
// does not enforce an order, since a caller assembling a depth-only pass
// (e.g. a shadow map render) legitimately wants a subset.
func (o *Orchestrator) Use(phase Phase) {
	o.phases = append(o.phases, phase)
}

// Phases returns the registered phase names in run order, for debug display.
func (o *Orchestrator) Phases() []string {
	names := make([]string, len(o.phases))
	for i, p := range o.phases {
		names[i] = p.Name
	}
	return names
}

// RunFrame executes every registered phase against frame in registration
// order. A phase that errors is recorded but does not stop later phases
// from running — the engine loop this generalizes from continued to the
// next phase even when BeginComputeFrame failed, so a shadow-map hiccup
// does not also take down the transparent pass.
func (o *Orchestrator) RunFrame(frame *Frame) error {
	var errs []error
	for _, p := range o.phases {
		o.timer.Begin(p.Name)
		if err := p.Run(frame); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
		}
		o.timer.End(p.Name)
	}
	return errors.Join(errs...)
}
