// Package scene implements the Collide List producer and RenderPlan
// producer: the scene-graph registry that holds draw objects and lights
// and, once per frame, emits the data plan.Orchestrator consumes. It
// generalizes engine/scene/scene.go's Add/registry/lights/ambient-color
// bookkeeping from a direct-draw scene (one Animator pool per Model,
// drawn immediately by DrawCalls) into one that hands a collidelist.List
// and a plan.Frame to the orchestrator instead of drawing anything itself.
package scene

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kestrelrender/kestrel/collidelist"
	"github.com/kestrelrender/kestrel/engine/camera"
	"github.com/kestrelrender/kestrel/engine/light"
	"github.com/kestrelrender/kestrel/engine/renderer"
	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/plan"
	"github.com/kestrelrender/kestrel/rendertask"
	"github.com/kestrelrender/kestrel/tuc"
)

// lightEntry adapts a light.Light into a rendertask.RenderObject so lights
// can be pooled through the same collidelist.List machinery geometry uses.
// It carries no mesh or per-instance parameter data of its own; the Light
// phase reads the wrapped Light back out via Light() and derives the
// pipeline configuration for the light-volume accumulation draw from it.
type lightEntry struct {
	light light.Light
}

// Light returns the wrapped light, the narrow accessor plan.LightTargetsFromList
// type-asserts for.
func (e lightEntry) Light() light.Light { return e.light }

func (e lightEntry) PipelineConfig() pipeline.Config { return pipeline.Config{} }
func (e lightEntry) TUCConfig() tuc.Config            { return tuc.Config{} }
func (e lightEntry) Mesh() (vertex, index gpubuf.Range, indexCount uint32) {
	return gpubuf.Range{}, gpubuf.Range{}, 0
}
func (e lightEntry) ParamRange() gpubuf.Range { return gpubuf.Range{} }
func (e lightEntry) IsSolid() bool            { return true }
func (e lightEntry) IsOutline() bool          { return false }
func (e lightEntry) IsDecal() bool            { return false }
func (e lightEntry) CastsNoShadow() bool      { return !e.light.CastsShadows() }

// Object is anything Scene can register: a render-task leaf (pipeline,
// TUC, mesh, per-instance params) with stable scene-graph identity.
// game_object.GameObject satisfies this once it also implements
// rendertask.RenderObject, which is how the teacher's per-object draw data
// now reaches the Render Task tree instead of an Animator instance slot.
type Object interface {
	rendertask.RenderObject
	ID() uint64
	SetID(uint64)
}

// Scene holds the registry of persistent draw objects and lights for one
// view of the world. Rendering happens by calling CollideList then
// RenderPlan once per frame and handing the result to plan.Orchestrator;
// Scene itself never issues a draw call.
type Scene struct {
	mu sync.RWMutex

	name     string
	active   bool
	cam      camera.Camera
	rnd      renderer.Renderer
	viewport [2]uint32

	nextID   uint64
	registry map[uint64]Object

	lights  []light.Light
	ambient [3]float32

	layerMask  uint32
	cullingOff bool
}

// New creates an empty Scene named name, viewed through cam.
func New(name string, cam camera.Camera) *Scene {
	return &Scene{
		name:      name,
		cam:       cam,
		registry:  make(map[uint64]Object),
		layerMask: 0xFFFFFFFF,
	}
}

// Name returns the scene's identifier.
func (s *Scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Active reports whether the scene should be traversed this frame.
func (s *Scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActive sets whether the scene should be traversed this frame.
func (s *Scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

// Camera returns the scene's camera.
func (s *Scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

// Renderer returns the scene's renderer, or nil if none has been attached.
func (s *Scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rnd
}

// SetRenderer attaches the renderer this scene's frames are encoded
// against, the way engine.go's frame loop looks up one renderer per
// active scene to bracket with BeginFrame/EndFrame/Present.
func (s *Scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd = r
}

// Viewport returns the pixel dimensions new RenderPlan frames carry.
func (s *Scene) Viewport() [2]uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// SetViewport sets the pixel dimensions new RenderPlan frames carry,
// kept in sync with the renderer's surface size by the window resize
// callback.
func (s *Scene) SetViewport(width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = [2]uint32{width, height}
}

// SetCullingDisabled records a debug flag for disabling culling. Nothing
// reads the flag: CollideList includes every registered object either way,
// and the Occlusion phase does not consult it.
func (s *Scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingOff = disabled
}

// SetLayerMask sets the layer mask new RenderPlan frames carry.
func (s *Scene) SetLayerMask(mask uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layerMask = mask
}

// AmbientColor returns the scene's fixed ambient term.
func (s *Scene) AmbientColor() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambient
}

// SetAmbientColor sets the scene's fixed ambient term.
func (s *Scene) SetAmbientColor(color [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = color
}

// AddLight registers l with the scene so it is included in each frame's
// Light phase targets.
func (s *Scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

// RemoveLight unregisters l, if present.
func (s *Scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

// Lights returns the scene's registered lights.
func (s *Scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

// Add registers obj, assigning it an ID via an atomic counter the first
// time it is added (mirroring scene.go's Add), and returns that ID.
func (s *Scene) Add(obj Object) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if obj.ID() == 0 {
		obj.SetID(atomic.AddUint64(&s.nextID, 1))
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

// Get returns the registered object with id, or nil if none exists.
func (s *Scene) Get(id uint64) Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

// Remove unregisters the object with id.
func (s *Scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

// Count returns the number of registered objects.
func (s *Scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

// CollideList checks out a collidelist.List from pool and populates it
// with every registered object, per-entry visibility data left at its
// zero value (not occluded, no cube-face restriction) for the Occlusion
// phase to fill in. The result is the same whether or not culling is
// disabled.
func (s *Scene) CollideList(pool *collidelist.Pool) *collidelist.List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := pool.Get()
	for _, obj := range s.registry {
		list.Add(collidelist.Entry{Object: obj})
	}
	return list
}

// LightCollideList checks out a collidelist.List from pool and populates it
// with every registered light, wrapped so it satisfies rendertask.RenderObject.
// Each entry's CameraInside is computed once per light per frame here, from a
// point-in-volume test (light.Light.VolumeContains) against the eye position,
// not re-evaluated per pixel in the Light phase's accumulation draw.
func (s *Scene) LightCollideList(pool *collidelist.Pool) *collidelist.List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := pool.Get()

	var camX, camY, camZ float32
	if s.cam != nil {
		if ctrl := s.cam.Controller(); ctrl != nil {
			camX, camY, camZ = ctrl.Position()
		}
	}

	for _, l := range s.lights {
		list.Add(collidelist.Entry{
			Object:       lightEntry{light: l},
			CameraInside: l.VolumeContains(camX, camY, camZ),
		})
	}
	return list
}

// RenderPlan assembles this frame's plan.Frame: the immutable camera and
// viewport state plus the draw and light collide lists already produced by
// CollideList and LightCollideList. Returns an error if the scene has no
// camera attached, since every downstream phase needs view/projection
// matrices.
func (s *Scene) RenderPlan(viewport [2]uint32, collideList *collidelist.List, lightList *collidelist.List) (*plan.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cam == nil {
		return nil, fmt.Errorf("scene: RenderPlan requires a Camera")
	}

	return &plan.Frame{
		Viewport:    viewport,
		ViewMatrix:  s.cam.ViewMatrix(),
		ProjMatrix:  s.cam.ProjectionMatrix(),
		LayerMask:   s.layerMask,
		CollideList: collideList,
		LightList:   lightList,
	}, nil
}
