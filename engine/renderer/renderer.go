package renderer

import (
	"github.com/kestrelrender/kestrel/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API for the deferred-shading geometry pass and frame
// lifecycle: surface resize/present and G-buffer creation. Pipeline
// registration, bind-group binding, and draw submission live in the
// pipeline/rendertask/tuc packages, which talk to the backend's device and
// queue directly rather than through this interface.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// BeginFrame acquires the swapchain texture for this frame.
	// Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// EndFrame submits the frame's command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Capabilities reports the adapter-derived limits the rest of the
	// renderer (G-buffer sizing, occlusion pyramid layout, reflection
	// probe array capacity) must respect.
	Capabilities() Capabilities

	// CreateGBuffer creates the deferred-shading geometry buffer: albedo,
	// normal, and material render targets plus a depth target, sized to
	// width by height. Replaces any previously created G-buffer.
	//
	// Returns:
	//   - error: an error if any target texture could not be created
	CreateGBuffer(width, height int) error

	// GBuffer returns the most recently created geometry buffer, or nil if
	// CreateGBuffer has not been called yet.
	GBuffer() *GBuffer

	// BeginGBufferPass opens a render pass targeting the G-buffer's color
	// and depth attachments, clearing them. Must be paired with
	// EndGBufferPass. Requires a prior CreateGBuffer call.
	//
	// Returns:
	//   - *wgpu.RenderPassEncoder: the open geometry pass
	//   - error: an error if no G-buffer has been created
	BeginGBufferPass() (*wgpu.RenderPassEncoder, error)

	// EndGBufferPass ends the geometry pass opened by BeginGBufferPass.
	EndGBufferPass(pass *wgpu.RenderPassEncoder)

	// Device returns the underlying wgpu device, for callers that create
	// their own GPU resources (gpubuf pools, pipeline caches, tuc bind
	// groups) rather than going through this interface.
	Device() *wgpu.Device

	// Queue returns the underlying wgpu queue used for buffer/texture
	// uploads outside a render pass.
	Queue() *wgpu.Queue
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window.
// The surface descriptor is taken from window.SurfaceDescriptor() and the initial surface size from
// window.Width()/window.Height().
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window whose surface the renderer draws to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) CreateGBuffer(width, height int) error {
	return r.backend.CreateGBuffer(width, height)
}

func (r *renderer) GBuffer() *GBuffer {
	return r.backend.GBuffer()
}

func (r *renderer) BeginGBufferPass() (*wgpu.RenderPassEncoder, error) {
	return r.backend.BeginGBufferPass()
}

func (r *renderer) EndGBufferPass(pass *wgpu.RenderPassEncoder) {
	r.backend.EndGBufferPass(pass)
}

func (r *renderer) Device() *wgpu.Device {
	return r.backend.Device()
}

func (r *renderer) Queue() *wgpu.Queue {
	return r.backend.Queue()
}
