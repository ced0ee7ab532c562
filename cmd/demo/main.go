// Command demo brings up a window, a WebGPU renderer, and a scene with a
// handful of static props driven entirely through the Render Task / Plan
// Orchestrator path: a shared gpubuf.Pool backs every mesh and per-instance
// transform, a pipeline.Cache/tuc.Cache pair resolve the Depth phase's
// draws, and engine.Engine's render loop drives it all through
// plan.Orchestrator once per frame.
package main

import (
	"fmt"
	"log"
	"math"

	"github.com/kestrelrender/kestrel/common"
	"github.com/kestrelrender/kestrel/config"
	"github.com/kestrelrender/kestrel/debug"
	"github.com/kestrelrender/kestrel/engine"
	"github.com/kestrelrender/kestrel/engine/camera"
	"github.com/kestrelrender/kestrel/engine/light"
	"github.com/kestrelrender/kestrel/engine/renderer"
	"github.com/kestrelrender/kestrel/engine/renderer/shader"
	"github.com/kestrelrender/kestrel/engine/window"
	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/plan"
	"github.com/kestrelrender/kestrel/rendertask"
	"github.com/kestrelrender/kestrel/scene"
	"github.com/kestrelrender/kestrel/shapes"
	"github.com/kestrelrender/kestrel/tuc"

	"github.com/cogentcore/webgpu/wgpu"
)

const (
	vertexShaderKey   = "demo_gbuffer_vert"
	fragmentShaderKey = "demo_gbuffer_frag"

	paramCapacity = 1 * 1024 * 1024
)

func main() {
	renderCfg, err := config.Load("configs/render.yaml")
	if err != nil {
		log.Printf("demo: %v, using defaults", err)
		renderCfg = config.Default()
	}

	var timer plan.Timer
	if renderCfg.Debug.CountersEnabled {
		timer = debug.NewTree()
	}

	demoWindow := window.NewWindow(
		window.WithTitle("Kestrel Render - Depth Phase Demo"),
		window.WithWidth(1600),
		window.WithHeight(900),
	)

	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		demoWindow,
		renderer.WithPresentMode(renderer.PresentModeUncapped),
	)

	if err := r.CreateGBuffer(demoWindow.Width(), demoWindow.Height()); err != nil {
		log.Fatalf("demo: creating G-buffer: %v", err)
	}

	cam := camera.NewCamera(
		camera.WithFov(float32(45.0*math.Pi/180.0)),
		camera.WithAspect(float32(demoWindow.Width())/float32(demoWindow.Height())),
		camera.WithNear(0.1),
		camera.WithFar(1000),
		camera.WithController(camera.NewCameraController(
			camera.WithRadius(12),
			camera.WithTarget(0, 0, 0),
			camera.WithElevation(0.3),
			camera.WithAzimuth(0.5),
			camera.WithPanSpeed(1.0),
			camera.WithRadiusBounds(2, 200),
			camera.WithZoomSpeed(4.0),
			camera.WithMouseSensitivity(0.002),
		)),
	)

	pool := gpubuf.NewPool(
		gpubuf.WithVertexCapacity(4*1024*1024),
		gpubuf.WithIndexCapacity(1*1024*1024),
		gpubuf.WithParamCapacity(paramCapacity),
	)
	if err := pool.Init(r.Device()); err != nil {
		log.Fatalf("demo: initializing buffer pool: %v", err)
	}

	vertexShader := shader.NewShader(vertexShaderKey, shader.ShaderTypeVertex, "cmd/demo/assets/shaders/gbuffer_vert.wgsl")
	fragmentShader := shader.NewShader(fragmentShaderKey, shader.ShaderTypeFragment, "cmd/demo/assets/shaders/gbuffer_frag.wgsl")

	sceneGroupLayout, err := r.Device().CreateBindGroupLayout(descriptorOrPanic(vertexShader))
	if err != nil {
		log.Fatalf("demo: creating bind group layout: %v", err)
	}

	cameraBuffer, err := r.Device().CreateBuffer(&wgpu.BufferDescriptor{
		Label: "demo.camera_uniform",
		Size:  80,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		log.Fatalf("demo: creating camera uniform buffer: %v", err)
	}

	sharedTUC := tuc.Config{Slots: []tuc.Slot{
		{Binding: 0, Buffer: cameraBuffer, BufferSize: 80},
		{Binding: 1, Buffer: pool.ParamBuffer(), BufferSize: paramCapacity},
	}}

	tucCache := tuc.NewCache(r.Device(), sceneGroupLayout)
	pipelineCache := pipeline.NewCache()

	gbufferPipelineConfig := pipeline.Config{
		VertexShaderKey:   vertexShaderKey,
		FragmentShaderKey: fragmentShaderKey,
		DepthTestEnabled:  true,
		DepthWriteEnabled: true,
		CullMode:          wgpu.CullModeBack,
		Topology:          wgpu.PrimitiveTopologyTriangleList,
		FrontFace:         wgpu.FrontFaceCCW,
		WriteMask:         wgpu.ColorWriteMaskAll,
	}

	pipelineResolver := func(cfg pipeline.Config) (pipeline.Pipeline, error) {
		return pipelineCache.GetOrCreate(cfg, func(cfg pipeline.Config) (pipeline.Pipeline, error) {
			return buildGBufferPipeline(r.Device(), sceneGroupLayout, cfg, vertexShader, fragmentShader)
		})
	}
	bindGroupResolver := func(cfg tuc.Config) (*wgpu.BindGroup, error) {
		return tucCache.Acquire(cfg)
	}

	executor := rendertask.NewExecutor(pool, pipelineResolver, bindGroupResolver)

	treeForFrame := func(f *plan.Frame) *rendertask.Tree {
		tree := rendertask.NewTree()
		rendertask.AddToRenderTask(tree, f.CollideList.VisibleObjects(), rendertask.AddOptions{SolidOnly: true})
		return tree
	}

	orchestrator := plan.NewOrchestrator(timer)
	orchestrator.Use(plan.NewDepthPhase(renderer.GBufferPassSource{Renderer: r}, executor, treeForFrame))

	eng := engine.NewEngine(
		engine.WithProfiling(true),
		engine.WithTickRate(60),
		engine.WithWindow(demoWindow),
		engine.WithOrchestrator(orchestrator),
	)

	sc := scene.New("demo", cam)
	sc.SetRenderer(r)
	sc.SetViewport(uint32(demoWindow.Width()), uint32(demoWindow.Height()))
	sc.SetActive(true)
	sc.SetAmbientColor([3]float32{0.05, 0.05, 0.08})
	sc.AddLight(light.NewLight(light.LightTypeDirectional,
		light.WithDirection(-0.4, -1, -0.3),
		light.WithColor(1, 0.96, 0.9),
		light.WithIntensity(3.0),
		light.WithCastsShadows(false),
	))

	boxGen := shapes.Box()
	positions := [][3]float32{{-3, 0, 0}, {0, 0, 0}, {3, 0, 0}}
	for i, p := range positions {
		mesh, err := shapes.Upload(fmt.Sprintf("box_%d", i), boxGen, pool, r.Queue())
		if err != nil {
			log.Fatalf("demo: uploading box mesh: %v", err)
		}

		paramRange, err := pool.AllocateParamRange(64)
		if err != nil {
			log.Fatalf("demo: allocating param range: %v", err)
		}

		obj := &staticMesh{
			mesh:       mesh,
			pipeline:   gbufferPipelineConfig,
			tuc:        sharedTUC,
			paramRange: paramRange,
			pool:       pool,
			queue:      r.Queue(),
			x:          p[0], y: p[1], z: p[2],
		}
		obj.writeTransform(translationMatrix(p[0], p[1], p[2]))
		sc.Add(obj)
	}

	eng.AddScene(0, sc)

	applyInput := setupInput(eng, cam)
	eng.SetTickCallback(func(dt float32) {
		applyInput()
		cam.Update()
		uniform := camera.GPUCameraUniform{ViewProj: cam.ViewProjectionMatrix()}
		uniform.CameraPosition[0], uniform.CameraPosition[1], uniform.CameraPosition[2] = cam.Controller().Position()
		r.Queue().WriteBuffer(cameraBuffer, 0, uniform.Marshal())
	})

	log.Println("Starting Kestrel Render demo")
	eng.Run()
}

// descriptorOrPanic returns the vertex shader's group-0 bind group layout
// descriptor. Panics if the shader declares none, since the Depth phase
// cannot draw without a camera/instance binding.
func descriptorOrPanic(vertexShader shader.Shader) *wgpu.BindGroupLayoutDescriptor {
	desc, ok := vertexShader.BindGroupLayoutDescriptors()[0]
	if !ok {
		panic("demo: vertex shader declares no group(0) bindings")
	}
	return &desc
}

// buildGBufferPipeline creates the wgpu render pipeline for the Depth
// phase's G-buffer pass: three color targets matching renderer.GBuffer's
// formats plus a Depth32Float target, sample count 1 (the G-buffer itself
// is never multisampled, unlike the swapchain's forward pass).
func buildGBufferPipeline(device *wgpu.Device, groupLayout *wgpu.BindGroupLayout, cfg pipeline.Config, vertexShader, fragmentShader shader.Shader) (pipeline.Pipeline, error) {
	vs, err := device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return nil, fmt.Errorf("demo: vertex shader module: %w", err)
	}
	fs, err := device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return nil, fmt.Errorf("demo: fragment shader module: %w", err)
	}

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "demo.gbuffer_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{groupLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("demo: pipeline layout: %w", err)
	}

	vertexLayouts := make([]wgpu.VertexBufferLayout, 0, len(vertexShader.VertexLayouts()))
	for i := 0; i < len(vertexShader.VertexLayouts()); i++ {
		vertexLayouts = append(vertexLayouts, vertexShader.VertexLayout(i)...)
	}

	colorTarget := func(format wgpu.TextureFormat) wgpu.ColorTargetState {
		return wgpu.ColorTargetState{Format: format, WriteMask: cfg.WriteMask}
	}

	renderPipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "demo.gbuffer_pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				colorTarget(wgpu.TextureFormatRGBA8Unorm),
				colorTarget(wgpu.TextureFormatRGBA16Float),
				colorTarget(wgpu.TextureFormatRGBA8Unorm),
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  cfg.Topology,
			FrontFace: cfg.FrontFace,
			CullMode:  cfg.CullMode,
		},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: cfg.DepthWriteEnabled,
			DepthCompare:      wgpu.CompareFunctionLess,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("demo: creating render pipeline: %w", err)
	}

	p := pipeline.New(pipeline.KindRender, cfg,
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(fragmentShader),
	)
	p.SetRenderPipeline(renderPipeline)
	return p, nil
}

// translationMatrix returns a column-major 4x4 matrix translating by x,y,z.
func translationMatrix(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// setupInput wires camera controls: WASD/QE planar movement, middle-mouse
// orbit, and scroll zoom, mirroring the teacher's scene-test input wiring.
// Returns the per-tick movement function the caller folds into its own
// tick callback, since Engine only holds one tick callback at a time.
func setupInput(eng engine.Engine, cam camera.Camera) func() {
	keyState := make(map[uint32]bool)

	eng.Window().SetKeyDownCallback(func(keyCode uint32) { keyState[keyCode] = true })
	eng.Window().SetKeyUpCallback(func(keyCode uint32) { keyState[keyCode] = false })

	var dragging bool
	var lastX, lastY int32

	eng.Window().SetMiddleMouseDownCallback(func(x, y int32) {
		dragging = true
		lastX, lastY = x, y
	})
	eng.Window().SetMiddleMouseUpCallback(func(_, _ int32) { dragging = false })
	eng.Window().SetMouseMoveCallback(func(x, y int32) {
		if !dragging {
			return
		}
		dx := float32(x - lastX)
		dy := float32(y - lastY)
		cam.Controller().SetAzimuth(cam.Controller().Azimuth() + dx*cam.Controller().MouseSensitivity())
		cam.Controller().SetElevation(cam.Controller().Elevation() - dy*cam.Controller().MouseSensitivity())
		lastX, lastY = x, y
	})
	eng.Window().SetScrollCallback(func(delta float32) {
		cam.Controller().Zoom(delta)
	})

	return func() {
		if keyState[common.KeyW] {
			cam.Controller().PanForward(1)
		}
		if keyState[common.KeyS] {
			cam.Controller().PanForward(-1)
		}
		if keyState[common.KeyA] {
			cam.Controller().PanRight(-1)
		}
		if keyState[common.KeyD] {
			cam.Controller().PanRight(1)
		}
		if keyState[common.KeyQ] {
			cam.Controller().PanUp(1)
		}
		if keyState[common.KeyE] {
			cam.Controller().PanUp(-1)
		}
	}
}
