package pipeline

import (
	"github.com/kestrelrender/kestrel/engine/renderer/shader"

	"github.com/cogentcore/webgpu/wgpu"
)

// Kind identifies whether a pipeline is a compute pipeline or a render pipeline.
type Kind int

const (
	// KindCompute indicates a compute pipeline with a single compute shader entry point.
	KindCompute Kind = iota
	// KindRender indicates a render pipeline with vertex and fragment shader entry points.
	KindRender
)

// entry is the implementation of the Pipeline interface.
type entry struct {
	kind   Kind
	config Config

	vertexShader, fragmentShader, computeShader shader.Shader

	renderPipeline  *wgpu.RenderPipeline
	computePipeline *wgpu.ComputePipeline
}

// Pipeline is a cached GPU pipeline plus the Config it was built from. The
// Config is what callers compare and cache on; Pipeline wraps the realized
// wgpu object once built.
type Pipeline interface {
	// Kind returns whether this is a render or compute pipeline.
	Kind() Kind

	// Config returns the Config this pipeline was built from.
	Config() Config

	// Shader retrieves the shader associated with the specified stage, or nil.
	Shader(shaderType shader.ShaderType) shader.Shader

	// Handle returns the underlying *wgpu.RenderPipeline or *wgpu.ComputePipeline.
	// Callers type-assert based on Kind().
	Handle() any

	// SetRenderPipeline sets the underlying wgpu render pipeline after creation.
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// SetComputePipeline sets the underlying wgpu compute pipeline after creation.
	SetComputePipeline(p *wgpu.ComputePipeline)
}

var _ Pipeline = &entry{}

// New creates a new Pipeline for the given Config and Kind. The underlying
// wgpu pipeline is not created here; callers build it via the renderer and
// attach it with SetRenderPipeline/SetComputePipeline.
func New(kind Kind, cfg Config, opts ...Option) Pipeline {
	e := &entry{kind: kind, config: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *entry) Kind() Kind     { return e.kind }
func (e *entry) Config() Config { return e.config }

func (e *entry) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return e.vertexShader
	case shader.ShaderTypeFragment:
		return e.fragmentShader
	case shader.ShaderTypeCompute:
		return e.computeShader
	default:
		return nil
	}
}

func (e *entry) Handle() any {
	switch e.kind {
	case KindRender:
		return e.renderPipeline
	case KindCompute:
		return e.computePipeline
	default:
		return nil
	}
}

func (e *entry) SetRenderPipeline(p *wgpu.RenderPipeline)   { e.renderPipeline = p }
func (e *entry) SetComputePipeline(p *wgpu.ComputePipeline) { e.computePipeline = p }

// Option configures an entry during construction via New.
type Option func(*entry)

// WithVertexShader attaches the vertex-stage shader.
func WithVertexShader(s shader.Shader) Option {
	return func(e *entry) { e.vertexShader = s }
}

// WithFragmentShader attaches the fragment-stage shader.
func WithFragmentShader(s shader.Shader) Option {
	return func(e *entry) { e.fragmentShader = s }
}

// WithComputeShader attaches the compute-stage shader.
func WithComputeShader(s shader.Shader) Option {
	return func(e *entry) { e.computeShader = s }
}
