package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// GBufferPassSource adapts Renderer's G-buffer pass lifecycle to
// plan.PassSource, so plan.NewDepthPhase can drive it without depending on
// the renderer package directly. name is ignored: the Depth phase only
// ever opens one geometry pass per frame.
type GBufferPassSource struct {
	Renderer Renderer
}

func (s GBufferPassSource) BeginPass(name string) (*wgpu.RenderPassEncoder, error) {
	return s.Renderer.BeginGBufferPass()
}

func (s GBufferPassSource) EndPass(pass *wgpu.RenderPassEncoder) {
	s.Renderer.EndGBufferPass(pass)
}

// GBuffer holds the deferred-shading geometry buffer: the color targets the
// Depth phase writes solid geometry into, read back by the Light phase's
// lighting accumulation pass. Three color channels plus depth mirror the
// teacher's single-target forward pass split into distinct attachments.
type GBuffer struct {
	Width, Height int

	albedoTexture *wgpu.Texture
	Albedo        *wgpu.TextureView // RGBA8: diffuse/base color

	normalTexture *wgpu.Texture
	Normal        *wgpu.TextureView // RGBA16Float: world-space normal encoded as n*0.5+0.5

	materialTexture *wgpu.Texture
	Material        *wgpu.TextureView // RGBA8: metalness, AO, material flags

	depthTexture *wgpu.Texture
	Depth        *wgpu.TextureView // Depth32Float
}

// Release frees every GPU resource the G-buffer owns.
func (g *GBuffer) Release() {
	if g == nil {
		return
	}
	g.Albedo.Release()
	g.albedoTexture.Release()
	g.Normal.Release()
	g.normalTexture.Release()
	g.Material.Release()
	g.materialTexture.Release()
	g.Depth.Release()
	g.depthTexture.Release()
}

func (b *wgpuRendererBackendImpl) CreateGBuffer(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.gbuffer != nil {
		b.gbuffer.Release()
		b.gbuffer = nil
	}

	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	makeColorTarget := func(label string, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         label,
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     wgpu.TextureDimension2D,
			Format:        format,
			Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create %s target: %w", label, err)
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return nil, nil, fmt.Errorf("failed to create %s view: %w", label, err)
		}
		return tex, view, nil
	}

	albedoTex, albedoView, err := makeColorTarget("GBuffer Albedo", wgpu.TextureFormatRGBA8Unorm)
	if err != nil {
		return err
	}
	normalTex, normalView, err := makeColorTarget("GBuffer Normal", wgpu.TextureFormatRGBA16Float)
	if err != nil {
		albedoTex.Release()
		albedoView.Release()
		return err
	}
	materialTex, materialView, err := makeColorTarget("GBuffer Material", wgpu.TextureFormatRGBA8Unorm)
	if err != nil {
		albedoTex.Release()
		albedoView.Release()
		normalTex.Release()
		normalView.Release()
		return err
	}
	depthTex, depthView, err := makeColorTarget("GBuffer Depth", wgpu.TextureFormatDepth32Float)
	if err != nil {
		albedoTex.Release()
		albedoView.Release()
		normalTex.Release()
		normalView.Release()
		materialTex.Release()
		materialView.Release()
		return err
	}

	b.gbuffer = &GBuffer{
		Width: width, Height: height,
		albedoTexture: albedoTex, Albedo: albedoView,
		normalTexture: normalTex, Normal: normalView,
		materialTexture: materialTex, Material: materialView,
		depthTexture: depthTex, Depth: depthView,
	}
	return nil
}

func (b *wgpuRendererBackendImpl) GBuffer() *GBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gbuffer
}

func (b *wgpuRendererBackendImpl) BeginGBufferPass() (*wgpu.RenderPassEncoder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.gbuffer == nil {
		return nil, errors.New("renderer: BeginGBufferPass called before CreateGBuffer")
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}

	colorAttachment := func(view *wgpu.TextureView) wgpu.RenderPassColorAttachment {
		return wgpu.RenderPassColorAttachment{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 0},
		}
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			colorAttachment(b.gbuffer.Albedo),
			colorAttachment(b.gbuffer.Normal),
			colorAttachment(b.gbuffer.Material),
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.gbuffer.Depth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	b.gbufferFrameEncoder = encoder
	return pass, nil
}

func (b *wgpuRendererBackendImpl) EndGBufferPass(pass *wgpu.RenderPassEncoder) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pass != nil {
		pass.End()
	}
	if b.gbufferFrameEncoder == nil {
		return
	}

	commandBuffer, err := b.gbufferFrameEncoder.Finish(nil)
	if err == nil {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	b.gbufferFrameEncoder.Release()
	b.gbufferFrameEncoder = nil
}
