package shadowrender

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// deviceFrame implements Frame directly against a wgpu.Device, batching
// every view rendered within one frame behind a single command encoder.
type deviceFrame struct {
	device  *wgpu.Device
	queue   *wgpu.Queue
	encoder *wgpu.CommandEncoder
}

var _ Frame = &deviceFrame{}

// NewDeviceFrame creates a Frame that issues its own command encoder and
// submits directly to queue on End.
func NewDeviceFrame(device *wgpu.Device, queue *wgpu.Queue) Frame {
	return &deviceFrame{device: device, queue: queue}
}

func (f *deviceFrame) Begin() error {
	encoder, err := f.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	f.encoder = encoder
	return nil
}

func (f *deviceFrame) BeginView(view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	if f.encoder == nil {
		return nil
	}
	return f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: nil,
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
}

func (f *deviceFrame) EndView(pass *wgpu.RenderPassEncoder) {
	if pass == nil {
		return
	}
	pass.End()
}

func (f *deviceFrame) End() {
	if f.encoder == nil {
		return
	}
	commandBuffer, err := f.encoder.Finish(nil)
	f.encoder = nil
	if err != nil {
		return
	}
	f.queue.Submit(commandBuffer)
}
