package shadowcache

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// TempPool is the shared pool of Temporary-slot shadow maps borrowed by
// Casters for one-shot, layer-mask-restricted renders. Maps are bucketed by
// size; a request for a size with no suitable free map allocates a new one,
// and Return releases the oldest idle map of a size once that size already
// holds maxMapsPerSize idle maps. Idle maps are not aged over time.
type TempPool struct {
	mu             sync.Mutex
	device         *wgpu.Device
	maxMapsPerSize int
	tick           uint64
	free           map[uint32][]*Map
	inUse          map[*Map]uint32 // map -> size, tracks borrowed maps for Return
}

// NewTempPool creates a temporary-map pool bound to device, keeping at most
// maxMapsPerSize idle maps cached per distinct size before reclaiming the
// oldest.
func NewTempPool(device *wgpu.Device, maxMapsPerSize int) *TempPool {
	return &TempPool{
		device:         device,
		maxMapsPerSize: maxMapsPerSize,
		free:           make(map[uint32][]*Map),
		inUse:          make(map[*Map]uint32),
	}
}

// Borrow returns a depth-only (or depth+color, for the Transparent tier)
// shadow map of the requested size, reusing a free one if available.
//
// Parameters:
//   - size: the requested square map resolution in texels
//   - withColor: true to also allocate the Transparent tier's color attachment
//
// Returns:
//   - *Map: the borrowed map
//   - error: non-nil if a new map had to be created and texture creation failed
func (p *TempPool) Borrow(size uint32, withColor bool) (*Map, error) {
	p.mu.Lock()
	p.tick++
	bucket := p.free[size]
	for i := len(bucket) - 1; i >= 0; i-- {
		m := bucket[i]
		if (m.Color != nil) != withColor {
			continue
		}
		p.free[size] = append(bucket[:i], bucket[i+1:]...)
		p.inUse[m] = size
		p.mu.Unlock()
		return m, nil
	}
	p.mu.Unlock()

	m, err := createMap(p.device, size, withColor)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.inUse[m] = size
	p.mu.Unlock()
	return m, nil
}

// Return gives a borrowed map back to the pool for reuse. If the pool
// already holds maxMapsPerSize idle maps of that size, the oldest is
// released instead of retained, bounding temporary-pool GPU memory.
func (p *TempPool) Return(m *Map) {
	p.mu.Lock()
	defer p.mu.Unlock()
	size, ok := p.inUse[m]
	if !ok {
		return
	}
	delete(p.inUse, m)

	bucket := p.free[size]
	if len(bucket) >= p.maxMapsPerSize {
		oldest := bucket[0]
		oldest.Release()
		bucket = bucket[1:]
	}
	p.free[size] = append(bucket, m)
}

// Release releases every idle map the pool holds. Borrowed (in-use) maps
// are left untouched; callers must Return them first.
func (p *TempPool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for size, bucket := range p.free {
		for _, m := range bucket {
			m.Release()
		}
		delete(p.free, size)
	}
}

func createMap(device *wgpu.Device, size uint32, withColor bool) (*Map, error) {
	depth, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "shadowcache.temp.depth",
		Size:      wgpu.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
		Format:    wgpu.TextureFormatDepth32Float,
		Dimension: wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, err
	}
	depthView, err := depth.CreateView(nil)
	if err != nil {
		depth.Release()
		return nil, err
	}

	m := &Map{Size: size, Depth: depth, DepthView: depthView}

	if withColor {
		color, err := device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "shadowcache.temp.color",
			Size:          wgpu.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
			Format:        wgpu.TextureFormatRGBA8Unorm,
			Dimension:     wgpu.TextureDimension2D,
			MipLevelCount: 1,
			SampleCount:   1,
			Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
		})
		if err != nil {
			depthView.Release()
			depth.Release()
			return nil, err
		}
		colorView, err := color.CreateView(nil)
		if err != nil {
			color.Release()
			depthView.Release()
			depth.Release()
			return nil, err
		}
		m.Color = color
		m.ColorView = colorView
	}

	return m, nil
}
