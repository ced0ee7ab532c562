package light

// CropBoxStartResolution is the starting resolution a light-volume crop box
// reduction reads occluder world-space positions from, per
// deoglLightBoundaryMap.h/deoglLightVolume.h's boundary-map convention: an
// 8x8 grid is coarse enough to reduce cheaply yet fine enough to tighten a
// shadow frustum meaningfully versus the light's full range.
const CropBoxStartResolution = 8

// CropBox is the tight axis-aligned world-space bound derived from a shadow
// map's recorded occluder positions, used to shrink a light's shadow
// frustum to only the region actual geometry occupies instead of its full
// nominal range.
type CropBox struct {
	Min [3]float32
	Max [3]float32
}

// cropBoxEmpty returns a box that has never been extended by a sample,
// using +-3.4e38 sentinels (near the float32 limits) so the first Extend always wins.
func cropBoxEmpty() CropBox {
	const inf = float32(3.4e38)
	return CropBox{Min: [3]float32{inf, inf, inf}, Max: [3]float32{-inf, -inf, -inf}}
}

// Extend grows b to include p, returning the updated box.
func (b CropBox) Extend(p [3]float32) CropBox {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Merge combines two boxes, the step a ping-pong reduction performs between
// passes.
func (b CropBox) Merge(other CropBox) CropBox {
	b = b.Extend(other.Min)
	b = b.Extend(other.Max)
	return b
}

// ReduceCropBox derives the world-space crop box bounding every occluder
// position recorded in a shadow map's boundary samples, via a ping-pong
// min/max reduction: samples is the flattened grid of world-space positions
// read back from the shadow map at CropBoxStartResolution and each halving
// step merges 2x2 neighborhoods until a single box remains, mirroring
// deoglLightBoundaryMap's mip-style reduction instead of scanning every
// sample in one pass.
//
// Parameters:
//   - samples: flattened width*height grid of world-space positions
//   - width, height: the grid's dimensions, both expected to be powers of two
//
// Returns:
//   - CropBox: the tight world-space bound, or an empty (inverted) box if samples is empty
func ReduceCropBox(samples [][3]float32, width, height int) CropBox {
	if len(samples) == 0 || width == 0 || height == 0 {
		return cropBoxEmpty()
	}

	boxes := make([]CropBox, width*height)
	for i, p := range samples {
		boxes[i] = cropBoxEmpty().Extend(p)
	}

	for width > 1 || height > 1 {
		nw, nh := (width+1)/2, (height+1)/2
		next := make([]CropBox, nw*nh)
		for y := 0; y < nh; y++ {
			for x := 0; x < nw; x++ {
				merged := cropBoxEmpty()
				for dy := 0; dy < 2; dy++ {
					for dx := 0; dx < 2; dx++ {
						sx, sy := x*2+dx, y*2+dy
						if sx >= width || sy >= height {
							continue
						}
						merged = merged.Merge(boxes[sy*width+sx])
					}
				}
				next[y*nw+x] = merged
			}
		}
		boxes, width, height = next, nw, nh
	}

	return boxes[0]
}
