package reflection

// RayMarchResult is the outcome of marching one screen-space reflection ray.
type RayMarchResult struct {
	Hit    bool
	UV     [2]float32
	Weight float32 // edge/distance fade-out, 0 at the marched ray's failure boundary
}

// RayMarchParams configures the SSR march: how far and how coarsely it
// searches before giving up and falling back to environment maps.
type RayMarchParams struct {
	MaxSteps      int
	StepSize      float32
	Thickness     float32 // max depth-buffer distance counted as a hit
	MaxDistance   float32
}

// DefaultRayMarchParams returns reasonable defaults: up to 48 steps, each
// a screen-space step of one texel-equivalent, a surface thickness of 0.5
// world units, and a max march distance of 50 world units before giving up.
func DefaultRayMarchParams() RayMarchParams {
	return RayMarchParams{MaxSteps: 48, StepSize: 1, Thickness: 0.5, MaxDistance: 50}
}

// SampleDepth returns the linear-depth value at a screen-space UV
// coordinate, or (0, false) if uv falls outside [0,1]^2.
type SampleDepth func(uv [2]float32) (depth float32, ok bool)

// March walks a reflection ray in screen space from originUV along dirUV
// (a 2D screen-space projection of the 3D reflected direction, with depth
// tracked separately via originDepth/dirDepthPerStep), testing against
// sampleDepth at each step. It returns the first step whose marched depth
// is behind the recorded scene depth by less than Thickness — a hit — or
// Hit: false once MaxSteps or MaxDistance is exceeded.
func March(originUV [2]float32, dirUV [2]float32, originDepth, dirDepthPerStep float32, params RayMarchParams, sampleDepth SampleDepth) RayMarchResult {
	uv := originUV
	depth := originDepth
	traveled := float32(0)

	for step := 0; step < params.MaxSteps; step++ {
		uv[0] += dirUV[0] * params.StepSize
		uv[1] += dirUV[1] * params.StepSize
		depth += dirDepthPerStep * params.StepSize
		traveled += params.StepSize

		if traveled > params.MaxDistance {
			break
		}
		if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
			break
		}

		sceneDepth, ok := sampleDepth(uv)
		if !ok {
			continue
		}

		delta := depth - sceneDepth
		if delta >= 0 && delta < params.Thickness {
			fade := 1 - traveled/params.MaxDistance
			return RayMarchResult{Hit: true, UV: uv, Weight: clamp01(fade)}
		}
	}

	return RayMarchResult{Hit: false}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
