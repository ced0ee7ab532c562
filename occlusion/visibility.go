package occlusion

// TestKind selects which depth source a visibility test samples against,
// mirroring the three variants deoglRenderOcclusion.cpp dispatches: the
// camera's own pyramid, a sun cascade's pyramid, and the dual-map check used
// when both must agree an object is hidden.
type TestKind int

const (
	// TestKindCamera tests against the main camera-frustum pyramid.
	TestKindCamera TestKind = iota
	// TestKindSunCascade tests against a directional-light cascade's pyramid.
	TestKindSunCascade
	// TestKindDual requires both a camera and a cascade pyramid to agree an
	// object is hidden before marking it occluded, avoiding false negatives
	// at cascade seams.
	TestKindDual
)

// Sphere is the bounding volume a visibility test samples, in world space.
type Sphere struct {
	X, Y, Z float32
	Radius  float32
}

// PyramidSnapshot is the CPU-readable form of one coarse pyramid level, read
// back once per frame after Pyramid.Reduce for use by Tester. Producing this
// from the GPU texture is the renderer's responsibility; Tester only
// consumes it. ViewProj is the column-major 4x4 matrix (16 elements) the
// pyramid's source depth buffer was rendered with.
type PyramidSnapshot struct {
	ViewProj      [16]float32
	Width, Height uint32
	MinDepth      []float32
	MaxDepth      []float32
}

// Tester runs point-sampled occlusion queries against one or two Z-pyramids.
// Unlike a GPU-readback occlusion query, this samples the pyramid's
// coarsest mip on the CPU against a world-space projection, matching the
// original's point-sample (rather than conservative-rasterization) approach
// for collide-list culling.
type Tester struct {
	kind    TestKind
	primary *PyramidSnapshot
	dual    *PyramidSnapshot
}

// NewTester creates a Tester of the given kind. For TestKindDual, both
// primary and dual must be non-nil; for the other kinds dual is ignored.
func NewTester(kind TestKind, primary *PyramidSnapshot, dual *PyramidSnapshot) *Tester {
	t := &Tester{kind: kind, primary: primary}
	if kind == TestKindDual {
		t.dual = dual
	}
	return t
}

// Occluded reports whether sphere is fully hidden behind occluders recorded
// in the pyramid(s). A sphere is occluded when its nearest point is farther
// from the eye than the pyramid's max-depth (farthest occluder) value at the
// texel its projected footprint covers.
func (t *Tester) Occluded(sphere Sphere) bool {
	if t.primary == nil {
		return false
	}
	primaryHidden := sampleOccluded(t.primary, sphere)
	switch t.kind {
	case TestKindCamera, TestKindSunCascade:
		return primaryHidden
	case TestKindDual:
		if t.dual == nil {
			return primaryHidden
		}
		return primaryHidden && sampleOccluded(t.dual, sphere)
	default:
		return false
	}
}

// project transforms a world-space point by a column-major 4x4 matrix,
// returning homogeneous clip coordinates.
func project(m *[16]float32, x, y, z float32) (cx, cy, cz, cw float32) {
	cx = m[0]*x + m[4]*y + m[8]*z + m[12]
	cy = m[1]*x + m[5]*y + m[9]*z + m[13]
	cz = m[2]*x + m[6]*y + m[10]*z + m[14]
	cw = m[3]*x + m[7]*y + m[11]*z + m[15]
	return
}

func sampleOccluded(s *PyramidSnapshot, sphere Sphere) bool {
	if len(s.MaxDepth) == 0 || s.Width == 0 || s.Height == 0 {
		return false
	}

	cx, cy, cz, cw := project(&s.ViewProj, sphere.X, sphere.Y, sphere.Z)
	if cw <= 0 {
		// behind the eye plane; cannot be occlusion-culled by this pyramid.
		return false
	}
	ndcX := cx / cw
	ndcY := cy / cw
	ndcZ := cz / cw

	if ndcX < -1 || ndcX > 1 || ndcY < -1 || ndcY > 1 {
		return false
	}

	u := (ndcX*0.5 + 0.5) * float32(s.Width-1)
	v := (1 - (ndcY*0.5 + 0.5)) * float32(s.Height-1)
	x := clampInt(int(u), 0, int(s.Width-1))
	y := clampInt(int(v), 0, int(s.Height-1))
	idx := y*int(s.Width) + x

	nearestDepth := ndcZ - depthMargin(sphere.Radius)
	return nearestDepth > s.MaxDepth[idx]
}

// depthMargin converts a world-space sphere radius into a conservative NDC
// depth-safety margin so a sphere whose center projects just past an
// occluder is not falsely marked hidden.
func depthMargin(radius float32) float32 {
	return radius * 0.01
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
