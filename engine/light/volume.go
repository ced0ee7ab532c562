package light

import (
	"math"

	"github.com/kestrelrender/kestrel/shapes"
)

// VolumeMeshKind identifies which shape a light's convex bounding volume
// uses when rendering into the stencil/depth-bounds pass that restricts
// lighting accumulation to the region the light could plausibly affect.
type VolumeMeshKind int

const (
	// VolumeMeshSphere bounds a point light's influence, per its Range.
	VolumeMeshSphere VolumeMeshKind = iota
	// VolumeMeshCone bounds a spot or projector light's cone, per its Range
	// and OuterCone angle.
	VolumeMeshCone
	// VolumeMeshNone applies to sky/directional lights, which affect the
	// entire screen and need no bounding geometry.
	VolumeMeshNone
)

// VolumeMeshKindFor returns which bounding volume a light of the given type
// needs for the lighting accumulation pass's stencil/scissor restriction.
func VolumeMeshKindFor(t LightType) VolumeMeshKind {
	switch t {
	case LightTypePoint:
		return VolumeMeshSphere
	case LightTypeSpot, LightTypeProjector:
		return VolumeMeshCone
	default:
		return VolumeMeshNone
	}
}

// coneSegments is the radial subdivision count used for every spot/projector
// volume mesh.
const coneSegments = 16

// latBands/lonBands are the subdivision counts used for point-light sphere
// volumes. Coarser than a rendered sphere prop since only silhouette shape
// matters for a stencil pass, not surface smoothness.
const (
	sphereLatBands = 8
	sphereLonBands = 12
)

// SphereVolumeGenerator returns the unit-scale point-light bounding-sphere
// generator shared by every point light; callers scale the uploaded mesh by
// Range in the model matrix rather than regenerating geometry per light.
func SphereVolumeGenerator() shapes.Generator {
	return shapes.Sphere(sphereLatBands, sphereLonBands)
}

// SpotConeGenerator builds l's cone volume mesh at its current outer cone
// angle. Unlike a point light's sphere, a spot/projector volume's shape (not
// just scale) depends on the light's configuration, so this is regenerated
// whenever SetSpotCone changes the outer angle rather than cached once.
func SpotConeGenerator(l Light) shapes.Generator {
	return shapes.SpotCone(acosCone(l.OuterCone()), coneSegments)
}

// acosCone converts a stored cos(angle) cone value back to its radian
// half-angle, clamping to [-1, 1] to guard against accumulated float error.
func acosCone(cosAngle float32) float32 {
	if cosAngle > 1 {
		cosAngle = 1
	} else if cosAngle < -1 {
		cosAngle = -1
	}
	return float32(math.Acos(float64(cosAngle)))
}
