package light

import "math"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Used for bare bulbs, lanterns, candle flames, and particle-emitted lights.
	// Attenuates with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Used for flashlights, desk lamps, and wall sconces. Attenuates with both
	// distance and angle from the cone axis, controlled by inner and outer cone angles.
	LightTypeSpot

	// LightTypeProjector represents a spot-shaped light that modulates its cone
	// with a light image (gobo) instead of uniform falloff, used for window-pattern
	// and stage-lighting effects. Shares the spot light's position/direction/cone
	// math; LightImageKey names the texture-unit-config entry holding the gobo.
	LightTypeProjector

	// LightTypeSky represents a cascaded directional light rendered by the sky
	// package instead of a single shadow map. Position is meaningless; Direction
	// is the sun/moon direction and CascadeCount selects how many cascade levels
	// the sky renderer splits the view frustum into.
	LightTypeSky
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     [3]float32
	direction    [3]float32
	color        [3]float32
	intensity    float32
	lightRange   float32
	innerCone    float32 // stored as cos(angle in radians)
	outerCone    float32 // stored as cos(angle in radians)
	enabled      bool
	ephemeral    bool
	castsShadows bool

	// ambientRatio is the fraction of intensity folded into the fixed
	// ambient term instead of the directional diffuse/specular terms.
	ambientRatio float32

	// attenuationCoefficient scales the inverse-square distance falloff;
	// 1 reproduces physically-based falloff, values above 1 fall off
	// faster than distance squared, below 1 reach further.
	attenuationCoefficient float32

	// dampingCoefficient and dampingThreshold shape the near-range rolloff
	// that prevents a light from blowing out fragments close to its
	// position: intensity is damped once distance drops below
	// dampingThreshold, scaled by dampingCoefficient.
	dampingCoefficient float32
	dampingThreshold   float32

	// spotSmoothness and spotExponent are the two free parameters of the
	// spot-cone edge falloff curve (see SpotFalloff): smoothness widens or
	// narrows the transition band between InnerCone and OuterCone,
	// exponent reshapes the transition's curve.
	spotSmoothness float32
	spotExponent   float32

	// lightImageKey names the gobo/light-image texture a projector light
	// modulates its cone with. Empty for every other light type.
	lightImageKey string

	// cascadeCount is the number of cascade levels a sky light splits the
	// view frustum into. Meaningless for every other light type.
	cascadeCount int
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities that contribute to the final pixel color
// during the lit forward rendering pass. All light types (directional, point,
// spot, projector, sky) share this interface; type-specific properties (e.g. cone angles for
// spot lights) return zero values when not applicable.
//
// Lights are managed by the scene and marshaled into a GPU storage buffer
// each frame via the gpu_types helpers.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, spot, projector, or sky)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction of the light.
	// For directional lights this is the light direction. For spot lights this
	// is the cone axis. Meaningless for point lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for point and spot lights.
	// Beyond this distance the light contributes zero energy. Meaningless for
	// directional lights.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	// Fragments within this angle receive full intensity. Meaningless for
	// directional and point lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	// Fragments outside this angle receive zero intensity from the spot cone
	// falloff. Meaningless for directional and point lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped during GPU buffer marshaling.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Ephemeral returns whether this light is a short-lived particle-emitted light.
	// Ephemeral lights are not persisted in the scene's light registry and are
	// managed by their owning particle system.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// CastsShadows returns whether this light is eligible for shadow map generation.
	// Shadow-casting lights have their depth pass rendered each frame, which is
	// expensive. Most ephemeral and distant lights should have this disabled.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRange sets the maximum attenuation distance.
	//
	// Parameters:
	//   - lightRange: the range value
	SetRange(lightRange float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetEphemeral marks the light as ephemeral (particle-emitted).
	//
	// Parameters:
	//   - ephemeral: true if ephemeral
	SetEphemeral(ephemeral bool)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// LightImageKey returns the texture-unit-config key of the gobo/light-image
	// a projector light modulates its cone with. Empty for non-projector lights.
	LightImageKey() string

	// SetLightImageKey sets the projector light's gobo texture key.
	SetLightImageKey(key string)

	// CascadeCount returns the number of cascade levels a sky light's
	// directional shadow is split into. Meaningless for non-sky lights.
	CascadeCount() int

	// SetCascadeCount sets a sky light's cascade level count.
	SetCascadeCount(count int)

	// AmbientRatio returns the fraction of Intensity folded into the fixed
	// ambient term rather than the directional diffuse/specular terms.
	AmbientRatio() float32

	// SetAmbientRatio sets the light's ambient ratio.
	SetAmbientRatio(ratio float32)

	// AttenuationCoefficient returns the scalar applied to the inverse-square
	// distance falloff curve.
	AttenuationCoefficient() float32

	// SetAttenuationCoefficient sets the attenuation coefficient.
	SetAttenuationCoefficient(coefficient float32)

	// DampingCoefficient returns the near-range rolloff strength applied once
	// a fragment's distance to the light drops below DampingThreshold.
	DampingCoefficient() float32

	// DampingThreshold returns the distance, as a fraction of Range, below
	// which the near-range damping curve engages.
	DampingThreshold() float32

	// SetDamping sets the near-range rolloff coefficient and threshold together,
	// since neither is meaningful in isolation.
	SetDamping(coefficient, threshold float32)

	// SpotSmoothness returns the width of the spot cone's edge transition
	// band, used by SpotFalloff. Meaningless for non-spot/projector lights.
	SpotSmoothness() float32

	// SetSpotSmoothness sets the spot cone edge smoothness.
	SetSpotSmoothness(smoothness float32)

	// SpotExponent returns the curve exponent SpotFalloff raises its clamped
	// linear falloff to. Meaningless for non-spot/projector lights.
	SpotExponent() float32

	// SetSpotExponent sets the spot cone falloff exponent.
	SetSpotExponent(exponent float32)

	// VolumeContains reports whether the world-space point (x, y, z) lies
	// inside this light's bounding volume (a sphere of radius Range for
	// point lights, a cone of angle acos(OuterCone) and length Range for
	// spot/projector lights). Directional and sky lights have no volume and
	// always report false. Evaluated once per light per frame against the
	// eye position to decide CameraInside for the lighting accumulation
	// draw, never per pixel.
	VolumeContains(x, y, z float32) bool
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, spot, projector, or sky)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:              lightType,
		position:               [3]float32{0, 0, 0},
		direction:              [3]float32{0, -1, 0},
		color:                  [3]float32{1, 1, 1},
		intensity:              1.0,
		lightRange:             10.0,
		innerCone:              0.9063, // cos(25°)
		outerCone:              0.8192, // cos(35°)
		enabled:                true,
		ephemeral:              false,
		castsShadows:           false,
		ambientRatio:           0,
		attenuationCoefficient: 1.0,
		dampingCoefficient:     1.0,
		dampingThreshold:       1.0,
		spotSmoothness:         1.0,
		spotExponent:           1.0,
	}
	if lightType == LightTypeSky {
		l.cascadeCount = 4
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Ephemeral() bool {
	return l.ephemeral
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = normalize3(x, y, z)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetEphemeral(ephemeral bool) {
	l.ephemeral = ephemeral
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

func (l *lightImpl) LightImageKey() string {
	return l.lightImageKey
}

func (l *lightImpl) SetLightImageKey(key string) {
	l.lightImageKey = key
}

func (l *lightImpl) CascadeCount() int {
	return l.cascadeCount
}

func (l *lightImpl) SetCascadeCount(count int) {
	l.cascadeCount = count
}

func (l *lightImpl) AmbientRatio() float32 {
	return l.ambientRatio
}

func (l *lightImpl) SetAmbientRatio(ratio float32) {
	l.ambientRatio = ratio
}

func (l *lightImpl) AttenuationCoefficient() float32 {
	return l.attenuationCoefficient
}

func (l *lightImpl) SetAttenuationCoefficient(coefficient float32) {
	l.attenuationCoefficient = coefficient
}

func (l *lightImpl) DampingCoefficient() float32 {
	return l.dampingCoefficient
}

func (l *lightImpl) DampingThreshold() float32 {
	return l.dampingThreshold
}

func (l *lightImpl) SetDamping(coefficient, threshold float32) {
	l.dampingCoefficient = coefficient
	l.dampingThreshold = threshold
}

func (l *lightImpl) SpotSmoothness() float32 {
	return l.spotSmoothness
}

func (l *lightImpl) SetSpotSmoothness(smoothness float32) {
	l.spotSmoothness = smoothness
}

func (l *lightImpl) SpotExponent() float32 {
	return l.spotExponent
}

func (l *lightImpl) SetSpotExponent(exponent float32) {
	l.spotExponent = exponent
}

// VolumeContains reports whether (x, y, z) lies inside l's bounding volume.
// Point lights test a sphere of radius Range; spot/projector lights test a
// cone of half-angle acos(OuterCone) and length Range along Direction from
// Position. Directional and sky lights have no volume (VolumeMeshNone) and
// always report false.
func (l *lightImpl) VolumeContains(x, y, z float32) bool {
	switch VolumeMeshKindFor(l.lightType) {
	case VolumeMeshSphere:
		dx, dy, dz := x-l.position[0], y-l.position[1], z-l.position[2]
		distSq := dx*dx + dy*dy + dz*dz
		return distSq <= l.lightRange*l.lightRange
	case VolumeMeshCone:
		dx, dy, dz := x-l.position[0], y-l.position[1], z-l.position[2]
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
		if dist > l.lightRange {
			return false
		}
		if dist == 0 {
			return true
		}
		cosAngle := (dx*l.direction[0] + dy*l.direction[1] + dz*l.direction[2]) / dist
		return cosAngle >= l.outerCone
	default:
		return false
	}
}
