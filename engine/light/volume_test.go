package light

import (
	"math"
	"testing"
)

func TestVolumeMeshKindForMatchesLightType(t *testing.T) {
	cases := []struct {
		t    LightType
		want VolumeMeshKind
	}{
		{LightTypeDirectional, VolumeMeshNone},
		{LightTypePoint, VolumeMeshSphere},
		{LightTypeSpot, VolumeMeshCone},
		{LightTypeProjector, VolumeMeshCone},
		{LightTypeSky, VolumeMeshNone},
	}
	for _, c := range cases {
		if got := VolumeMeshKindFor(c.t); got != c.want {
			t.Errorf("VolumeMeshKindFor(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestSpotConeGeneratorProducesApexAtOrigin(t *testing.T) {
	l := NewLight(LightTypeSpot, WithSpotCone(25, 35))
	verts, indices := SpotConeGenerator(l)()
	if len(verts) == 0 || len(indices) == 0 {
		t.Fatal("expected non-empty cone mesh")
	}
	apex := verts[0].Position
	if apex != [3]float32{0, 0, 0} {
		t.Fatalf("apex = %v, want origin", apex)
	}
}

func TestSphereVolumeGeneratorProducesUnitSphere(t *testing.T) {
	verts, indices := SphereVolumeGenerator()()
	if len(verts) == 0 || len(indices) == 0 {
		t.Fatal("expected non-empty sphere mesh")
	}
	for _, v := range verts {
		p := v.Position
		r := math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2]))
		if math.Abs(r-1) > 1e-5 {
			t.Fatalf("vertex %v at radius %v, want 1", p, r)
		}
	}
}
