package shapes

import "testing"

func TestBoxHasSixFaces(t *testing.T) {
	verts, indices := Box()
	if len(verts) != 6*4 {
		t.Fatalf("len(verts) = %d, want 24", len(verts))
	}
	if len(indices) != 6*6 {
		t.Fatalf("len(indices) = %d, want 36", len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(verts) {
			t.Fatalf("index %d out of range of %d verts", idx, len(verts))
		}
	}
}

func TestSphereIndicesInRange(t *testing.T) {
	gen := Sphere(8, 12)
	verts, indices := gen()
	if len(verts) == 0 || len(indices) == 0 {
		t.Fatal("sphere produced no geometry")
	}
	for _, idx := range indices {
		if int(idx) >= len(verts) {
			t.Fatalf("index %d out of range of %d verts", idx, len(verts))
		}
	}
}

func TestSpotConeApexAtOrigin(t *testing.T) {
	gen := SpotCone(0.6, 16)
	verts, _ := gen()
	apex := verts[0]
	if apex.Position != ([3]float32{0, 0, 0}) {
		t.Fatalf("apex position = %+v, want origin", apex.Position)
	}
}

func TestCylinderIndicesInRange(t *testing.T) {
	gen := Cylinder(10)
	verts, indices := gen()
	for _, idx := range indices {
		if int(idx) >= len(verts) {
			t.Fatalf("index %d out of range of %d verts", idx, len(verts))
		}
	}
}

func TestCapsuleIndicesInRange(t *testing.T) {
	gen := Capsule(1.0, 8, 4)
	verts, indices := gen()
	for _, idx := range indices {
		if int(idx) >= len(verts) {
			t.Fatalf("index %d out of range of %d verts", idx, len(verts))
		}
	}
}
