package occlusion

import "testing"

func identitySnapshot(width, height uint32, maxDepth []float32) *PyramidSnapshot {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return &PyramidSnapshot{ViewProj: m, Width: width, Height: height, MinDepth: maxDepth, MaxDepth: maxDepth}
}

func TestOccludedWhenBehindRecordedMaxDepth(t *testing.T) {
	snap := identitySnapshot(2, 2, []float32{-0.5, -0.5, -0.5, -0.5})
	tester := NewTester(TestKindCamera, snap, nil)

	if !tester.Occluded(Sphere{X: 0, Y: 0, Z: 0.5, Radius: 0}) {
		t.Fatal("expected sphere farther than occluder max depth to be occluded")
	}
}

func TestNotOccludedWhenInFrontOfMaxDepth(t *testing.T) {
	snap := identitySnapshot(2, 2, []float32{0.9, 0.9, 0.9, 0.9})
	tester := NewTester(TestKindCamera, snap, nil)

	if tester.Occluded(Sphere{X: 0, Y: 0, Z: 0, Radius: 0}) {
		t.Fatal("expected sphere in front of occluder max depth to be visible")
	}
}

func TestOutOfFrustumIsNotOccluded(t *testing.T) {
	snap := identitySnapshot(2, 2, []float32{-1, -1, -1, -1})
	tester := NewTester(TestKindCamera, snap, nil)

	if tester.Occluded(Sphere{X: 5, Y: 0, Z: 0, Radius: 0}) {
		t.Fatal("expected sphere outside NDC bounds to be treated as visible")
	}
}

func TestDualRequiresBothPyramidsToAgree(t *testing.T) {
	hidden := identitySnapshot(2, 2, []float32{-0.5, -0.5, -0.5, -0.5})
	visible := identitySnapshot(2, 2, []float32{0.9, 0.9, 0.9, 0.9})

	tester := NewTester(TestKindDual, hidden, visible)
	if tester.Occluded(Sphere{X: 0, Y: 0, Z: 0.5, Radius: 0}) {
		t.Fatal("expected dual test to report visible when the second pyramid disagrees")
	}

	tester2 := NewTester(TestKindDual, hidden, hidden)
	if !tester2.Occluded(Sphere{X: 0, Y: 0, Z: 0.5, Radius: 0}) {
		t.Fatal("expected dual test to report occluded when both pyramids agree")
	}
}

func TestNoDepthDataIsNeverOccluded(t *testing.T) {
	tester := NewTester(TestKindCamera, nil, nil)
	if tester.Occluded(Sphere{}) {
		t.Fatal("expected no-data tester to report visible")
	}
}
