package camera

import "testing"

func newTestCamera() Camera {
	ctrl := NewCameraController(WithTarget(0, 0, 0))
	ctrl.SetPosition(0, 0, 10)
	return NewCamera(WithController(ctrl), WithAspect(16.0/9.0))
}

func TestInfiniteProjectionHasNoFarTerm(t *testing.T) {
	cam := newTestCamera()
	cam.SetInfiniteProjection(true)
	if !cam.InfiniteProjection() {
		t.Fatal("expected InfiniteProjection to report true")
	}
	proj := cam.ProjectionMatrix()
	if proj[10] != -1 {
		t.Fatalf("proj[10] = %v, want -1 for an infinite far plane", proj[10])
	}
}

func TestFiniteProjectionClipsAtFar(t *testing.T) {
	cam := newTestCamera()
	proj := cam.ProjectionMatrix()
	if proj[10] == -1 {
		t.Fatal("expected a finite-far projection by default")
	}
}

func TestStereoViewsOffsetOppositeDirections(t *testing.T) {
	cam := newTestCamera()
	cam.SetEyeSeparation(0.064)

	left := cam.StereoViewMatrix(EyeLeft)
	right := cam.StereoViewMatrix(EyeRight)

	same := true
	for i := range left {
		if left[i] != right[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected left/right eye view matrices to differ when EyeSeparation > 0")
	}
}

func TestZeroEyeSeparationLeavesEyesEqual(t *testing.T) {
	cam := newTestCamera()
	left := cam.StereoViewMatrix(EyeLeft)
	right := cam.StereoViewMatrix(EyeRight)
	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("expected identical eye matrices at zero separation, differed at index %d", i)
		}
	}
}
