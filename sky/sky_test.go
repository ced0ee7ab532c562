package sky

import (
	"testing"

	"github.com/kestrelrender/kestrel/engine/light"
)

func TestSplitDistancesSpansNearToFar(t *testing.T) {
	splits := SplitDistances(0.1, 100, 4, 0.5)
	if len(splits) != 5 {
		t.Fatalf("len(splits) = %d, want 5", len(splits))
	}
	if splits[0] != 0.1 {
		t.Fatalf("splits[0] = %v, want 0.1", splits[0])
	}
	if splits[len(splits)-1] != 100 {
		t.Fatalf("splits[last] = %v, want 100", splits[len(splits)-1])
	}
	for i := 1; i < len(splits); i++ {
		if splits[i] <= splits[i-1] {
			t.Fatalf("splits not monotonically increasing at index %d: %v", i, splits)
		}
	}
}

func TestSplitDistancesEmptyForZeroCascades(t *testing.T) {
	if splits := SplitDistances(0.1, 100, 0, 0.5); splits != nil {
		t.Fatalf("expected nil splits for zero cascades, got %v", splits)
	}
}

func TestOrthoFromCropBoxProducesFiniteMatrix(t *testing.T) {
	box := light.CropBox{Min: [3]float32{-5, -5, -5}, Max: [3]float32{5, 5, 5}}
	vp := orthoFromCropBox([3]float32{0, -1, 0}, box)
	for i, v := range vp {
		if v != v { // NaN check
			t.Fatalf("vp[%d] is NaN", i)
		}
	}
}
