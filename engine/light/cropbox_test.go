package light

import "testing"

func TestReduceCropBoxSinglePoint(t *testing.T) {
	samples := [][3]float32{{1, 2, 3}}
	box := ReduceCropBox(samples, 1, 1)
	if box.Min != [3]float32{1, 2, 3} || box.Max != [3]float32{1, 2, 3} {
		t.Fatalf("box = %+v, want degenerate box at (1,2,3)", box)
	}
}

func TestReduceCropBoxGrid(t *testing.T) {
	samples := [][3]float32{
		{-1, 0, 0}, {1, 0, 0},
		{0, -2, 0}, {0, 2, 0},
	}
	box := ReduceCropBox(samples, 2, 2)
	if box.Min != [3]float32{-1, -2, 0} {
		t.Fatalf("Min = %v, want {-1 -2 0}", box.Min)
	}
	if box.Max != [3]float32{1, 2, 0} {
		t.Fatalf("Max = %v, want {1 2 0}", box.Max)
	}
}

func TestReduceCropBoxEmpty(t *testing.T) {
	box := ReduceCropBox(nil, 0, 0)
	if box.Min[0] < box.Max[0] {
		t.Fatal("expected empty box to remain inverted (Min > Max)")
	}
}

func TestCropBoxMergeCombinesRanges(t *testing.T) {
	a := cropBoxEmpty().Extend([3]float32{0, 0, 0})
	b := cropBoxEmpty().Extend([3]float32{5, 5, 5})
	merged := a.Merge(b)
	if merged.Min != [3]float32{0, 0, 0} || merged.Max != [3]float32{5, 5, 5} {
		t.Fatalf("merged = %+v, want [0,0,0]-[5,5,5]", merged)
	}
}
