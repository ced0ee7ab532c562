package paramblock

import "testing"

func TestAlign(t *testing.T) {
	cases := []struct {
		size, alignment, want uint64
	}{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{80, 256, 256},
		{5, 0, 5},
	}
	for _, c := range cases {
		if got := Align(c.size, c.alignment); got != c.want {
			t.Errorf("Align(%d, %d) = %d, want %d", c.size, c.alignment, got, c.want)
		}
	}
}
