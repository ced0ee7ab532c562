package reflection

import (
	"math"
	"testing"
)

func TestBlendNormalizesWeights(t *testing.T) {
	samples := []EnvMapSample{{Slot: 1, Weight: 2}, {Slot: 2, Weight: 2}}
	out, err := Blend(samples)
	if err != nil {
		t.Fatal(err)
	}
	var total float32
	for _, s := range out {
		total += s.Weight
	}
	if math.Abs(float64(total-1)) > 1e-6 {
		t.Fatalf("total weight = %v, want 1", total)
	}
}

func TestBlendTruncatesToMax(t *testing.T) {
	samples := make([]EnvMapSample, 6)
	for i := range samples {
		samples[i] = EnvMapSample{Slot: i, Weight: 1}
	}
	out, err := Blend(samples)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != MaxEnvMapsPerBlend {
		t.Fatalf("len(out) = %d, want %d", len(out), MaxEnvMapsPerBlend)
	}
}

func TestBlendRejectsEmpty(t *testing.T) {
	if _, err := Blend(nil); err == nil {
		t.Fatal("expected error for empty samples")
	}
}

func TestBlendRejectsZeroWeight(t *testing.T) {
	samples := []EnvMapSample{{Slot: 1, Weight: 0}}
	if _, err := Blend(samples); err == nil {
		t.Fatal("expected error for zero total weight")
	}
}
