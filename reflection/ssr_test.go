package reflection

import "testing"

func TestMarchHitsWhenDepthsConverge(t *testing.T) {
	params := DefaultRayMarchParams()
	params.MaxSteps = 10
	params.StepSize = 0.1

	sample := func(uv [2]float32) (float32, bool) {
		return 0.5, true
	}

	result := March([2]float32{0.5, 0.5}, [2]float32{0, 0}, 0.5, 0, params, sample)
	if !result.Hit {
		t.Fatal("expected a hit when marched depth matches scene depth")
	}
}

func TestMarchMissesWhenRayLeavesScreen(t *testing.T) {
	params := DefaultRayMarchParams()
	sample := func(uv [2]float32) (float32, bool) { return 0.5, true }

	result := March([2]float32{0.99, 0.5}, [2]float32{1, 0}, 0.5, 0, params, sample)
	if result.Hit {
		t.Fatal("expected no hit once the ray exits [0,1] UV bounds")
	}
}

func TestMarchMissesWhenSceneNeverConverges(t *testing.T) {
	params := DefaultRayMarchParams()
	params.MaxSteps = 4
	sample := func(uv [2]float32) (float32, bool) { return -100, true }

	result := March([2]float32{0.1, 0.1}, [2]float32{0.01, 0}, 0, 0, params, sample)
	if result.Hit {
		t.Fatal("expected no hit when scene depth never matches the marched ray")
	}
}
