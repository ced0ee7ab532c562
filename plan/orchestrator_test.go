package plan

import (
	"errors"
	"testing"
)

type recordingTimer struct {
	begins []string
	ends   []string
}

func (t *recordingTimer) Begin(name string) { t.begins = append(t.begins, name) }
func (t *recordingTimer) End(name string)   { t.ends = append(t.ends, name) }

func TestRunFrameExecutesPhasesInOrder(t *testing.T) {
	var order []string
	o := NewOrchestrator(nil)
	o.Use(Phase{Name: "Depth", Run: func(*Frame) error { order = append(order, "Depth"); return nil }})
	o.Use(Phase{Name: "Occlusion", Run: func(*Frame) error { order = append(order, "Occlusion"); return nil }})
	o.Use(Phase{Name: "Light", Run: func(*Frame) error { order = append(order, "Light"); return nil }})

	if err := o.RunFrame(&Frame{}); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	want := []string{"Depth", "Occlusion", "Light"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRunFrameContinuesAfterPhaseError(t *testing.T) {
	var ran []string
	o := NewOrchestrator(nil)
	o.Use(Phase{Name: "Depth", Run: func(*Frame) error { ran = append(ran, "Depth"); return errors.New("boom") }})
	o.Use(Phase{Name: "Light", Run: func(*Frame) error { ran = append(ran, "Light"); return nil }})

	err := o.RunFrame(&Frame{})
	if err == nil {
		t.Fatal("expected an aggregated error from the failing phase")
	}
	if len(ran) != 2 {
		t.Fatalf("expected both phases to run despite the first failing, ran = %v", ran)
	}
}

func TestRunFrameTimesEveryPhase(t *testing.T) {
	timer := &recordingTimer{}
	o := NewOrchestrator(timer)
	o.Use(Phase{Name: "Depth", Run: func(*Frame) error { return nil }})
	o.Use(Phase{Name: "GI", Run: func(*Frame) error { return nil }})

	_ = o.RunFrame(&Frame{})

	if len(timer.begins) != 2 || len(timer.ends) != 2 {
		t.Fatalf("timer calls = %d begin / %d end, want 2/2", len(timer.begins), len(timer.ends))
	}
}

func TestPhasesReturnsRegisteredNames(t *testing.T) {
	o := NewOrchestrator(nil)
	o.Use(Phase{Name: "Depth", Run: func(*Frame) error { return nil }})
	o.Use(Phase{Name: "Transparent", Run: func(*Frame) error { return nil }})

	names := o.Phases()
	if len(names) != 2 || names[0] != "Depth" || names[1] != "Transparent" {
		t.Fatalf("Phases() = %v", names)
	}
}
