package scene

import (
	"testing"

	"github.com/kestrelrender/kestrel/collidelist"
	"github.com/kestrelrender/kestrel/engine/camera"
	"github.com/kestrelrender/kestrel/engine/light"
	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/tuc"
)

type fakeObject struct {
	id uint64
}

func (o *fakeObject) ID() uint64     { return o.id }
func (o *fakeObject) SetID(id uint64) { o.id = id }

func (o *fakeObject) PipelineConfig() pipeline.Config             { return pipeline.Config{} }
func (o *fakeObject) TUCConfig() tuc.Config                       { return tuc.Config{} }
func (o *fakeObject) Mesh() (gpubuf.Range, gpubuf.Range, uint32)  { return gpubuf.Range{}, gpubuf.Range{}, 0 }
func (o *fakeObject) ParamRange() gpubuf.Range                    { return gpubuf.Range{} }
func (o *fakeObject) IsSolid() bool                               { return true }
func (o *fakeObject) IsOutline() bool                             { return false }
func (o *fakeObject) IsDecal() bool                               { return false }
func (o *fakeObject) CastsNoShadow() bool                         { return false }

func newTestCamera() camera.Camera {
	ctrl := camera.NewCameraController(camera.WithTarget(0, 0, 0))
	ctrl.SetPosition(0, 0, 10)
	return camera.NewCamera(camera.WithController(ctrl))
}

func TestAddAssignsIDsAndRegisters(t *testing.T) {
	s := New("main", newTestCamera())
	a := &fakeObject{}
	b := &fakeObject{}

	idA := s.Add(a)
	idB := s.Add(b)

	if idA == 0 || idB == 0 || idA == idB {
		t.Fatalf("expected distinct nonzero IDs, got %d and %d", idA, idB)
	}
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
}

func TestAddIsIdempotentForAlreadyIDedObject(t *testing.T) {
	s := New("main", newTestCamera())
	a := &fakeObject{id: 7}
	if got := s.Add(a); got != 7 {
		t.Fatalf("Add preserved ID = %d, want 7", got)
	}
	if s.Get(7) != a {
		t.Fatal("expected Get(7) to return the registered object")
	}
}

func TestRemoveDropsFromRegistry(t *testing.T) {
	s := New("main", newTestCamera())
	a := &fakeObject{}
	id := s.Add(a)
	s.Remove(id)
	if s.Count() != 0 {
		t.Fatalf("Count() = %d after Remove, want 0", s.Count())
	}
}

func TestCollideListIncludesEveryRegisteredObject(t *testing.T) {
	s := New("main", newTestCamera())
	s.Add(&fakeObject{})
	s.Add(&fakeObject{})

	pool := collidelist.NewPool()
	list := s.CollideList(pool)
	if len(list.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(list.Entries))
	}
}

func TestLightCollideListMarksCameraInsideForPointLightAtEye(t *testing.T) {
	cam := newTestCamera() // eye at (0, 0, 10)
	s := New("main", cam)

	inside := light.NewLight(light.LightTypePoint, light.WithPosition(0, 0, 10), light.WithRange(5))
	outside := light.NewLight(light.LightTypePoint, light.WithPosition(100, 0, 0), light.WithRange(5))
	s.AddLight(inside)
	s.AddLight(outside)

	pool := collidelist.NewPool()
	list := s.LightCollideList(pool)
	if len(list.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(list.Entries))
	}

	var sawInside, sawOutside bool
	for _, e := range list.Entries {
		lo, ok := e.Object.(interface{ Light() light.Light })
		if !ok {
			t.Fatal("expected every entry's Object to expose a Light accessor")
		}
		switch lo.Light() {
		case inside:
			sawInside = true
			if !e.CameraInside {
				t.Fatal("expected CameraInside for the light whose volume contains the eye")
			}
		case outside:
			sawOutside = true
			if e.CameraInside {
				t.Fatal("expected !CameraInside for the light whose volume does not contain the eye")
			}
		}
	}
	if !sawInside || !sawOutside {
		t.Fatal("expected both registered lights to appear in the light collide list")
	}
}

func TestRenderPlanRequiresCamera(t *testing.T) {
	s := New("main", nil)
	if _, err := s.RenderPlan([2]uint32{800, 600}, &collidelist.List{}, &collidelist.List{}); err == nil {
		t.Fatal("expected an error when the scene has no camera")
	}
}

func TestRenderPlanCarriesCameraMatrices(t *testing.T) {
	cam := newTestCamera()
	s := New("main", cam)
	frame, err := s.RenderPlan([2]uint32{800, 600}, &collidelist.List{}, &collidelist.List{})
	if err != nil {
		t.Fatalf("RenderPlan: %v", err)
	}
	if frame.ViewMatrix != cam.ViewMatrix() {
		t.Fatal("expected RenderPlan to carry the camera's current view matrix")
	}
	if frame.Viewport != [2]uint32{800, 600} {
		t.Fatalf("Viewport = %v, want {800, 600}", frame.Viewport)
	}
}
