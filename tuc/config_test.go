package tuc

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestKeyIsOrderIndependent(t *testing.T) {
	tv := &wgpu.TextureView{}
	s := &wgpu.Sampler{}

	a := Config{Slots: []Slot{{Binding: 0, TextureView: tv}, {Binding: 1, Sampler: s}}}
	b := Config{Slots: []Slot{{Binding: 1, Sampler: s}, {Binding: 0, TextureView: tv}}}

	if a.Key() != b.Key() {
		t.Fatalf("Key() not order-independent: %q != %q", a.Key(), b.Key())
	}
}

func TestKeyDiffersOnDifferentResource(t *testing.T) {
	tv1 := &wgpu.TextureView{}
	tv2 := &wgpu.TextureView{}

	a := Config{Slots: []Slot{{Binding: 0, TextureView: tv1}}}
	b := Config{Slots: []Slot{{Binding: 0, TextureView: tv2}}}

	if a.Key() == b.Key() {
		t.Fatal("expected different keys for different texture view identities")
	}
}
