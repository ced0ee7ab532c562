package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solidSnapshot(name string, width, height int, r, g, b, a byte) TextureSnapshot {
	pixels := make([]byte, width*height*4)
	for i := 0; i < width*height; i++ {
		pixels[i*4+0] = r
		pixels[i*4+1] = g
		pixels[i*4+2] = b
		pixels[i*4+3] = a
	}
	return TextureSnapshot{Name: name, Width: width, Height: height, Pixels: pixels}
}

func TestDumpPNGRejectsMismatchedPixelLength(t *testing.T) {
	snap := TextureSnapshot{Name: "bad", Width: 4, Height: 4, Pixels: []byte{1, 2, 3}}
	if err := DumpPNG(t.TempDir(), snap, 0); err == nil {
		t.Fatal("expected an error for a pixel buffer of the wrong length")
	}
}

func TestDumpPNGWritesReadableFile(t *testing.T) {
	dir := t.TempDir()
	snap := solidSnapshot("albedo", 8, 8, 200, 100, 50, 255)
	if err := DumpPNG(dir, snap, 0); err != nil {
		t.Fatalf("DumpPNG: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "albedo.png"))
	if err != nil {
		t.Fatalf("open dumped png: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode dumped png: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("decoded image is %dx%d, want 8x8", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDumpPNGDownscalesToMaxDimension(t *testing.T) {
	dir := t.TempDir()
	snap := solidSnapshot("shadow_tier", 256, 128, 10, 20, 30, 255)
	if err := DumpPNG(dir, snap, 64); err != nil {
		t.Fatalf("DumpPNG: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "shadow_tier.png"))
	if err != nil {
		t.Fatalf("open dumped png: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode dumped png: %v", err)
	}
	if img.Bounds().Dx() > 64 || img.Bounds().Dy() > 64 {
		t.Fatalf("decoded image is %dx%d, want both dimensions <= 64", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestHeatmapClampsOutOfRangeValues(t *testing.T) {
	snap := Heatmap("pyramid_level_0", 2, 1, []float32{-5, 50}, 0, 10)
	if snap.Pixels[0] != 0 {
		t.Fatalf("expected the below-range value to clamp to 0, got %d", snap.Pixels[0])
	}
	if snap.Pixels[4] != 255 {
		t.Fatalf("expected the above-range value to clamp to 255, got %d", snap.Pixels[4])
	}
}
