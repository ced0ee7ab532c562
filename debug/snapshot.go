package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// TextureSnapshot is one readback of a GPU texture's pixels: tightly
// packed RGBA8 rows, used for DisplayTexture/DisplayArrayTextureLayer-style
// visual dumps without depending on any particular GPU backend.
type TextureSnapshot struct {
	Name          string
	Width, Height int
	Pixels        []byte // len == Width*Height*4, row-major RGBA8
}

// image converts the snapshot into a stdlib image.Image for encoding.
func (s TextureSnapshot) image() *image.RGBA {
	img := &image.RGBA{
		Pix:    s.Pixels,
		Stride: s.Width * 4,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
	return img
}

// DumpPNG writes snapshot to dir/<name>.png, generalizing
// deoglRenderDebug.h's DisplayTexture/DisplayArrayTextureLayer on-screen
// debug views into an on-disk dump any headless test or CI run can inspect.
// maxDimension caps the longer side of the output image, downscaling with
// a high-quality Catmull-Rom filter when the source exceeds it — shadow
// cache tiers and G-buffer targets are often larger than is useful to eyeball
// at full resolution. A maxDimension of 0 disables downscaling.
func DumpPNG(dir string, snapshot TextureSnapshot, maxDimension int) error {
	if len(snapshot.Pixels) != snapshot.Width*snapshot.Height*4 {
		return fmt.Errorf("debug: snapshot %q has %d bytes, want %d for a %dx%d RGBA8 image",
			snapshot.Name, len(snapshot.Pixels), snapshot.Width*snapshot.Height*4, snapshot.Width, snapshot.Height)
	}

	src := snapshot.image()
	out := image.Image(src)

	if maxDimension > 0 && (snapshot.Width > maxDimension || snapshot.Height > maxDimension) {
		scaled := scaleToFit(src, maxDimension)
		out = scaled
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("debug: creating snapshot directory: %w", err)
	}

	path := filepath.Join(dir, snapshot.Name+".png")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debug: creating snapshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("debug: encoding snapshot png: %w", err)
	}
	return nil
}

func scaleToFit(src *image.RGBA, maxDimension int) *image.RGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := float64(maxDimension) / float64(w)
	if hScale := float64(maxDimension) / float64(h); hScale < scale {
		scale = hScale
	}

	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// Heatmap renders values (row-major, len == width*height) as a grayscale
// RGBA8 TextureSnapshot, scaling each value by the range [lo, hi] — used to
// dump the occlusion Z-pyramid's reduced levels or a shadow cache tier's
// depth contents as a viewable image.
func Heatmap(name string, width, height int, values []float32, lo, hi float32) TextureSnapshot {
	pixels := make([]byte, width*height*4)
	span := hi - lo
	for i, v := range values {
		t := float32(0)
		if span != 0 {
			t = (v - lo) / span
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		c := color.Gray{Y: uint8(t * 255)}
		pixels[i*4+0] = c.Y
		pixels[i*4+1] = c.Y
		pixels[i*4+2] = c.Y
		pixels[i*4+3] = 255
	}
	return TextureSnapshot{Name: name, Width: width, Height: height, Pixels: pixels}
}
