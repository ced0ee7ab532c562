package shapes

import (
	"math"

	"github.com/kestrelrender/kestrel/engine/model"
)

// Box generates a unit cube centered on the origin with per-face normals
// and UVs, suitable for instanced prop rendering.
func Box() ([]model.GPUVertex, []uint32) {
	faces := []struct {
		normal   [3]float32
		tangent  [3]float32
		corners  [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [4][3]float32{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [4][3]float32{{.5, -.5, -.5}, {-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}}},
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [4][3]float32{{.5, -.5, .5}, {.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [4][3]float32{{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [4][3]float32{{-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [4][3]float32{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}}},
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	var verts []model.GPUVertex
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(verts))
		for i, c := range f.corners {
			verts = append(verts, model.GPUVertex{
				Position: c,
				Normal:   f.normal,
				TexCoord: uvs[i],
				Color:    [4]float32{1, 1, 1, 1},
				Tangent:  [4]float32{f.tangent[0], f.tangent[1], f.tangent[2], 1},
			})
		}
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return verts, indices
}

// Sphere generates a UV sphere of unit radius centered on the origin with
// latBands latitude bands and lonBands longitude bands. Used both for
// prop rendering and as the point-light volume mesh.
func Sphere(latBands, lonBands int) func() ([]model.GPUVertex, []uint32) {
	return func() ([]model.GPUVertex, []uint32) {
		var verts []model.GPUVertex
		for lat := 0; lat <= latBands; lat++ {
			theta := float64(lat) * math.Pi / float64(latBands)
			sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
			for lon := 0; lon <= lonBands; lon++ {
				phi := float64(lon) * 2 * math.Pi / float64(lonBands)
				sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

				x := float32(cosPhi * sinTheta)
				y := float32(cosTheta)
				z := float32(sinPhi * sinTheta)
				u := float32(lon) / float32(lonBands)
				v := float32(lat) / float32(latBands)

				verts = append(verts, model.GPUVertex{
					Position: [3]float32{x, y, z},
					Normal:   [3]float32{x, y, z},
					TexCoord: [2]float32{u, v},
					Color:    [4]float32{1, 1, 1, 1},
					Tangent:  [4]float32{-float32(sinPhi), 0, float32(cosPhi), 1},
				})
			}
		}

		var indices []uint32
		stride := uint32(lonBands + 1)
		for lat := 0; lat < latBands; lat++ {
			for lon := 0; lon < lonBands; lon++ {
				first := uint32(lat)*stride + uint32(lon)
				second := first + stride
				indices = append(indices,
					first, second, first+1,
					second, second+1, first+1,
				)
			}
		}
		return verts, indices
	}
}

// Cylinder generates a unit-radius, unit-height cylinder centered on the
// origin with segments radial subdivisions.
func Cylinder(segments int) func() ([]model.GPUVertex, []uint32) {
	return func() ([]model.GPUVertex, []uint32) {
		var verts []model.GPUVertex
		var indices []uint32

		for i := 0; i <= segments; i++ {
			theta := float64(i) * 2 * math.Pi / float64(segments)
			x, z := float32(math.Cos(theta)), float32(math.Sin(theta))
			u := float32(i) / float32(segments)

			verts = append(verts,
				model.GPUVertex{Position: [3]float32{x, -.5, z}, Normal: [3]float32{x, 0, z}, TexCoord: [2]float32{u, 0}, Color: [4]float32{1, 1, 1, 1}, Tangent: [4]float32{-z, 0, x, 1}},
				model.GPUVertex{Position: [3]float32{x, .5, z}, Normal: [3]float32{x, 0, z}, TexCoord: [2]float32{u, 1}, Color: [4]float32{1, 1, 1, 1}, Tangent: [4]float32{-z, 0, x, 1}},
			)
		}
		for i := 0; i < segments; i++ {
			b := uint32(i) * 2
			indices = append(indices,
				b, b+1, b+2,
				b+1, b+3, b+2,
			)
		}
		return verts, indices
	}
}

// Capsule generates a capsule (cylinder with hemispherical caps) of unit
// radius and the given cylindrical height, used for character-sized
// collision/debug volumes.
func Capsule(height float32, segments, rings int) func() ([]model.GPUVertex, []uint32) {
	return func() ([]model.GPUVertex, []uint32) {
		var verts []model.GPUVertex
		halfHeight := height * 0.5

		emitRing := func(yOffset float32, theta float64) {
			sinT, cosT := math.Sin(theta), math.Cos(theta)
			for i := 0; i <= segments; i++ {
				phi := float64(i) * 2 * math.Pi / float64(segments)
				sinP, cosP := math.Sin(phi), math.Cos(phi)
				x := float32(cosP * sinT)
				y := float32(cosT)
				z := float32(sinP * sinT)
				verts = append(verts, model.GPUVertex{
					Position: [3]float32{x, y + yOffset, z},
					Normal:   [3]float32{x, y, z},
					TexCoord: [2]float32{float32(i) / float32(segments), 0},
					Color:    [4]float32{1, 1, 1, 1},
					Tangent:  [4]float32{-float32(sinP), 0, float32(cosP), 1},
				})
			}
		}

		for r := 0; r <= rings; r++ {
			theta := float64(r) * (math.Pi / 2) / float64(rings)
			emitRing(halfHeight, theta)
		}
		for r := 0; r <= rings; r++ {
			theta := math.Pi/2 + float64(r)*(math.Pi/2)/float64(rings)
			emitRing(-halfHeight, theta)
		}

		stride := uint32(segments + 1)
		totalRings := uint32(2*rings + 2)
		var indices []uint32
		for ring := uint32(0); ring < totalRings-1; ring++ {
			for i := uint32(0); i < uint32(segments); i++ {
				first := ring*stride + i
				second := first + stride
				indices = append(indices,
					first, second, first+1,
					second, second+1, first+1,
				)
			}
		}
		return verts, indices
	}
}

// SpotCone generates the light-volume mesh for spot and projector lights: a
// cone apexed at the origin pointing down -Y with the given outer
// half-angle in radians and unit range; callers scale it by the light's
// actual range and rotate it to the light's direction.
func SpotCone(outerHalfAngle float32, segments int) func() ([]model.GPUVertex, []uint32) {
	return func() ([]model.GPUVertex, []uint32) {
		radius := float32(math.Tan(float64(outerHalfAngle)))
		var verts []model.GPUVertex
		verts = append(verts, model.GPUVertex{
			Position: [3]float32{0, 0, 0},
			Normal:   [3]float32{0, 1, 0},
			TexCoord: [2]float32{.5, .5},
			Color:    [4]float32{1, 1, 1, 1},
			Tangent:  [4]float32{1, 0, 0, 1},
		})
		for i := 0; i <= segments; i++ {
			theta := float64(i) * 2 * math.Pi / float64(segments)
			x := radius * float32(math.Cos(theta))
			z := radius * float32(math.Sin(theta))
			n := normalize3(x, -1, z)
			verts = append(verts, model.GPUVertex{
				Position: [3]float32{x, -1, z},
				Normal:   n,
				TexCoord: [2]float32{float32(i) / float32(segments), 0},
				Color:    [4]float32{1, 1, 1, 1},
				Tangent:  [4]float32{1, 0, 0, 1},
			})
		}
		var indices []uint32
		for i := uint32(1); i <= uint32(segments); i++ {
			indices = append(indices, 0, i, i+1)
		}
		return verts, indices
	}
}

func normalize3(x, y, z float32) [3]float32 {
	l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if l == 0 {
		return [3]float32{0, 0, 0}
	}
	return [3]float32{x / l, y / l, z / l}
}
