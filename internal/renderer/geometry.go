package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Floats per interleaved vertex: position(3) normal(3) uv(2) uv2(2).
const vertexStride = 10

type Geometry struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	// Second UV channel, sampled by the ambient occlusion map.
	UV2s    []float32
	Indices []uint32

	// GPU buffers, created lazily by the renderer.
	vao, vbo, ebo uint32
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// SetUV2FromUV copies the primary UV channel into the second one.
func (g *Geometry) SetUV2FromUV() {
	g.UV2s = append(g.UV2s[:0], g.UVs...)
}

// Interleaved packs the attributes into a single buffer. A missing second
// UV channel is filled from the first.
func (g *Geometry) Interleaved() []float32 {
	n := g.VertexCount()
	data := make([]float32, 0, n*vertexStride)
	uv2 := g.UV2s
	if len(uv2) != len(g.UVs) {
		uv2 = g.UVs
	}
	for i := 0; i < n; i++ {
		data = append(data, g.Positions[i*3:i*3+3]...)
		data = append(data, g.Normals[i*3:i*3+3]...)
		data = append(data, g.UVs[i*2:i*2+2]...)
		data = append(data, uv2[i*2:i*2+2]...)
	}
	return data
}

// NewSphereGeometry builds a UV sphere centred on the origin.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{}
	grid := make([][]uint32, 0, heightSegments+1)
	var index uint32

	for iy := 0; iy <= heightSegments; iy++ {
		row := make([]uint32, 0, widthSegments+1)
		v := float32(iy) / float32(heightSegments)

		// Poles get a half step offset so the texture does not pinch.
		uOffset := float32(0)
		if iy == 0 {
			uOffset = 0.5 / float32(widthSegments)
		} else if iy == heightSegments {
			uOffset = -0.5 / float32(widthSegments)
		}

		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)

			x := -radius * math32.Cos(u*2*math32.Pi) * math32.Sin(v*math32.Pi)
			y := radius * math32.Cos(v*math32.Pi)
			z := radius * math32.Sin(u*2*math32.Pi) * math32.Sin(v*math32.Pi)

			normal := mgl32.Vec3{x, y, z}.Normalize()

			g.Positions = append(g.Positions, x, y, z)
			g.Normals = append(g.Normals, normal[0], normal[1], normal[2])
			g.UVs = append(g.UVs, u+uOffset, 1-v)

			row = append(row, index)
			index++
		}
		grid = append(grid, row)
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

type boxFace struct {
	normal, u, v mgl32.Vec3
	// extents along u, v and the normal
	du, dv, dn float32
}

// NewBoxGeometry builds an axis aligned box with one quad per side.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	faces := []boxFace{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, depth, height, width},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}, depth, height, width},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, width, depth, height},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, width, depth, height},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, width, height, depth},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}, width, height, depth},
	}

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	g := &Geometry{}

	for _, f := range faces {
		base := uint32(g.VertexCount())
		center := f.normal.Mul(f.dn / 2)
		for _, c := range corners {
			p := center.Add(f.u.Mul(c[0] * f.du / 2)).Add(f.v.Mul(c[1] * f.dv / 2))
			g.Positions = append(g.Positions, p[0], p[1], p[2])
			g.Normals = append(g.Normals, f.normal[0], f.normal[1], f.normal[2])
			g.UVs = append(g.UVs, (c[0]+1)/2, (c[1]+1)/2)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}
