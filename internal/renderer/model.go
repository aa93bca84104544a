package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// StandardMaterial is a metalness/roughness PBR material. Scalars multiply
// the matching map channels: metalness reads blue, roughness reads green.
type StandardMaterial struct {
	// HOT DATA - read for every draw
	Color             mgl32.Vec3
	Metalness         float32
	Roughness         float32
	AOMapIntensity    float32
	DisplacementScale float32
	DisplacementBias  float32
	NormalScale       float32

	Map             *Texture
	AOMap           *Texture
	DisplacementMap *Texture
	MetalnessMap    *Texture
	RoughnessMap    *Texture
	NormalMap       *Texture

	// COLD DATA
	Name string
}

func NewStandardMaterial(name string) *StandardMaterial {
	return &StandardMaterial{
		Name:              name,
		Color:             mgl32.Vec3{1, 1, 1},
		Metalness:         0,
		Roughness:         1,
		AOMapIntensity:    1,
		DisplacementScale: 1,
		NormalScale:       1,
	}
}

// Textures lists the maps that are set, in texture unit order.
func (m *StandardMaterial) Textures() []*Texture {
	var out []*Texture
	for _, t := range []*Texture{m.Map, m.AOMap, m.DisplacementMap, m.MetalnessMap, m.RoughnessMap, m.NormalMap} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

type Mesh struct {
	Object3D
	Geometry *Geometry
	Material *StandardMaterial
}

func NewMesh(name string, geometry *Geometry, material *StandardMaterial) *Mesh {
	return &Mesh{
		Object3D: NewObject3D(name),
		Geometry: geometry,
		Material: material,
	}
}

// AxesHelper draws the X (red), Y (green) and Z (blue) axes.
type AxesHelper struct {
	Object3D
	Size float32

	vao, vbo uint32
}

func NewAxesHelper(size float32) *AxesHelper {
	return &AxesHelper{Object3D: NewObject3D("axes"), Size: size}
}

// LineVertices returns position(3) color(3) pairs for three line segments.
func (a *AxesHelper) LineVertices() []float32 {
	s := a.Size
	return []float32{
		0, 0, 0, 1, 0, 0, s, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 1, 0, 0, s, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 1, 0, 0, s, 0, 0, 1,
	}
}

// ColorHex converts 0xRRGGBB to a linear RGB triple in [0,1].
func ColorHex(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}
