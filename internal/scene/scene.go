// Package scene builds the PBR showcase: a textured sphere over a textured
// ground slab, lit by an ambient light and a handful of point lights.
package scene

import (
	"PBRShowcase/internal/config"
	"PBRShowcase/internal/renderer"
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereRadius   = 1
	sphereSegments = 128

	displacementScale = 0.25
	aoMapIntensity    = 1

	axesSize = 2

	cameraNear = 0.1
	cameraFar  = 2000
)

// Textures holds the six maps of one surface. Any of them may be nil.
type Textures struct {
	Map          *renderer.Texture
	AOMap        *renderer.Texture
	Displacement *renderer.Texture
	Metalness    *renderer.Texture
	Roughness    *renderer.Texture
	Normal       *renderer.Texture
}

// TextureSource hands out texture handles by path.
type TextureSource interface {
	Load(path string) *renderer.Texture
}

// LoadTextureSet starts loading every map of set.
func LoadTextureSet(src TextureSource, set config.TextureSet) Textures {
	load := func(path string) *renderer.Texture {
		if path == "" {
			return nil
		}
		return src.Load(path)
	}
	return Textures{
		Map:          load(set.BaseColor),
		AOMap:        load(set.AmbientOcclusion),
		Displacement: load(set.Height),
		Metalness:    load(set.Metallic),
		Roughness:    load(set.Roughness),
		Normal:       load(set.Normal),
	}
}

func (t Textures) apply(m *renderer.StandardMaterial) {
	m.Map = t.Map
	m.AOMap = t.AOMap
	m.AOMapIntensity = aoMapIntensity
	m.DisplacementMap = t.Displacement
	m.DisplacementScale = displacementScale
	m.MetalnessMap = t.Metalness
	m.RoughnessMap = t.Roughness
	m.NormalMap = t.Normal
}

// Showcase is the built scene plus handles to the parts other code animates
// or edits.
type Showcase struct {
	Scene          *renderer.Scene
	Camera         *renderer.PerspectiveCamera
	Sphere         *renderer.Mesh
	SphereMaterial *renderer.StandardMaterial
	Plane          *renderer.Mesh
	PlaneMaterial  *renderer.StandardMaterial
	Ambient        *renderer.AmbientLight
	Lights         []*renderer.PointLight
	Axes           *renderer.AxesHelper
}

// Build assembles the scene graph. rng places the point lights.
func Build(cfg config.SceneConfig, sphere, plane Textures, aspect float32, rng *rand.Rand) *Showcase {
	s := &Showcase{Scene: renderer.NewScene()}
	white := renderer.ColorHex(0xffffff)

	s.Ambient = renderer.NewAmbientLight(white, cfg.AmbientIntensity)
	s.Scene.Add(s.Ambient)

	for i := 0; i < cfg.PointLights; i++ {
		light := renderer.NewPointLight(white, cfg.PointIntensity)
		light.SetPosition(
			cfg.LightSpread*rng.Float32(),
			cfg.LightSpread*rng.Float32(),
			cfg.LightSpread*rng.Float32(),
		)
		s.Lights = append(s.Lights, light)
		s.Scene.Add(light)
	}

	sphereGeometry := renderer.NewSphereGeometry(sphereRadius, sphereSegments, sphereSegments)
	sphereGeometry.SetUV2FromUV()
	s.SphereMaterial = renderer.NewStandardMaterial("sphere")
	sphere.apply(s.SphereMaterial)
	s.Sphere = renderer.NewMesh("sphere", sphereGeometry, s.SphereMaterial)

	s.PlaneMaterial = renderer.NewStandardMaterial("plane")
	plane.apply(s.PlaneMaterial)
	s.Plane = renderer.NewMesh("plane", renderer.NewBoxGeometry(10, 10, 1), s.PlaneMaterial)
	s.Plane.SetPosition(0, -1.75, 0)
	s.Plane.RotateX(-math32.Pi / 2)

	s.Scene.Add(s.Sphere, s.Plane)

	s.Axes = renderer.NewAxesHelper(axesSize)
	s.Scene.Add(s.Axes)

	s.Camera = renderer.NewPerspectiveCamera(cfg.CameraFov, aspect, cameraNear, cameraFar)
	s.Camera.SetPosition(0, 0, cfg.CameraDistance)
	s.Camera.LookAt(mgl32.Vec3{})
	s.Scene.Add(s.Camera)

	return s
}

// NewRand returns the generator for light placement. Seed 0 means a time
// based seed, so every run looks different.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
