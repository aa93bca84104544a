package scene

import (
	"PBRShowcase/internal/config"
	"PBRShowcase/internal/renderer"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeSource struct {
	paths []string
}

func (f *fakeSource) Load(path string) *renderer.Texture {
	f.paths = append(f.paths, path)
	return renderer.NewTexture(path)
}

func buildDefault(t *testing.T, seed int64) *Showcase {
	t.Helper()
	cfg := config.Default()
	src := &fakeSource{}
	sphere := LoadTextureSet(src, cfg.Assets.Sphere)
	plane := LoadTextureSet(src, cfg.Assets.Plane)
	return Build(cfg.Scene, sphere, plane, 1024.0/768.0, NewRand(seed))
}

func TestLoadTextureSet(t *testing.T) {
	src := &fakeSource{}
	set := config.Default().Assets.Sphere

	textures := LoadTextureSet(src, set)

	if len(src.paths) != 6 {
		t.Fatalf("Expected 6 loads, got %d", len(src.paths))
	}
	if textures.Displacement.Path != set.Height {
		t.Errorf("Expected the height map as displacement, got %s", textures.Displacement.Path)
	}
	if textures.Metalness.Path != set.Metallic {
		t.Errorf("Expected the metallic map, got %s", textures.Metalness.Path)
	}
}

func TestLoadTextureSetSkipsEmptyPaths(t *testing.T) {
	src := &fakeSource{}
	textures := LoadTextureSet(src, config.TextureSet{BaseColor: "a.jpg"})

	if len(src.paths) != 1 {
		t.Errorf("Expected 1 load, got %d", len(src.paths))
	}
	if textures.Normal != nil {
		t.Error("Expected no normal map")
	}
}

func TestBuildLights(t *testing.T) {
	s := buildDefault(t, 42)

	if s.Ambient.Intensity != 0.7 {
		t.Errorf("Expected ambient intensity 0.7, got %f", s.Ambient.Intensity)
	}
	if len(s.Lights) != 5 {
		t.Fatalf("Expected 5 point lights, got %d", len(s.Lights))
	}
	for i, l := range s.Lights {
		if l.Intensity != 0.25 {
			t.Errorf("Light %d: expected intensity 0.25, got %f", i, l.Intensity)
		}
		for axis := 0; axis < 3; axis++ {
			if p := l.Position[axis]; p < 0 || p >= 10 {
				t.Errorf("Light %d: coordinate %f outside [0,10)", i, p)
			}
		}
	}
}

func TestBuildSeededLightsAreReproducible(t *testing.T) {
	a := buildDefault(t, 7)
	b := buildDefault(t, 7)
	c := buildDefault(t, 8)

	same := true
	for i := range a.Lights {
		if a.Lights[i].Position != b.Lights[i].Position {
			t.Errorf("Light %d differs for the same seed", i)
		}
		if a.Lights[i].Position != c.Lights[i].Position {
			same = false
		}
	}
	if same {
		t.Error("Different seeds should place lights differently")
	}
}

func TestBuildSphere(t *testing.T) {
	s := buildDefault(t, 1)

	g := s.Sphere.Geometry
	if g.VertexCount() != 129*129 {
		t.Errorf("Expected 129*129 vertices, got %d", g.VertexCount())
	}
	if len(g.UV2s) != len(g.UVs) {
		t.Error("Expected the sphere UVs to be copied to the second channel")
	}

	m := s.SphereMaterial
	if s.Sphere.Material != m {
		t.Error("Sphere should use SphereMaterial")
	}
	if m.DisplacementScale != 0.25 || m.AOMapIntensity != 1 {
		t.Errorf("Expected displacement 0.25 and AO intensity 1, got %f and %f", m.DisplacementScale, m.AOMapIntensity)
	}
	if len(m.Textures()) != 6 {
		t.Errorf("Expected 6 maps, got %d", len(m.Textures()))
	}
	if m.Map.Path != "/generative/Abstract_011_basecolor.jpg" {
		t.Errorf("Unexpected base color map %s", m.Map.Path)
	}
}

func TestBuildPlane(t *testing.T) {
	s := buildDefault(t, 1)

	if s.Plane.Position != (mgl32.Vec3{0, -1.75, 0}) {
		t.Errorf("Expected plane at (0, -1.75, 0), got %v", s.Plane.Position)
	}
	if math32.Abs(s.Plane.Rotation.X()+math32.Pi/2) > 1e-6 {
		t.Errorf("Expected plane rotated -pi/2 about X, got %f", s.Plane.Rotation.X())
	}
	if s.Plane.Geometry.VertexCount() != 24 {
		t.Errorf("Expected a box geometry, got %d vertices", s.Plane.Geometry.VertexCount())
	}
	if s.PlaneMaterial.Map.Path != "/metal/Metal_scratched_009_basecolor.jpg" {
		t.Errorf("Unexpected plane base color map %s", s.PlaneMaterial.Map.Path)
	}
}

func TestBuildCamera(t *testing.T) {
	s := buildDefault(t, 1)
	cam := s.Camera

	if cam.Fov != 75 || cam.Near != 0.1 || cam.Far != 2000 {
		t.Errorf("Expected fov 75 near 0.1 far 2000, got %f %f %f", cam.Fov, cam.Near, cam.Far)
	}
	if cam.Aspect != float32(1024.0/768.0) {
		t.Errorf("Expected aspect %f, got %f", 1024.0/768.0, cam.Aspect)
	}
	if cam.Position != (mgl32.Vec3{0, 0, 3}) {
		t.Errorf("Expected camera at z=3, got %v", cam.Position)
	}
	if cam.Parent() != &s.Scene.Object3D {
		t.Error("Camera should be part of the scene")
	}
}

func TestBuildGraph(t *testing.T) {
	s := buildDefault(t, 1)

	counts := map[string]int{}
	s.Scene.Traverse(func(n renderer.Node) {
		switch n.(type) {
		case *renderer.Mesh:
			counts["mesh"]++
		case *renderer.PointLight:
			counts["point"]++
		case *renderer.AmbientLight:
			counts["ambient"]++
		case *renderer.AxesHelper:
			counts["axes"]++
		case *renderer.PerspectiveCamera:
			counts["camera"]++
		}
	})

	want := map[string]int{"mesh": 2, "point": 5, "ambient": 1, "axes": 1, "camera": 1}
	for kind, n := range want {
		if counts[kind] != n {
			t.Errorf("Expected %d %s nodes, got %d", n, kind, counts[kind])
		}
	}
	if s.Axes.Size != 2 {
		t.Errorf("Expected axes size 2, got %f", s.Axes.Size)
	}
}
