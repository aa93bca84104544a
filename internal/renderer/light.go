package renderer

import "github.com/go-gl/mathgl/mgl32"

// MaxPointLights is the size of the point light array in the PBR shader.
// Extra lights are ignored.
const MaxPointLights = 8

type AmbientLight struct {
	Object3D
	Color     mgl32.Vec3
	Intensity float32
}

func NewAmbientLight(color mgl32.Vec3, intensity float32) *AmbientLight {
	return &AmbientLight{
		Object3D:  NewObject3D("ambient"),
		Color:     color,
		Intensity: intensity,
	}
}

type PointLight struct {
	Object3D
	Color     mgl32.Vec3
	Intensity float32
	// Distance 0 means no cutoff and no attenuation.
	Distance float32
	Decay    float32
}

func NewPointLight(color mgl32.Vec3, intensity float32) *PointLight {
	return &PointLight{
		Object3D:  NewObject3D("point"),
		Color:     color,
		Intensity: intensity,
		Decay:     1,
	}
}

// lightSet is what the PBR shader consumes for one frame.
type lightSet struct {
	ambient mgl32.Vec3
	points  []*PointLight
}

func collectLights(scene *Scene) lightSet {
	var set lightSet
	scene.Traverse(func(n Node) {
		if !n.Object().Visible {
			return
		}
		switch l := n.(type) {
		case *AmbientLight:
			set.ambient = set.ambient.Add(l.Color.Mul(l.Intensity))
		case *PointLight:
			if len(set.points) < MaxPointLights {
				set.points = append(set.points, l)
			}
		}
	})
	return set
}
