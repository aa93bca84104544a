// camera.go
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

type PerspectiveCamera struct {
	Object3D

	// HOT DATA - read every frame for view/projection
	Projection mgl32.Mat4 // Rebuilt by UpdateProjectionMatrix
	Up         mgl32.Vec3 // World up vector
	target     mgl32.Vec3

	// COLD DATA - only changes on resize or configuration
	Fov    float32 // Vertical field of view in degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	camera := &PerspectiveCamera{
		Object3D: NewObject3D("camera"),
		Up:       mgl32.Vec3{0, 1, 0},
		target:   mgl32.Vec3{0, 0, -1},
		Fov:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	camera.UpdateProjectionMatrix()
	return camera
}

// UpdateProjectionMatrix must be called after changing Fov, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// Setter methods that automatically update projection
func (c *PerspectiveCamera) SetAspectRatio(aspect float32) {
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

func (c *PerspectiveCamera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjectionMatrix()
}

// LookAt points the camera at a world space target. The camera keeps looking
// at it when moved until LookAt is called again.
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	c.target = target
}

func (c *PerspectiveCamera) Target() mgl32.Vec3 {
	return c.target
}

func (c *PerspectiveCamera) GetViewMatrix() mgl32.Mat4 {
	eye := c.Position
	if c.target.ApproxEqual(eye) {
		return mgl32.LookAtV(eye, eye.Add(mgl32.Vec3{0, 0, -1}), c.Up)
	}
	return mgl32.LookAtV(eye, c.target, c.Up)
}

func (c *PerspectiveCamera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *PerspectiveCamera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}
