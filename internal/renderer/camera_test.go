package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewPerspectiveCamera(t *testing.T) {
	cam := NewPerspectiveCamera(75, 4.0/3.0, 0.1, 2000)

	want := mgl32.Perspective(mgl32.DegToRad(75), 4.0/3.0, 0.1, 2000)
	if !cam.GetProjectionMatrix().ApproxEqual(want) {
		t.Error("Projection should be built on construction")
	}
	if cam.Up != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected +Y up, got %v", cam.Up)
	}
}

func TestCameraSetAspectRatio(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1024.0/768.0, 0.1, 2000)
	cam.SetAspectRatio(1920.0 / 1080.0)

	if cam.Aspect != float32(1920.0/1080.0) {
		t.Errorf("Expected aspect %f, got %f", 1920.0/1080.0, cam.Aspect)
	}
	want := mgl32.Perspective(mgl32.DegToRad(75), 1920.0/1080.0, 0.1, 2000)
	if !cam.Projection.ApproxEqual(want) {
		t.Error("SetAspectRatio should rebuild the projection")
	}
}

func TestCameraZeroAspect(t *testing.T) {
	cam := NewPerspectiveCamera(75, 0, 0.1, 2000)

	want := mgl32.Perspective(mgl32.DegToRad(75), 1, 0.1, 2000)
	if !cam.Projection.ApproxEqual(want) {
		t.Error("A zero aspect should fall back to 1")
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 100)
	cam.SetPosition(0, 0, 3)
	cam.LookAt(mgl32.Vec3{})

	origin := cam.GetViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !near(origin.Vec3(), mgl32.Vec3{0, 0, -3}) {
		t.Errorf("Target should be straight ahead at distance 3, got %v", origin)
	}
}

func TestCameraViewWhenOnTarget(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 100)
	cam.LookAt(cam.Position)

	view := cam.GetViewMatrix()
	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should stay valid when the camera sits on its target")
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 100)
	cam.SetPosition(0, 0, 3)

	want := cam.GetProjectionMatrix().Mul4(cam.GetViewMatrix())
	if !cam.GetViewProjection().ApproxEqual(want) {
		t.Error("ViewProjection should be projection * view")
	}
}
