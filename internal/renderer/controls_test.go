package renderer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func newTestControls() (*OrbitControls, *PerspectiveCamera) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 2000)
	cam.SetPosition(0, 0, 3)
	return NewOrbitControls(cam), cam
}

func TestOrbitControlsUpdateWithoutInput(t *testing.T) {
	controls, cam := newTestControls()

	if controls.Update() {
		t.Error("Update without input should not move the camera")
	}
	if !near(cam.Position, mgl32.Vec3{0, 0, 3}) {
		t.Errorf("Expected camera at (0,0,3), got %v", cam.Position)
	}
	if cam.Target() != controls.Target {
		t.Error("Camera should look at the controls target")
	}
}

func TestOrbitControlsZoom(t *testing.T) {
	controls, _ := newTestControls()

	controls.Zoom(1)
	controls.Update()
	if d := controls.Distance(); d >= 3 {
		t.Errorf("Zooming in should move closer, distance %f", d)
	}

	controls.Zoom(-2)
	controls.Update()
	if d := controls.Distance(); d <= 3 {
		t.Errorf("Zooming out should move away, distance %f", d)
	}
}

func TestOrbitControlsDistanceClamp(t *testing.T) {
	controls, _ := newTestControls()
	controls.MaxDistance = 4

	controls.Zoom(-100)
	controls.Update()

	if d := controls.Distance(); math32.Abs(d-4) > 1e-4 {
		t.Errorf("Expected distance clamped to 4, got %f", d)
	}
}

func TestOrbitControlsRotateKeepsDistance(t *testing.T) {
	controls, cam := newTestControls()
	controls.SetViewportHeight(600)

	controls.BeginRotate(100, 100)
	controls.Drag(250, 180)
	controls.End()
	moved := controls.Update()

	if !moved {
		t.Error("Dragging should move the camera")
	}
	if d := controls.Distance(); math32.Abs(d-3) > 1e-4 {
		t.Errorf("Rotation should keep distance 3, got %f", d)
	}
	if near(cam.Position, mgl32.Vec3{0, 0, 3}) {
		t.Error("Camera should have moved")
	}
}

func TestOrbitControlsPolarClamp(t *testing.T) {
	controls, cam := newTestControls()
	controls.SetViewportHeight(100)

	controls.BeginRotate(0, 0)
	controls.Drag(0, 1000)
	controls.Update()

	if cam.Position.Y() <= 0 || cam.Position.Y() > 3 {
		t.Errorf("Camera should stop just short of the top pole, got %v", cam.Position)
	}
	if math32.Abs(cam.Position.X()) > 1e-3 || math32.Abs(cam.Position.Z()) > 1e-3 {
		t.Errorf("Camera should be above the target, got %v", cam.Position)
	}
}

func TestOrbitControlsPan(t *testing.T) {
	controls, _ := newTestControls()

	controls.BeginPan(0, 0)
	controls.Drag(50, 0)
	controls.End()
	controls.Update()

	if controls.Target.X() >= 0 {
		t.Errorf("Dragging right should move the target left, got %v", controls.Target)
	}
	if d := controls.Distance(); math32.Abs(d-3) > 1e-4 {
		t.Errorf("Pan should keep the distance, got %f", d)
	}
}

func TestOrbitControlsDisabled(t *testing.T) {
	controls, _ := newTestControls()
	controls.Enabled = false

	controls.BeginRotate(0, 0)
	if controls.Dragging() {
		t.Error("Disabled controls should not start a drag")
	}
	controls.Zoom(5)
	if controls.Update() {
		t.Error("Disabled controls should not move the camera")
	}
}

func TestOrbitControlsDamping(t *testing.T) {
	controls, cam := newTestControls()
	controls.EnableDamping = true
	controls.SetViewportHeight(600)

	controls.BeginRotate(0, 0)
	controls.Drag(60, 0)
	controls.End()
	controls.Update()
	first := cam.Position

	if !controls.Update() {
		t.Error("Damped controls should keep moving after the drag ends")
	}
	if near(cam.Position, first) {
		t.Error("Expected residual motion")
	}
}
