package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const orbitEpsilon = 1e-6

type orbitState int

const (
	orbitNone orbitState = iota
	orbitRotate
	orbitPan
)

// OrbitControls moves a camera on a sphere around Target: rotate with
// BeginRotate/Drag, pan with BeginPan/Drag, dolly with Zoom. Changes are
// applied to the camera by Update.
type OrbitControls struct {
	Target        mgl32.Vec3
	Enabled       bool
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32
	MinDistance   float32
	MaxDistance   float32
	EnableDamping bool
	DampingFactor float32

	camera *PerspectiveCamera

	// spherical coordinates of camera - target
	radius, theta, phi float32

	deltaTheta, deltaPhi float32
	scale                float32
	panOffset            mgl32.Vec3

	state        orbitState
	lastX, lastY float64
	// pixels spanned by the viewport height, used to normalise drags
	viewportHeight float32
}

func NewOrbitControls(camera *PerspectiveCamera) *OrbitControls {
	c := &OrbitControls{
		Enabled:        true,
		RotateSpeed:    1,
		ZoomSpeed:      1,
		PanSpeed:       1,
		MinDistance:    0,
		MaxDistance:    math32.Inf(1),
		DampingFactor:  0.05,
		camera:         camera,
		scale:          1,
		viewportHeight: 768,
	}
	c.sync()
	return c
}

// sync reads the spherical coordinates from the camera position.
func (c *OrbitControls) sync() {
	offset := c.camera.Position.Sub(c.Target)
	c.radius = offset.Len()
	if c.radius < orbitEpsilon {
		c.theta, c.phi = 0, math32.Pi/2
		return
	}
	c.theta = math32.Atan2(offset.X(), offset.Z())
	c.phi = math32.Acos(mgl32.Clamp(offset.Y()/c.radius, -1, 1))
}

// SetViewportHeight tells the controls how many pixels a full-height drag
// spans.
func (c *OrbitControls) SetViewportHeight(height int) {
	if height > 0 {
		c.viewportHeight = float32(height)
	}
}

func (c *OrbitControls) Distance() float32 {
	return c.camera.Position.Sub(c.Target).Len()
}

func (c *OrbitControls) BeginRotate(x, y float64) {
	if !c.Enabled {
		return
	}
	c.state = orbitRotate
	c.lastX, c.lastY = x, y
}

func (c *OrbitControls) BeginPan(x, y float64) {
	if !c.Enabled {
		return
	}
	c.state = orbitPan
	c.lastX, c.lastY = x, y
}

func (c *OrbitControls) End() {
	c.state = orbitNone
}

func (c *OrbitControls) Dragging() bool {
	return c.state != orbitNone
}

// Drag handles a cursor move while a rotate or pan is active.
func (c *OrbitControls) Drag(x, y float64) {
	if !c.Enabled || c.state == orbitNone {
		return
	}
	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y

	switch c.state {
	case orbitRotate:
		c.deltaTheta -= 2 * math32.Pi * dx / c.viewportHeight * c.RotateSpeed
		c.deltaPhi -= 2 * math32.Pi * dy / c.viewportHeight * c.RotateSpeed
	case orbitPan:
		c.pan(dx, dy)
	}
}

func (c *OrbitControls) pan(dx, dy float32) {
	distance := c.Distance() * math32.Tan(mgl32.DegToRad(c.camera.Fov)/2)
	view := c.camera.GetViewMatrix()
	right := mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
	up := mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}

	left := right.Mul(-2 * dx * distance / c.viewportHeight * c.PanSpeed)
	upward := up.Mul(2 * dy * distance / c.viewportHeight * c.PanSpeed)
	c.panOffset = c.panOffset.Add(left).Add(upward)
}

// Zoom dollies the camera. Positive steps move it closer.
func (c *OrbitControls) Zoom(steps float64) {
	if !c.Enabled || steps == 0 {
		return
	}
	zoomScale := math32.Pow(0.95, c.ZoomSpeed)
	if steps > 0 {
		c.scale *= math32.Pow(zoomScale, float32(steps))
	} else {
		c.scale /= math32.Pow(zoomScale, float32(-steps))
	}
}

// Update applies pending input to the camera. It reports whether the camera
// moved.
func (c *OrbitControls) Update() bool {
	before := c.camera.Position

	c.sync()
	c.theta += c.deltaTheta
	c.phi = mgl32.Clamp(c.phi+c.deltaPhi, orbitEpsilon, math32.Pi-orbitEpsilon)
	c.radius = mgl32.Clamp(c.radius*c.scale, c.MinDistance, c.MaxDistance)
	c.Target = c.Target.Add(c.panOffset)

	sinPhi := math32.Sin(c.phi)
	offset := mgl32.Vec3{
		c.radius * sinPhi * math32.Sin(c.theta),
		c.radius * math32.Cos(c.phi),
		c.radius * sinPhi * math32.Cos(c.theta),
	}
	c.camera.Position = c.Target.Add(offset)
	c.camera.LookAt(c.Target)

	if c.EnableDamping {
		c.deltaTheta *= 1 - c.DampingFactor
		c.deltaPhi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1

	return before.Sub(c.camera.Position).Len() > orbitEpsilon
}
