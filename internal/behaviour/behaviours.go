package behaviour

import "PBRShowcase/internal/renderer"

// Func adapts a plain function to a Behaviour with an empty Start.
type Func func(dt float64)

func (f Func) Start() {}

func (f Func) Update(dt float64) {
	f(dt)
}

// Spin rotates Target about its local X and Y axes at a constant rate in
// radians per second.
type Spin struct {
	Target *renderer.Object3D
	RateX  float32
	RateY  float32
}

func NewSpin(target *renderer.Object3D, rateX, rateY float32) *Spin {
	return &Spin{Target: target, RateX: rateX, RateY: rateY}
}

func (s *Spin) Start() {}

func (s *Spin) Update(dt float64) {
	if s.Target == nil {
		return
	}
	s.Target.RotateX(s.RateX * float32(dt))
	s.Target.RotateY(s.RateY * float32(dt))
}

// OrbitControls applies pending orbit input and damping once per frame.
type OrbitControls struct {
	Controls *renderer.OrbitControls
}

func (o OrbitControls) Start() {}

func (o OrbitControls) Update(float64) {
	o.Controls.Update()
}
