package engine

import "github.com/go-gl/glfw/v3.3/glfw"

// Clock measures the time between frames.
type Clock interface {
	// Delta returns the seconds elapsed since the previous call. The first
	// call returns 0.
	Delta() float64
}

type GLFWClock struct {
	now     func() float64
	last    float64
	started bool
}

func NewGLFWClock() *GLFWClock {
	return &GLFWClock{now: glfw.GetTime}
}

func (c *GLFWClock) Delta() float64 {
	now := c.now()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	delta := now - c.last
	c.last = now
	return delta
}

// ManualClock replays fixed deltas, then reports 0.
type ManualClock struct {
	deltas []float64
}

func NewManualClock(deltas ...float64) *ManualClock {
	return &ManualClock{deltas: deltas}
}

func (c *ManualClock) Push(deltas ...float64) {
	c.deltas = append(c.deltas, deltas...)
}

func (c *ManualClock) Delta() float64 {
	if len(c.deltas) == 0 {
		return 0
	}
	d := c.deltas[0]
	c.deltas = c.deltas[1:]
	return d
}
