package debugui

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// Control binds a slider to a float32 field. Changes write straight into
// the field, so they show on the next frame.
type Control struct {
	Name  string
	value *float32
	min   float32
	max   float32
	step  float32
}

func (c *Control) Min(v float32) *Control {
	c.min = v
	return c
}

func (c *Control) Max(v float32) *Control {
	c.max = v
	return c
}

func (c *Control) Step(v float32) *Control {
	c.step = v
	return c
}

func (c *Control) Range() (min, max, step float32) {
	return c.min, c.max, c.step
}

func (c *Control) Value() float32 {
	return *c.value
}

// Set clamps v to the range and snaps it to the step grid.
func (c *Control) Set(v float32) {
	if c.min <= c.max {
		v = math32.Max(c.min, math32.Min(c.max, v))
	}
	if c.step > 0 {
		v = c.min + math32.Round((v-c.min)/c.step)*c.step
		if v > c.max {
			v = c.max
		}
	}
	*c.value = v
}

// format picks enough decimals to show one step.
func (c *Control) format() string {
	if c.step <= 0 {
		return "%.3f"
	}
	decimals := int(math.Ceil(-math.Log10(float64(c.step)) - 1e-6))
	decimals = max(0, min(6, decimals))
	return fmt.Sprintf("%%.%df", decimals)
}

// Panel is a named list of controls.
type Panel struct {
	Title    string
	Visible  bool
	controls []*Control
}

func NewPanel(title string) *Panel {
	return &Panel{Title: title, Visible: true}
}

// Add binds a new control to value. The range defaults to [0,1] with no
// step.
func (p *Panel) Add(name string, value *float32) *Control {
	c := &Control{Name: name, value: value, min: 0, max: 1}
	p.controls = append(p.controls, c)
	return c
}

func (p *Panel) Controls() []*Control {
	return p.controls
}

func (p *Panel) Toggle() {
	p.Visible = !p.Visible
}
