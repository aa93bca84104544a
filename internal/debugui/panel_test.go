package debugui

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestControlSetClamps(t *testing.T) {
	var metalness float32
	p := NewPanel("Debug")
	c := p.Add("metalness", &metalness).Min(0).Max(1).Step(0.0001)

	tests := []struct {
		in, want float32
	}{
		{-0.5, 0},
		{1.5, 1},
		{0.25, 0.25},
		{1, 1},
		{0, 0},
	}
	for _, tt := range tests {
		c.Set(tt.in)
		if math32.Abs(metalness-tt.want) > 1e-6 {
			t.Errorf("Set(%v): expected %v, got %v", tt.in, tt.want, metalness)
		}
	}
}

func TestControlSetSnapsToStep(t *testing.T) {
	var roughness float32
	c := NewPanel("Debug").Add("roughness", &roughness).Min(0).Max(1).Step(0.0001)

	c.Set(0.123456)
	if math32.Abs(roughness-0.1235) > 1e-6 {
		t.Errorf("Expected 0.1235, got %v", roughness)
	}

	coarse := NewPanel("Debug").Add("coarse", &roughness).Min(0).Max(1).Step(0.25)
	coarse.Set(0.3)
	if roughness != 0.25 {
		t.Errorf("Expected 0.25, got %v", roughness)
	}
	coarse.Set(0.9)
	if roughness != 1 {
		t.Errorf("Expected 1, got %v", roughness)
	}
}

func TestControlWritesThrough(t *testing.T) {
	material := struct{ Metalness float32 }{}
	c := NewPanel("Debug").Add("metalness", &material.Metalness)

	c.Set(0.5)

	if material.Metalness != 0.5 {
		t.Errorf("Expected the bound field to change, got %v", material.Metalness)
	}
	if c.Value() != 0.5 {
		t.Errorf("Expected Value 0.5, got %v", c.Value())
	}
}

func TestControlDefaults(t *testing.T) {
	var v float32
	c := NewPanel("Debug").Add("v", &v)

	if min, max, step := c.Range(); min != 0 || max != 1 || step != 0 {
		t.Errorf("Expected [0,1] step 0, got [%v,%v] step %v", min, max, step)
	}
}

func TestControlFormat(t *testing.T) {
	var v float32
	tests := []struct {
		step float32
		want string
	}{
		{0.0001, "%.4f"},
		{0.01, "%.2f"},
		{1, "%.0f"},
		{0, "%.3f"},
	}
	for _, tt := range tests {
		c := NewPanel("Debug").Add("v", &v).Step(tt.step)
		if got := c.format(); got != tt.want {
			t.Errorf("step %v: expected %q, got %q", tt.step, tt.want, got)
		}
	}
}

func TestPanelToggle(t *testing.T) {
	p := NewPanel("Debug")
	if !p.Visible {
		t.Fatal("A new panel should be visible")
	}
	p.Toggle()
	if p.Visible {
		t.Error("Toggle should hide the panel")
	}
	if len(p.Controls()) != 0 {
		t.Error("A new panel has no controls")
	}
}
