package engine

import (
	"PBRShowcase/internal/renderer"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// InputHandler receives window input. Embed NopInput to pick only the
// events you need.
type InputHandler interface {
	MouseButton(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey, x, y float64)
	CursorPos(x, y float64)
	Scroll(xoff, yoff float64)
	Key(key glfw.Key, action glfw.Action, mods glfw.ModifierKey)
	Char(char rune)
}

type NopInput struct{}

func (NopInput) MouseButton(glfw.MouseButton, glfw.Action, glfw.ModifierKey, float64, float64) {}
func (NopInput) CursorPos(float64, float64)                                                   {}
func (NopInput) Scroll(float64, float64)                                                      {}
func (NopInput) Key(glfw.Key, glfw.Action, glfw.ModifierKey)                                  {}
func (NopInput) Char(rune)                                                                    {}

// Input fans window events out to handlers. The UI handler sees every event
// first; the others only get the events the UI did not capture. Button
// releases always reach everyone so drags can end.
type Input struct {
	ui           InputHandler
	wantMouse    func() bool
	wantKeyboard func() bool

	handlers []InputHandler
	x, y     float64
}

func NewInput() *Input {
	return &Input{}
}

func (in *Input) SetUI(ui InputHandler, wantMouse, wantKeyboard func() bool) {
	in.ui = ui
	in.wantMouse = wantMouse
	in.wantKeyboard = wantKeyboard
}

func (in *Input) Add(h InputHandler) {
	in.handlers = append(in.handlers, h)
}

// Attach installs the window callbacks.
func (in *Input) Attach(window *glfw.Window) {
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		in.HandleMouseButton(button, action, mods)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		in.HandleCursorPos(x, y)
	})
	window.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		in.HandleScroll(xoff, yoff)
	})
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		in.HandleKey(key, action, mods)
	})
	window.SetCharCallback(func(_ *glfw.Window, char rune) {
		in.HandleChar(char)
	})
}

func (in *Input) mouseCaptured() bool {
	return in.ui != nil && in.wantMouse != nil && in.wantMouse()
}

func (in *Input) keyboardCaptured() bool {
	return in.ui != nil && in.wantKeyboard != nil && in.wantKeyboard()
}

func (in *Input) HandleMouseButton(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if in.ui != nil {
		in.ui.MouseButton(button, action, mods, in.x, in.y)
	}
	if action != glfw.Release && in.mouseCaptured() {
		return
	}
	for _, h := range in.handlers {
		h.MouseButton(button, action, mods, in.x, in.y)
	}
}

func (in *Input) HandleCursorPos(x, y float64) {
	in.x, in.y = x, y
	if in.ui != nil {
		in.ui.CursorPos(x, y)
	}
	for _, h := range in.handlers {
		h.CursorPos(x, y)
	}
}

func (in *Input) HandleScroll(xoff, yoff float64) {
	if in.ui != nil {
		in.ui.Scroll(xoff, yoff)
	}
	if in.mouseCaptured() {
		return
	}
	for _, h := range in.handlers {
		h.Scroll(xoff, yoff)
	}
}

func (in *Input) HandleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if in.ui != nil {
		in.ui.Key(key, action, mods)
	}
	if action != glfw.Release && in.keyboardCaptured() {
		return
	}
	for _, h := range in.handlers {
		h.Key(key, action, mods)
	}
}

func (in *Input) HandleChar(char rune) {
	if in.ui != nil {
		in.ui.Char(char)
	}
	if in.keyboardCaptured() {
		return
	}
	for _, h := range in.handlers {
		h.Char(char)
	}
}

// OrbitInput drives orbit controls: left drag rotates, right drag pans and
// the wheel zooms.
type OrbitInput struct {
	NopInput
	Controls *renderer.OrbitControls
}

func (o *OrbitInput) MouseButton(button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey, x, y float64) {
	switch {
	case action == glfw.Release:
		o.Controls.End()
	case button == glfw.MouseButtonLeft:
		o.Controls.BeginRotate(x, y)
	case button == glfw.MouseButtonRight:
		o.Controls.BeginPan(x, y)
	}
}

func (o *OrbitInput) CursorPos(x, y float64) {
	o.Controls.Drag(x, y)
}

func (o *OrbitInput) Scroll(_, yoff float64) {
	o.Controls.Zoom(yoff)
}

// DoubleClickInput toggles fullscreen on a left button double-click.
type DoubleClickInput struct {
	NopInput
	Detector *DoubleClickDetector
	Toggle   *FullscreenToggle
	Now      func() time.Time
}

func NewDoubleClickInput(detector *DoubleClickDetector, toggle *FullscreenToggle) *DoubleClickInput {
	return &DoubleClickInput{Detector: detector, Toggle: toggle, Now: time.Now}
}

func (d *DoubleClickInput) MouseButton(button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey, x, y float64) {
	if button != glfw.MouseButtonLeft || action != glfw.Press {
		return
	}
	if d.Detector.Press(d.Now(), x, y) {
		d.Toggle.HandleDoubleClick()
	}
}

// KeyBindings runs a function when its key is pressed.
type KeyBindings struct {
	NopInput
	bindings map[glfw.Key]func()
}

func NewKeyBindings() *KeyBindings {
	return &KeyBindings{bindings: make(map[glfw.Key]func())}
}

func (k *KeyBindings) Bind(key glfw.Key, fn func()) {
	k.bindings[key] = fn
}

func (k *KeyBindings) Key(key glfw.Key, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if fn, ok := k.bindings[key]; ok {
		fn()
	}
}
