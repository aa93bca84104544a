package debugui

import (
	"math"

	"PBRShowcase/internal/engine"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

// Platform feeds window state and input to imgui. It installs no GLFW
// callbacks; events arrive through engine.Input.
type Platform struct {
	engine.NopInput

	window *glfw.Window
	io     imgui.IO
	time   float64

	mouseJustPressed [3]bool
}

func NewPlatform(window *glfw.Window, io imgui.IO) *Platform {
	p := &Platform{window: window, io: io}
	p.setKeyMapping()
	return p
}

func (p *Platform) setKeyMapping() {
	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	}
	for imguiKey, glfwKey := range keys {
		p.io.KeyMap(imguiKey, int(glfwKey))
	}
}

// DisplaySize returns the window size in screen coordinates.
func (p *Platform) DisplaySize() [2]float32 {
	w, h := p.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

// FramebufferSize returns the framebuffer size in pixels.
func (p *Platform) FramebufferSize() [2]float32 {
	w, h := p.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

// NewFrame updates display size, time step and mouse state.
func (p *Platform) NewFrame() {
	displaySize := p.DisplaySize()
	p.io.SetDisplaySize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})

	now := glfw.GetTime()
	if p.time > 0 {
		p.io.SetDeltaTime(float32(now - p.time))
	}
	p.time = now

	if p.window.GetAttrib(glfw.Focused) != 0 {
		x, y := p.window.GetCursorPos()
		p.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		p.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	buttons := [3]glfw.MouseButton{glfw.MouseButton1, glfw.MouseButton2, glfw.MouseButton3}
	for i, button := range buttons {
		down := p.mouseJustPressed[i] || p.window.GetMouseButton(button) == glfw.Press
		p.io.SetMouseButtonDown(i, down)
		p.mouseJustPressed[i] = false
	}
}

func (p *Platform) MouseButton(button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey, _, _ float64) {
	if action == glfw.Press && button >= glfw.MouseButton1 && button <= glfw.MouseButton3 {
		p.mouseJustPressed[button-glfw.MouseButton1] = true
	}
}

func (p *Platform) Scroll(xoff, yoff float64) {
	p.io.AddMouseWheelDelta(float32(xoff), float32(yoff))
}

func (p *Platform) Key(key glfw.Key, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Press {
		p.io.KeyPress(int(key))
	}
	if action == glfw.Release {
		p.io.KeyRelease(int(key))
	}

	p.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	p.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	p.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	p.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (p *Platform) Char(char rune) {
	p.io.AddInputCharacters(string(char))
}
