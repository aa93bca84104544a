package debugui

import (
	"fmt"

	"PBRShowcase/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// StatsSource reports per-frame numbers shown under the sliders.
type StatsSource func() (drawCalls, triangles int)

// UI draws a Panel with imgui on top of the scene.
type UI struct {
	panel    *Panel
	context  *imgui.Context
	platform *Platform
	renderer *OpenGL3
	stats    StatsSource

	fps        float64
	frameCount int
	fpsTime    float64
}

// NewUI creates the imgui context for window. Call it on the GL thread
// after the context is current.
func NewUI(window *glfw.Window, panel *Panel) (*UI, error) {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	r, err := NewOpenGL3(io)
	if err != nil {
		context.Destroy()
		return nil, fmt.Errorf("imgui renderer: %w", err)
	}

	applyDarkTheme()
	logger.Log.Info("Debug panel ready", zap.String("title", panel.Title), zap.Int("controls", len(panel.Controls())))

	return &UI{
		panel:    panel,
		context:  context,
		platform: NewPlatform(window, io),
		renderer: r,
	}, nil
}

// Input returns the handler that forwards window events to imgui.
func (ui *UI) Input() *Platform {
	return ui.platform
}

// SetStats shows renderer numbers in the panel.
func (ui *UI) SetStats(stats StatsSource) {
	ui.stats = stats
}

func (ui *UI) Panel() *Panel {
	return ui.panel
}

func (ui *UI) Visible() bool {
	return ui.panel.Visible
}

func (ui *UI) Toggle() {
	ui.panel.Toggle()
}

// WantCaptureMouse is true while the cursor is over the panel or a slider
// is being dragged.
func (ui *UI) WantCaptureMouse() bool {
	return ui.panel.Visible && imgui.CurrentIO().WantCaptureMouse()
}

func (ui *UI) WantCaptureKeyboard() bool {
	return ui.panel.Visible && imgui.CurrentIO().WantCaptureKeyboard()
}

// Frame builds and draws the panel. It runs after the scene is rendered.
func (ui *UI) Frame(dt float64) {
	ui.updateFPS(dt)

	ui.platform.NewFrame()
	imgui.NewFrame()
	if ui.panel.Visible {
		ui.drawPanel()
	}
	imgui.Render()

	ui.renderer.Render(ui.platform.DisplaySize(), ui.platform.FramebufferSize(), imgui.RenderedDrawData())
}

func (ui *UI) drawPanel() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 300, Y: 0}, imgui.ConditionFirstUseEver)

	open := ui.panel.Visible
	if imgui.BeginV(ui.panel.Title, &open, imgui.WindowFlagsAlwaysAutoResize) {
		for _, c := range ui.panel.Controls() {
			value := c.Value()
			minValue, maxValue, _ := c.Range()
			if imgui.SliderFloatV(c.Name, &value, minValue, maxValue, c.format(), imgui.SliderFlagsNone) {
				c.Set(value)
			}
		}

		imgui.Separator()
		imgui.Text(fmt.Sprintf("FPS: %.1f", ui.fps))
		if ui.stats != nil {
			drawCalls, triangles := ui.stats()
			imgui.Text(fmt.Sprintf("Draw calls: %d", drawCalls))
			imgui.Text(fmt.Sprintf("Triangles: %d", triangles))
		}
	}
	imgui.End()
	ui.panel.Visible = open
}

func (ui *UI) updateFPS(dt float64) {
	ui.frameCount++
	ui.fpsTime += dt
	if ui.fpsTime >= 1 {
		ui.fps = float64(ui.frameCount) / ui.fpsTime
		ui.frameCount = 0
		ui.fpsTime = 0
	}
}

// Dispose frees the GL objects and the imgui context.
func (ui *UI) Dispose() error {
	var err error
	if ui.renderer != nil {
		err = multierr.Append(err, ui.renderer.Dispose())
		ui.renderer = nil
	}
	if ui.context != nil {
		ui.context.Destroy()
		ui.context = nil
	}
	return err
}
