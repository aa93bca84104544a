package engine

import (
	"PBRShowcase/internal/logger"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// DefaultMaxPixelRatio bounds GPU memory and fill rate on dense displays.
const DefaultMaxPixelRatio = 2

// ViewportManager keeps the camera projection and the renderer resolution in
// step with the window.
type ViewportManager struct {
	ctx           *Context
	MaxPixelRatio float32

	listeners []func(Viewport)
}

func NewViewportManager(ctx *Context, maxPixelRatio float32) *ViewportManager {
	if maxPixelRatio <= 0 {
		maxPixelRatio = DefaultMaxPixelRatio
	}
	return &ViewportManager{ctx: ctx, MaxPixelRatio: maxPixelRatio}
}

// OnResize registers fn to run after every handled resize.
func (m *ViewportManager) OnResize(fn func(Viewport)) {
	m.listeners = append(m.listeners, fn)
}

// HandleResize applies a new window size and device pixel ratio.
func (m *ViewportManager) HandleResize(width, height int, devicePixelRatio float32) {
	ratio := math32.Min(devicePixelRatio, m.MaxPixelRatio)
	m.ctx.Viewport = Viewport{Width: width, Height: height, PixelRatio: ratio}

	m.ctx.Camera.Aspect = m.ctx.Viewport.Aspect()
	m.ctx.Camera.UpdateProjectionMatrix()

	m.ctx.Renderer.SetSize(width, height)
	m.ctx.Renderer.SetPixelRatio(ratio)

	logger.Log.Debug("Viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float32("pixelRatio", ratio))

	for _, fn := range m.listeners {
		fn(m.ctx.Viewport)
	}
}
