package engine

import (
	"PBRShowcase/internal/logger"
	"math"
	"time"

	"go.uber.org/zap"
)

// Element is something that can be presented fullscreen, such as the canvas.
type Element interface{}

// FullscreenRequester is implemented by elements that can go fullscreen.
type FullscreenRequester interface {
	RequestFullscreen() error
}

// FullscreenExiter is implemented by documents that can leave fullscreen.
type FullscreenExiter interface {
	ExitFullscreen() error
}

// Document gives access to the canvas and the fullscreen state.
type Document interface {
	// Canvas returns nil when there is nothing to present.
	Canvas() Element
	// FullscreenElement returns nil when nothing is fullscreen.
	FullscreenElement() Element
}

// FullscreenToggle switches the canvas in and out of fullscreen.
type FullscreenToggle struct {
	doc Document
}

func NewFullscreenToggle(doc Document) *FullscreenToggle {
	return &FullscreenToggle{doc: doc}
}

func (f *FullscreenToggle) HandleDoubleClick() {
	canvas := f.doc.Canvas()
	if canvas == nil {
		return
	}

	if f.doc.FullscreenElement() == nil {
		if r, ok := canvas.(FullscreenRequester); ok {
			if err := r.RequestFullscreen(); err != nil {
				logger.Log.Debug("Fullscreen request rejected", zap.Error(err))
			}
		}
		return
	}

	if e, ok := f.doc.(FullscreenExiter); ok {
		if err := e.ExitFullscreen(); err != nil {
			logger.Log.Debug("Fullscreen exit rejected", zap.Error(err))
		}
	}
}

// DefaultDoubleClickDistance is how far apart, in screen coordinates, the two
// presses of a double-click may be.
const DefaultDoubleClickDistance = 4

// DoubleClickDetector turns pairs of presses into double-clicks.
type DoubleClickDetector struct {
	Interval    time.Duration
	MaxDistance float64

	armed        bool
	last         time.Time
	lastX, lastY float64
}

func NewDoubleClickDetector(interval time.Duration) *DoubleClickDetector {
	return &DoubleClickDetector{Interval: interval, MaxDistance: DefaultDoubleClickDistance}
}

// Press records a button press and reports whether it completes a
// double-click. A completed pair is consumed.
func (d *DoubleClickDetector) Press(at time.Time, x, y float64) bool {
	if d.armed {
		elapsed := at.Sub(d.last)
		if elapsed >= 0 && elapsed <= d.Interval && math.Hypot(x-d.lastX, y-d.lastY) <= d.MaxDistance {
			d.armed = false
			return true
		}
	}
	d.armed = true
	d.last = at
	d.lastX, d.lastY = x, y
	return false
}
