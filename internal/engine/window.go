package engine

import (
	"PBRShowcase/internal/logger"
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

type WindowOptions struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Window is a GLFW window with a current OpenGL 4.1 core context. It is the
// Host of the render loop and the Document for the fullscreen toggle; its
// canvas is the window's client area.
type Window struct {
	window *glfw.Window
	canvas *Canvas

	fullscreen bool
	// windowed geometry to restore when leaving fullscreen
	savedX, savedY, savedW, savedH int
}

// Canvas is the drawable area of a Window.
type Canvas struct {
	w *Window
}

// OpenWindow initialises GLFW, creates the window and makes its context
// current. Call from the main thread with the OS thread locked.
func OpenWindow(opts WindowOptions) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("init OpenGL: %w", err)
	}

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	w := &Window{window: window}
	w.canvas = &Canvas{w: w}

	fw, fh := window.GetFramebufferSize()
	logger.Log.Info("Window created",
		zap.String("title", opts.Title),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("framebufferWidth", fw),
		zap.Int("framebufferHeight", fh),
		zap.Float32("contentScale", w.ContentScale()))
	return w, nil
}

func (w *Window) GLFW() *glfw.Window {
	return w.window
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) Present() {
	w.window.SwapBuffers()
	glfw.PollEvents()
}

func (w *Window) Size() (int, int) {
	return w.window.GetSize()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// ContentScale is the platform's device pixel ratio.
func (w *Window) ContentScale() float32 {
	x, _ := w.window.GetContentScale()
	if x <= 0 {
		return 1
	}
	return x
}

// OnResize calls fn with the new size and pixel ratio whenever either
// changes.
func (w *Window) OnResize(fn func(width, height int, devicePixelRatio float32)) {
	w.window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height, w.ContentScale())
	})
	w.window.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		width, height := w.window.GetSize()
		fn(width, height, w.ContentScale())
	})
}

func (w *Window) Canvas() Element {
	if w.canvas == nil {
		return nil
	}
	return w.canvas
}

func (w *Window) FullscreenElement() Element {
	if !w.fullscreen {
		return nil
	}
	return w.canvas
}

// ExitFullscreen restores the windowed position and size.
func (w *Window) ExitFullscreen() error {
	if !w.fullscreen {
		return nil
	}
	w.window.SetMonitor(nil, w.savedX, w.savedY, w.savedW, w.savedH, 0)
	w.fullscreen = false
	logger.Log.Info("Left fullscreen", zap.Int("width", w.savedW), zap.Int("height", w.savedH))
	return nil
}

// RequestFullscreen puts the window on the primary monitor at its current
// video mode.
func (c *Canvas) RequestFullscreen() error {
	w := c.w
	if w.fullscreen {
		return nil
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return errors.New("no primary monitor")
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return errors.New("primary monitor has no video mode")
	}

	w.savedX, w.savedY = w.window.GetPos()
	w.savedW, w.savedH = w.window.GetSize()
	w.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	w.fullscreen = true

	logger.Log.Info("Entered fullscreen",
		zap.String("monitor", monitor.GetName()),
		zap.Int("width", mode.Width),
		zap.Int("height", mode.Height))
	return nil
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.window.Destroy()
	glfw.Terminate()
}
