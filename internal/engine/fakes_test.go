package engine

import (
	"PBRShowcase/internal/renderer"
	"errors"
)

type fakeRenderer struct {
	width, height int
	pixelRatio    float32
	renders       int
	calls         *[]string
}

func (f *fakeRenderer) SetSize(width, height int) {
	f.width, f.height = width, height
}

func (f *fakeRenderer) SetPixelRatio(ratio float32) {
	f.pixelRatio = ratio
}

func (f *fakeRenderer) Render(*renderer.Scene, *renderer.PerspectiveCamera) {
	f.renders++
	if f.calls != nil {
		*f.calls = append(*f.calls, "render")
	}
}

type fakeHost struct {
	presents   int
	closeAfter int // ShouldClose turns true after this many presents, 0 never
	calls      *[]string
}

func (f *fakeHost) ShouldClose() bool {
	return f.closeAfter > 0 && f.presents >= f.closeAfter
}

func (f *fakeHost) Present() {
	f.presents++
	if f.calls != nil {
		*f.calls = append(*f.calls, "present")
	}
}

type fakeCanvas struct {
	requests int
	err      error
}

func (c *fakeCanvas) RequestFullscreen() error {
	c.requests++
	return c.err
}

type fakeDocument struct {
	canvas     Element
	fullscreen Element
	exits      int
}

func (d *fakeDocument) Canvas() Element {
	return d.canvas
}

func (d *fakeDocument) FullscreenElement() Element {
	return d.fullscreen
}

func (d *fakeDocument) ExitFullscreen() error {
	d.exits++
	return nil
}

// plainDocument has no ExitFullscreen.
type plainDocument struct {
	canvas, fullscreen Element
}

func (d *plainDocument) Canvas() Element            { return d.canvas }
func (d *plainDocument) FullscreenElement() Element { return d.fullscreen }

var errRejected = errors.New("rejected")

func newTestContext() (*Context, *fakeRenderer) {
	rend := &fakeRenderer{pixelRatio: 1}
	scene := renderer.NewScene()
	camera := renderer.NewPerspectiveCamera(75, 1024.0/768.0, 0.1, 2000)
	scene.Add(camera)
	return NewContext(scene, camera, rend), rend
}
