package engine

import (
	"PBRShowcase/internal/behaviour"
	"PBRShowcase/internal/renderer"
)

// Surface is the resizable output of a renderer.
type Surface interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
}

// SceneRenderer draws a scene into a Surface.
type SceneRenderer interface {
	Surface
	Render(scene *renderer.Scene, camera *renderer.PerspectiveCamera)
}

// Viewport is the window size in screen coordinates and the pixel ratio
// applied to the renderer.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float32
}

// Aspect returns width/height, or 1 when the height is zero.
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Context is the state shared by the render loop, the viewport manager and
// the input handlers. There is exactly one camera and one renderer per
// context.
type Context struct {
	Scene      *renderer.Scene
	Camera     *renderer.PerspectiveCamera
	Renderer   SceneRenderer
	Viewport   Viewport
	Behaviours *behaviour.BehaviourManager
}

func NewContext(scene *renderer.Scene, camera *renderer.PerspectiveCamera, rend SceneRenderer) *Context {
	return &Context{
		Scene:      scene,
		Camera:     camera,
		Renderer:   rend,
		Viewport:   Viewport{PixelRatio: 1},
		Behaviours: behaviour.NewBehaviourManager(),
	}
}
