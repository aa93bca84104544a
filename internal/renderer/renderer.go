package renderer

var FaceCullingEnabled bool = false
var Debug bool = false          // Draw meshes as wireframe
var DepthTestEnabled bool = true

// RenderStats counts the work done by the last Render call.
type RenderStats struct {
	DrawCalls int
	Triangles int
}
