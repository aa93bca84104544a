package renderer

import (
	"PBRShowcase/internal/logger"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const placeholderName = "__placeholder_white"

type OpenGLRenderer struct {
	standardShader Shader
	lineShader     Shader
	textures       *TextureManager
	placeholder    uint32 // 1x1 white texture bound for maps that are not uploaded yet

	// Window size in screen coordinates and the applied pixel ratio.
	width, height int
	pixelRatio    float32
	// framebufferSize reports the real default framebuffer size. When it
	// differs from the drawing buffer the frame goes through offscreen.
	framebufferSize func() (int, int)
	offscreen       renderTarget

	geometries  []*Geometry
	helpers     []*AxesHelper
	initialized bool
	stats       RenderStats
}

func NewOpenGLRenderer() *OpenGLRenderer {
	return &OpenGLRenderer{
		textures:       NewTextureManager(),
		pixelRatio:     1,
		standardShader: newStandardShader(),
		lineShader:     newLineShader(),
	}
}

// Init compiles the shaders and creates the placeholder texture. The GL
// context must be current.
func (rend *OpenGLRenderer) Init() error {
	if err := rend.standardShader.Compile(); err != nil {
		return fmt.Errorf("compile shader: %w", err)
	}
	if err := rend.lineShader.Compile(); err != nil {
		rend.standardShader.Delete()
		return fmt.Errorf("compile shader: %w", err)
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.White)
	rend.placeholder = rend.textures.CreateTextureFromImage(white, placeholderName)

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	rend.initialized = true

	logger.Log.Info("OpenGL render initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	return nil
}

// SetSize sets the output size in window coordinates.
func (rend *OpenGLRenderer) SetSize(width, height int) {
	rend.width, rend.height = width, height
}

func (rend *OpenGLRenderer) Size() (int, int) {
	return rend.width, rend.height
}

func (rend *OpenGLRenderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	rend.pixelRatio = ratio
}

func (rend *OpenGLRenderer) PixelRatio() float32 {
	return rend.pixelRatio
}

// DrawingBufferSize is the size in pixels the scene is rasterised at.
func (rend *OpenGLRenderer) DrawingBufferSize() (int, int) {
	return int(math32.Round(float32(rend.width) * rend.pixelRatio)),
		int(math32.Round(float32(rend.height) * rend.pixelRatio))
}

// SetFramebufferSource tells the renderer how to query the window's
// framebuffer size.
func (rend *OpenGLRenderer) SetFramebufferSource(fn func() (int, int)) {
	rend.framebufferSize = fn
}

func (rend *OpenGLRenderer) Textures() *TextureManager {
	return rend.textures
}

func (rend *OpenGLRenderer) Stats() RenderStats {
	return rend.stats
}

// Render draws scene as seen from camera.
func (rend *OpenGLRenderer) Render(scene *Scene, camera *PerspectiveCamera) {
	if !rend.initialized {
		return
	}
	rend.stats = RenderStats{}

	scene.UpdateMatrixWorld()
	if camera.Parent() == nil {
		camera.UpdateMatrixWorld(mgl32.Ident4())
	}

	var meshes []*Mesh
	var helpers []*AxesHelper
	scene.Traverse(func(n Node) {
		if !n.Object().Visible {
			return
		}
		switch node := n.(type) {
		case *Mesh:
			meshes = append(meshes, node)
		case *AxesHelper:
			helpers = append(helpers, node)
		}
	})

	for _, mesh := range meshes {
		for _, t := range mesh.Material.Textures() {
			rend.textures.Upload(t)
		}
	}

	dw, dh := rend.DrawingBufferSize()
	if dw <= 0 || dh <= 0 {
		return
	}
	fw, fh := dw, dh
	if rend.framebufferSize != nil {
		fw, fh = rend.framebufferSize()
	}
	useOffscreen := fw != dw || fh != dh
	if useOffscreen {
		rend.offscreen.ensure(dw, dh)
		gl.BindFramebuffer(gl.FRAMEBUFFER, rend.offscreen.fbo)
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}

	gl.Viewport(0, 0, int32(dw), int32(dh))
	bg := scene.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	viewProjection := camera.GetViewProjection()

	rend.standardShader.Use()
	rend.setFrameUniforms(rend.standardShader.Uniforms(), collectLights(scene), viewProjection, camera)
	for _, mesh := range meshes {
		rend.drawMesh(mesh)
	}

	if len(helpers) > 0 {
		rend.lineShader.Use()
		for _, helper := range helpers {
			rend.drawAxes(helper, viewProjection)
		}
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	if useOffscreen {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rend.offscreen.fbo)
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
		gl.BlitFramebuffer(0, 0, int32(dw), int32(dh), 0, 0, int32(fw), int32(fh), gl.COLOR_BUFFER_BIT, gl.LINEAR)
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
}

func (rend *OpenGLRenderer) setFrameUniforms(u *UniformCache, lights lightSet, viewProjection mgl32.Mat4, camera *PerspectiveCamera) {
	u.SetMat4("viewProjection", viewProjection)
	u.SetVec3("cameraPosition", camera.WorldPosition())
	u.SetVec3("ambientLight", lights.ambient)

	u.SetInt("pointLightCount", int32(len(lights.points)))
	for i, light := range lights.points {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		u.SetVec3(prefix+"position", light.WorldPosition())
		u.SetVec3(prefix+"color", light.Color)
		u.SetFloat(prefix+"intensity", light.Intensity)
		u.SetFloat(prefix+"distance", light.Distance)
		u.SetFloat(prefix+"decay", light.Decay)
	}

	u.SetInt("map", unitMap)
	u.SetInt("aoMap", unitAOMap)
	u.SetInt("displacementMap", unitDisplacementMap)
	u.SetInt("metalnessMap", unitMetalnessMap)
	u.SetInt("roughnessMap", unitRoughnessMap)
	u.SetInt("normalMap", unitNormalMap)
}

func (rend *OpenGLRenderer) drawMesh(mesh *Mesh) {
	geometry := mesh.Geometry
	if geometry == nil || len(geometry.Indices) == 0 {
		return
	}
	if geometry.vao == 0 {
		rend.setupGeometry(geometry)
	}

	u := rend.standardShader.Uniforms()
	model := mesh.MatrixWorld()
	u.SetMat4("model", model)
	u.SetMat3("normalMatrix", model.Mat3().Inv().Transpose())

	material := mesh.Material
	u.SetVec3("diffuseColor", material.Color)
	u.SetFloat("metalness", material.Metalness)
	u.SetFloat("roughness", material.Roughness)
	u.SetFloat("aoMapIntensity", material.AOMapIntensity)
	u.SetFloat("displacementScale", material.DisplacementScale)
	u.SetFloat("displacementBias", material.DisplacementBias)
	u.SetFloat("normalScale", material.NormalScale)

	u.SetBool("hasMap", rend.bindMap(unitMap, material.Map))
	u.SetBool("hasAoMap", rend.bindMap(unitAOMap, material.AOMap))
	u.SetBool("hasDisplacementMap", rend.bindMap(unitDisplacementMap, material.DisplacementMap))
	u.SetBool("hasMetalnessMap", rend.bindMap(unitMetalnessMap, material.MetalnessMap))
	u.SetBool("hasRoughnessMap", rend.bindMap(unitRoughnessMap, material.RoughnessMap))
	u.SetBool("hasNormalMap", rend.bindMap(unitNormalMap, material.NormalMap))

	gl.BindVertexArray(geometry.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(geometry.Indices)), gl.UNSIGNED_INT, nil)

	rend.stats.DrawCalls++
	rend.stats.Triangles += len(geometry.Indices) / 3
}

// bindMap binds t to unit, or the placeholder when t cannot be sampled yet.
func (rend *OpenGLRenderer) bindMap(unit int32, t *Texture) bool {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	if t.Uploaded() {
		gl.BindTexture(gl.TEXTURE_2D, t.ID)
		return true
	}
	gl.BindTexture(gl.TEXTURE_2D, rend.placeholder)
	return false
}

func (rend *OpenGLRenderer) setupGeometry(geometry *Geometry) {
	data := geometry.Interleaved()

	gl.GenVertexArrays(1, &geometry.vao)
	gl.BindVertexArray(geometry.vao)

	gl.GenBuffers(1, &geometry.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, geometry.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &geometry.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geometry.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geometry.Indices)*4, gl.Ptr(geometry.Indices), gl.STATIC_DRAW)

	stride := int32(vertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)

	gl.VertexAttribPointer(3, 2, gl.FLOAT, false, stride, gl.PtrOffset(8*4))
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)
	rend.geometries = append(rend.geometries, geometry)

	logger.Log.Debug("Geometry uploaded",
		zap.Int("vertices", geometry.VertexCount()),
		zap.Int("indices", len(geometry.Indices)))
}

func (rend *OpenGLRenderer) drawAxes(helper *AxesHelper, viewProjection mgl32.Mat4) {
	if helper.vao == 0 {
		data := helper.LineVertices()
		gl.GenVertexArrays(1, &helper.vao)
		gl.BindVertexArray(helper.vao)
		gl.GenBuffers(1, &helper.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, helper.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

		stride := int32(6 * 4)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(1)
		rend.helpers = append(rend.helpers, helper)
	}

	rend.lineShader.Uniforms().SetMat4("mvp", viewProjection.Mul4(helper.MatrixWorld()))
	gl.BindVertexArray(helper.vao)
	gl.DrawArrays(gl.LINES, 0, 6)
	rend.stats.DrawCalls++
}

// Dispose releases every GL object the renderer created.
func (rend *OpenGLRenderer) Dispose() error {
	if !rend.initialized {
		return nil
	}
	var err error

	rend.standardShader.Delete()
	rend.lineShader.Delete()
	err = multierr.Append(err, glError("delete shaders"))

	for _, g := range rend.geometries {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		g.vao, g.vbo, g.ebo = 0, 0, 0
	}
	for _, h := range rend.helpers {
		gl.DeleteVertexArrays(1, &h.vao)
		gl.DeleteBuffers(1, &h.vbo)
		h.vao, h.vbo = 0, 0
	}
	rend.geometries, rend.helpers = nil, nil
	err = multierr.Append(err, glError("delete buffers"))

	rend.textures.LogStats()
	rend.textures.Clear()
	rend.placeholder = 0
	err = multierr.Append(err, glError("delete textures"))

	rend.offscreen.release()
	err = multierr.Append(err, glError("delete offscreen target"))

	rend.initialized = false
	return err
}

// renderTarget is an offscreen framebuffer sized to the drawing buffer.
type renderTarget struct {
	fbo, color, depth uint32
	width, height     int
}

func (rt *renderTarget) ensure(width, height int) {
	if rt.fbo != 0 && rt.width == width && rt.height == height {
		return
	}
	rt.release()

	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)

	gl.GenRenderbuffers(1, &rt.color)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.color)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, rt.color)

	gl.GenRenderbuffers(1, &rt.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.depth)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		logger.Log.Error("Offscreen framebuffer incomplete", zap.Uint32("status", status))
	}
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	rt.width, rt.height = width, height
	logger.Log.Debug("Offscreen target resized", zap.Int("width", width), zap.Int("height", height))
}

func (rt *renderTarget) release() {
	if rt.fbo == 0 {
		return
	}
	gl.DeleteFramebuffers(1, &rt.fbo)
	gl.DeleteRenderbuffers(1, &rt.color)
	gl.DeleteRenderbuffers(1, &rt.depth)
	*rt = renderTarget{}
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}
