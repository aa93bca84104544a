package debugui

import (
	"fmt"

	"PBRShowcase/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/multierr"
)

// OpenGL3 draws imgui draw lists.
type OpenGL3 struct {
	io imgui.IO

	shaderHandle      uint32
	attribLocationTex int32
	attribLocationPrj int32
	attribLocationPos int32
	attribLocationUV  int32
	attribLocationCol int32
	fontTexture       uint32
	vboHandle         uint32
	elementsHandle    uint32
}

func NewOpenGL3(io imgui.IO) (*OpenGL3, error) {
	r := &OpenGL3{io: io}
	if err := r.createDeviceObjects(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *OpenGL3) createDeviceObjects() error {
	vertex, err := renderer.GenShader(imguiVertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("imgui vertex shader: %w", err)
	}
	fragment, err := renderer.GenShader(imguiFragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return fmt.Errorf("imgui fragment shader: %w", err)
	}
	r.shaderHandle, err = renderer.GenShaderProgram(vertex, fragment)
	if err != nil {
		return fmt.Errorf("imgui program: %w", err)
	}

	r.attribLocationTex = gl.GetUniformLocation(r.shaderHandle, gl.Str("Texture\x00"))
	r.attribLocationPrj = gl.GetUniformLocation(r.shaderHandle, gl.Str("ProjMtx\x00"))
	r.attribLocationPos = gl.GetAttribLocation(r.shaderHandle, gl.Str("Position\x00"))
	r.attribLocationUV = gl.GetAttribLocation(r.shaderHandle, gl.Str("UV\x00"))
	r.attribLocationCol = gl.GetAttribLocation(r.shaderHandle, gl.Str("Color\x00"))

	gl.GenBuffers(1, &r.vboHandle)
	gl.GenBuffers(1, &r.elementsHandle)

	r.createFontsTexture()
	return nil
}

func (r *OpenGL3) createFontsTexture() {
	image := r.io.Fonts().TextureDataRGBA32()

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)
	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(image.Width), int32(image.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels)

	r.io.Fonts().SetTextureID(imgui.TextureID(r.fontTexture))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
}

// Render draws drawData over whatever is in the default framebuffer.
func (r *OpenGL3) Render(displaySize [2]float32, framebufferSize [2]float32, drawData imgui.DrawData) {
	displayWidth, displayHeight := displaySize[0], displaySize[1]
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{
		X: fbWidth / displayWidth,
		Y: fbHeight / displayHeight,
	})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	orthoProjection := [4][4]float32{
		{2.0 / displayWidth, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -displayHeight, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}
	gl.UseProgram(r.shaderHandle)
	gl.Uniform1i(r.attribLocationTex, 0)
	gl.UniformMatrix4fv(r.attribLocationPrj, 1, false, &orthoProjection[0][0])
	gl.BindSampler(0, 0)

	var vaoHandle uint32
	gl.GenVertexArrays(1, &vaoHandle)
	gl.BindVertexArray(vaoHandle)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vboHandle)
	gl.EnableVertexAttribArray(uint32(r.attribLocationPos))
	gl.EnableVertexAttribArray(uint32(r.attribLocationUV))
	gl.EnableVertexAttribArray(uint32(r.attribLocationCol))
	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointerWithOffset(uint32(r.attribLocationPos), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(uint32(r.attribLocationUV), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUv))
	gl.VertexAttribPointerWithOffset(uint32(r.attribLocationCol), 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetCol))
	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	gl.ActiveTexture(gl.TEXTURE0)
	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vboHandle)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elementsHandle)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		indexBufferOffset := 0
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clipRect := cmd.ClipRect()
				gl.Scissor(int32(clipRect.X), int32(fbHeight)-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
				gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, gl.PtrOffset(indexBufferOffset))
			}
			indexBufferOffset += cmd.ElementCount() * indexSize
		}
	}
	gl.DeleteVertexArrays(1, &vaoHandle)

	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
	if renderer.Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
}

// Dispose deletes the GL objects created by NewOpenGL3.
func (r *OpenGL3) Dispose() error {
	if r.vboHandle != 0 {
		gl.DeleteBuffers(1, &r.vboHandle)
		r.vboHandle = 0
	}
	if r.elementsHandle != 0 {
		gl.DeleteBuffers(1, &r.elementsHandle)
		r.elementsHandle = 0
	}
	if r.shaderHandle != 0 {
		gl.DeleteProgram(r.shaderHandle)
		r.shaderHandle = 0
	}
	var err error
	if code := gl.GetError(); code != gl.NO_ERROR {
		err = multierr.Append(err, fmt.Errorf("delete imgui buffers: gl error 0x%x", code))
	}
	if r.fontTexture != 0 {
		gl.DeleteTextures(1, &r.fontTexture)
		r.io.Fonts().SetTextureID(0)
		r.fontTexture = 0
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		err = multierr.Append(err, fmt.Errorf("delete imgui font texture: gl error 0x%x", code))
	}
	return err
}

var imguiVertexSource = `#version 150

uniform mat4 ProjMtx;

in vec2 Position;
in vec2 UV;
in vec4 Color;

out vec2 Frag_UV;
out vec4 Frag_Color;

void main() {
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

var imguiFragmentSource = `#version 150

uniform sampler2D Texture;

in vec2 Frag_UV;
in vec4 Frag_Color;

out vec4 Out_Color;

void main() {
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
`
