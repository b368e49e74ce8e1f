package gui

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	imgui "github.com/inkyblackness/imgui-go/v4"
	"github.com/richinsley/goshaderwave/renderer"
)

const vertexShader = `#version 410 core
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

// the font atlas is uploaded as a single red channel holding coverage
const fragmentShader = `#version 410 core
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
	Out_Color = vec4(Frag_Color.rgb, Frag_Color.a * texture(Texture, Frag_UV.st).r);
}
`

// glRenderer draws ImGui draw lists with the OpenGL 4.1 core profile.
type glRenderer struct {
	program     uint32
	texture     int32
	projMtx     int32
	position    uint32
	uv          uint32
	color       uint32
	vao         uint32
	vbo         uint32
	ebo         uint32
	fontTexture uint32
}

func newGLRenderer(io imgui.IO) (*glRenderer, error) {
	id, err := renderer.CompileProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}
	r := &glRenderer{
		program:  id,
		texture:  gl.GetUniformLocation(id, gl.Str("Texture\x00")),
		projMtx:  gl.GetUniformLocation(id, gl.Str("ProjMtx\x00")),
		position: uint32(gl.GetAttribLocation(id, gl.Str("Position\x00"))),
		uv:       uint32(gl.GetAttribLocation(id, gl.Str("UV\x00"))),
		color:    uint32(gl.GetAttribLocation(id, gl.Str("Color\x00"))),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	size, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	gl.EnableVertexAttribArray(r.position)
	gl.EnableVertexAttribArray(r.uv)
	gl.EnableVertexAttribArray(r.color)
	gl.VertexAttribPointerWithOffset(r.position, 2, gl.FLOAT, false, int32(size), uintptr(posOffset))
	gl.VertexAttribPointerWithOffset(r.uv, 2, gl.FLOAT, false, int32(size), uintptr(uvOffset))
	gl.VertexAttribPointerWithOffset(r.color, 4, gl.UNSIGNED_BYTE, true, int32(size), uintptr(colOffset))
	gl.BindVertexArray(0)

	image := io.Fonts().TextureDataAlpha8()
	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(image.Width), int32(image.Height), 0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	io.Fonts().SetTextureID(imgui.TextureID(r.fontTexture))

	if e := gl.GetError(); e != gl.NO_ERROR {
		r.dispose()
		return nil, fmt.Errorf("gl error 0x%x while creating overlay resources", e)
	}
	return r, nil
}

// render draws data into the default framebuffer. width and height are the
// display size ImGui laid out against; fbWidth and fbHeight are in pixels.
func (r *glRenderer) render(width, height, fbWidth, fbHeight int, data imgui.DrawData) error {
	if width <= 0 || height <= 0 || fbWidth <= 0 || fbHeight <= 0 || !data.Valid() {
		return nil
	}
	data.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(width),
		Y: float32(fbHeight) / float32(height),
	})

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	// y grows downwards in ImGui
	proj := mgl32.Ortho2D(0, float32(width), float32(height), 0)
	gl.UseProgram(r.program)
	gl.Uniform1i(r.texture, 0)
	gl.UniformMatrix4fv(r.projMtx, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.vao)

	indexSize := imgui.IndexBufferLayout()
	indexType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range data.CommandLists() {
		vertices, verticesSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, verticesSize, vertices, gl.STREAM_DRAW)
		indices, indicesSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indicesSize, indices, gl.STREAM_DRAW)

		var offset uintptr
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				clip := cmd.ClipRect()
				gl.Scissor(int32(clip.X), int32(fbHeight)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, offset)
			}
			offset += uintptr(cmd.ElementCount() * indexSize)
		}
	}

	// the scene pass clears the whole window and expects no blending or scissor
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x while drawing overlay", e)
	}
	return nil
}

func (r *glRenderer) dispose() {
	if r.fontTexture != 0 {
		gl.DeleteTextures(1, &r.fontTexture)
	}
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)
}
