package renderer

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshaderwave/scene"
)

var glInitOnce sync.Once

// Renderer draws a scene.Scene with OpenGL 4.1. It plays the role of a drawing
// surface: a logical size, a pixel ratio and a clear colour. The context that was
// current when New was called must be current for every other call.
type Renderer struct {
	ctx        context.Context
	gles       bool
	width      int
	height     int
	pixelRatio float64
	clearColor scene.Color

	programs map[*scene.ShaderMaterial]*program
	arrays   map[*scene.Geometry]*vertexArray
	target   *OffscreenTarget
}

// New loads the OpenGL entry points for the current context. gles selects the
// shader dialect programs are translated to.
func New(ctx context.Context, gles bool) (*Renderer, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return &Renderer{
		ctx:        ctx,
		gles:       gles,
		pixelRatio: 1,
		programs:   make(map[*scene.ShaderMaterial]*program),
		arrays:     make(map[*scene.Geometry]*vertexArray),
	}, nil
}

func (r *Renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
}

func (r *Renderer) SetClearColor(c scene.Color) {
	r.clearColor = c
}

// SetSize sets the logical size of the surface in screen coordinates.
func (r *Renderer) SetSize(width, height int) {
	r.width = width
	r.height = height
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// DrawingBufferSize is the size in pixels the scene is rasterized at. With an
// offscreen target attached it is the target's size.
func (r *Renderer) DrawingBufferSize() (int, int) {
	if r.target != nil {
		return r.target.width, r.target.height
	}
	return int(math.Floor(float64(r.width) * r.pixelRatio)), int(math.Floor(float64(r.height) * r.pixelRatio))
}

// SetRenderTarget redirects rendering into t. A nil target restores the window.
func (r *Renderer) SetRenderTarget(t *OffscreenTarget) {
	r.target = t
}

// ReadPixels returns the RGBA contents of the attached offscreen target.
func (r *Renderer) ReadPixels() ([]byte, error) {
	if r.target == nil {
		return nil, fmt.Errorf("no offscreen target attached")
	}
	return r.target.ReadPixels(), nil
}

// Render draws every visible object of s as seen through camera.
func (r *Renderer) Render(s *scene.Scene, camera *scene.OrthographicCamera) error {
	width, height := r.DrawingBufferSize()
	var fbo uint32
	if r.target != nil {
		fbo = r.target.fbo
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(r.clearColor.R, r.clearColor.G, r.clearColor.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for _, obj := range s.Children() {
		if !obj.Visible || obj.Geometry == nil || obj.Material == nil {
			continue
		}
		prog, err := r.program(obj.Material)
		if err != nil {
			return err
		}
		va := r.vertexArray(obj.Geometry)

		applySide(obj.Material.Side)
		gl.UseProgram(prog.id)
		prog.upload(obj.Material.Uniforms)
		if camera != nil {
			prog.uploadProjection(camera.ProjectionMatrix())
		}
		gl.BindVertexArray(va.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, va.count)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	if fbo != 0 {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
	return nil
}

// Dispose releases every GL object the renderer created. The offscreen target is
// owned by the caller.
func (r *Renderer) Dispose() {
	for m, p := range r.programs {
		gl.DeleteProgram(p.id)
		delete(r.programs, m)
	}
	for g, va := range r.arrays {
		va.destroy()
		delete(r.arrays, g)
	}
}

func applySide(side scene.Side) {
	switch side {
	case scene.DoubleSide:
		gl.Disable(gl.CULL_FACE)
	case scene.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
}

type vertexArray struct {
	vao   uint32
	vbo   uint32
	count int32
}

func (r *Renderer) vertexArray(g *scene.Geometry) *vertexArray {
	if va, ok := r.arrays[g]; ok {
		return va
	}

	positions := g.Positions()
	itemSize := int32(g.ItemSize())
	va := &vertexArray{count: int32(g.VertexCount())}
	gl.GenVertexArrays(1, &va.vao)
	gl.GenBuffers(1, &va.vbo)
	gl.BindVertexArray(va.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, itemSize, gl.FLOAT, false, itemSize*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.arrays[g] = va
	return va
}

func (va *vertexArray) destroy() {
	gl.DeleteBuffers(1, &va.vbo)
	gl.DeleteVertexArrays(1, &va.vao)
}
