// Package gui draws the control panel over the scene with Dear ImGui.
package gui

import (
	"fmt"
	"log"

	imgui "github.com/inkyblackness/imgui-go/v4"
	"github.com/richinsley/goshaderwave/panel"
)

// Input is the window state the overlay reads every frame. Sizes are in screen
// coordinates except GetFramebufferSize, which is in pixels.
type Input interface {
	GetSize() (int, int)
	GetFramebufferSize() (int, int)
	Time() float64
	CursorPos() (float64, float64)
	// MouseButton reports whether button 0 (left), 1 (right) or 2 (middle) is down.
	MouseButton(button int) bool
}

const mouseButtons = 3

// Overlay owns an ImGui context and draws a panel into the current framebuffer.
type Overlay struct {
	context  *imgui.Context
	io       imgui.IO
	input    Input
	panel    *panel.Panel
	renderer *glRenderer
	lastTime float64
}

// New creates the ImGui context and its GL resources. The GL context must be
// current.
func New(input Input, p *panel.Panel) (*Overlay, error) {
	o := newOverlay(input, p)
	r, err := newGLRenderer(o.io)
	if err != nil {
		o.context.Destroy()
		return nil, fmt.Errorf("failed to create imgui renderer: %w", err)
	}
	o.renderer = r
	log.Printf("Control panel overlay ready")
	return o, nil
}

func newOverlay(input Input, p *panel.Panel) *Overlay {
	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	// build the font atlas up front so frames can be produced before upload
	io.Fonts().TextureDataAlpha8()

	return &Overlay{
		context:  ctx,
		io:       io,
		input:    input,
		panel:    p,
		lastTime: input.Time(),
	}
}

// frame feeds the window state to ImGui, lays out the panel and returns the
// resulting draw lists.
func (o *Overlay) frame() imgui.DrawData {
	width, height := o.input.GetSize()
	o.io.SetDisplaySize(imgui.Vec2{X: float32(width), Y: float32(height)})

	now := o.input.Time()
	dt := now - o.lastTime
	if dt <= 0 {
		dt = 1.0 / 60
	}
	o.io.SetDeltaTime(float32(dt))
	o.lastTime = now

	x, y := o.input.CursorPos()
	o.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	for i := 0; i < mouseButtons; i++ {
		o.io.SetMouseButtonDown(i, o.input.MouseButton(i))
	}

	imgui.NewFrame()
	o.panel.Draw(widgets{})
	imgui.Render()
	return imgui.RenderedDrawData()
}

// Draw runs one ImGui frame and renders it over whatever is in the window.
func (o *Overlay) Draw() error {
	data := o.frame()
	width, height := o.input.GetSize()
	fbWidth, fbHeight := o.input.GetFramebufferSize()
	return o.renderer.render(width, height, fbWidth, fbHeight, data)
}

// Dispose releases the GL resources and the ImGui context.
func (o *Overlay) Dispose() {
	if o.renderer != nil {
		o.renderer.dispose()
		o.renderer = nil
	}
	if o.context != nil {
		o.context.Destroy()
		o.context = nil
	}
}
