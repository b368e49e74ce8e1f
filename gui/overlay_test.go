package gui

import (
	"testing"

	imgui "github.com/inkyblackness/imgui-go/v4"
	"github.com/richinsley/goshaderwave/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	width, height int
	now           float64
	x, y          float64
	buttons       [mouseButtons]bool
}

func (in *fakeInput) GetSize() (int, int) { return in.width, in.height }
func (in *fakeInput) GetFramebufferSize() (int, int) {
	return in.width * 2, in.height * 2
}
func (in *fakeInput) Time() float64                 { return in.now }
func (in *fakeInput) CursorPos() (float64, float64) { return in.x, in.y }
func (in *fakeInput) MouseButton(button int) bool   { return in.buttons[button] }

func newWavePanel(x, d *float64) *panel.Panel {
	p := panel.New("goshaderwave")
	p.Add("xScale", x, 0, 5, 0.01)
	p.Add("distortion", d, 0.001, 0.1, 0.001)
	return p
}

func TestOverlayFrame(t *testing.T) {
	x, d := 1.0, 0.05
	in := &fakeInput{width: 640, height: 480, x: -1, y: -1}
	o := newOverlay(in, newWavePanel(&x, &d))
	defer o.Dispose()

	var data imgui.DrawData
	for i := 0; i < 3; i++ {
		in.now += 1.0 / 60
		data = o.frame()
	}
	require.True(t, data.Valid())
	assert.NotEmpty(t, data.CommandLists())

	assert.Equal(t, in.now, o.lastTime)

	// nothing was dragged
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.05, d)
}

func TestOverlayFrameWithStalledClock(t *testing.T) {
	x, d := 1.0, 0.05
	in := &fakeInput{width: 320, height: 200}
	o := newOverlay(in, newWavePanel(&x, &d))
	defer o.Dispose()

	// ImGui asserts on a zero delta; the overlay substitutes one frame at 60Hz
	for i := 0; i < 3; i++ {
		assert.True(t, o.frame().Valid())
	}
	assert.Equal(t, 1.0, x)
}

func TestOverlayDisposeTwice(t *testing.T) {
	x, d := 1.0, 0.05
	o := newOverlay(&fakeInput{width: 10, height: 10}, newWavePanel(&x, &d))
	o.Dispose()
	o.Dispose()
	assert.Nil(t, o.context)
}
