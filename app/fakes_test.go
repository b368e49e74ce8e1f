package app

import (
	"errors"

	"github.com/richinsley/goshaderwave/scene"
)

type fakeHost struct {
	width, height int
	ratio         float64
	now           float64
	closed        bool
	closeAfter    int
	onEndFrame    func(frames int)

	resize    func(width, height int)
	keys      map[string]func()
	titles    []string
	polls     int
	endFrames int
}

func newFakeHost(width, height int) *fakeHost {
	return &fakeHost{width: width, height: height, ratio: 1, keys: map[string]func(){}}
}

func (h *fakeHost) MakeCurrent()                      {}
func (h *fakeHost) Shutdown()                         {}
func (h *fakeHost) ShouldClose() bool                 { return h.closed }
func (h *fakeHost) SetShouldClose(v bool)             { h.closed = v }
func (h *fakeHost) PollEvents()                       { h.polls++ }
func (h *fakeHost) GetSize() (int, int)               { return h.width, h.height }
func (h *fakeHost) PixelRatio() float64               { return h.ratio }
func (h *fakeHost) Time() float64                     { return h.now }
func (h *fakeHost) SetTitle(title string)             { h.titles = append(h.titles, title) }
func (h *fakeHost) RegisterKey(name string, f func()) { h.keys[name] = f }

func (h *fakeHost) SetResizeCallback(f func(width, height int)) { h.resize = f }

func (h *fakeHost) GetFramebufferSize() (int, int) {
	return int(float64(h.width) * h.ratio), int(float64(h.height) * h.ratio)
}

func (h *fakeHost) EndFrame() {
	h.endFrames++
	h.now += 1.0 / 60
	if h.onEndFrame != nil {
		h.onEndFrame(h.endFrames)
	}
	if h.closeAfter > 0 && h.endFrames >= h.closeAfter {
		h.closed = true
	}
}

// resizeTo mimics the window system changing the size and firing the callback.
func (h *fakeHost) resizeTo(width, height int) {
	h.width, h.height = width, height
	if h.resize != nil {
		h.resize(width, height)
	}
}

type fakeSurface struct {
	ratio         float64
	clear         scene.Color
	width, height int
	renders       int
	renderErr     error
	// time uniform value observed at each draw
	drawnTimes []float32
	children   []int
}

func (s *fakeSurface) SetPixelRatio(ratio float64) { s.ratio = ratio }
func (s *fakeSurface) SetClearColor(c scene.Color) { s.clear = c }
func (s *fakeSurface) SetSize(width, height int)   { s.width, s.height = width, height }
func (s *fakeSurface) Size() (int, int)            { return s.width, s.height }

func (s *fakeSurface) DrawingBufferSize() (int, int) {
	return int(float64(s.width) * s.ratio), int(float64(s.height) * s.ratio)
}

func (s *fakeSurface) Render(sc *scene.Scene, camera *scene.OrthographicCamera) error {
	if s.renderErr != nil {
		return s.renderErr
	}
	s.renders++
	s.children = append(s.children, sc.Len())
	for _, obj := range sc.Children() {
		if u, ok := obj.Material.Uniforms["time"]; ok {
			s.drawnTimes = append(s.drawnTimes, u.Float())
		}
	}
	return nil
}

func (s *fakeSurface) ReadPixels() ([]byte, error) {
	if s.renders == 0 {
		return nil, errors.New("nothing rendered")
	}
	return []byte{byte(s.renders)}, nil
}

type frameSink struct {
	frames [][]byte
	err    error
}

func (f *frameSink) WriteFrame(pixels []byte) error {
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, pixels)
	return nil
}

func surfaceFactory(s *fakeSurface) func() (Surface, error) {
	return func() (Surface, error) { return s, nil }
}

// fakeOverlay notes how many scene draws had happened each time it was drawn.
type fakeOverlay struct {
	surface    *fakeSurface
	drawnAfter []int
	err        error
}

func (o *fakeOverlay) Draw() error {
	if o.err != nil {
		return o.err
	}
	o.drawnAfter = append(o.drawnAfter, o.surface.renders)
	return nil
}
