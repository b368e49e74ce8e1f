package app

import (
	"fmt"

	"github.com/richinsley/goshaderwave/panel"
	"github.com/richinsley/goshaderwave/scene"
	"github.com/richinsley/goshaderwave/shader"
)

// TimeStep is how far the animation clock advances per tick, in seconds.
const TimeStep = 0.01

// quadPositions are two triangles covering the [-1,1] square at z=0.
var quadPositions = []float32{
	-1.0, -1.0, 0.0,
	1.0, -1.0, 0.0,
	-1.0, 1.0, 0.0,
	1.0, -1.0, 0.0,
	-1.0, 1.0, 0.0,
	1.0, 1.0, 0.0,
}

// PostLoadHook runs once, a fixed delay after the window has loaded.
type PostLoadHook func(m *Mesh)

// Mesh owns the full-screen quad, its shader uniforms and the control panel that
// tunes them.
type Mesh struct {
	// Initial slider values.
	XScale     float64
	YScale     float64
	Distortion float64

	stage    *Stage
	uniforms scene.Uniforms
	object   *scene.Object
	panel    *panel.Panel
	params   struct{ xScale, yScale, distortion float64 }
	diffuse  PostLoadHook
	// clock is accumulated in float64 and narrowed for the uniform, so the
	// uniform keeps advancing long after float32 addition would stall.
	clock float64

	// NewOverlay, when set, builds the on-screen control panel during Init.
	NewOverlay OverlayFactory

	initialized bool
}

func NewMesh(stage *Stage) *Mesh {
	m := &Mesh{
		XScale:     1.0,
		YScale:     0.5,
		Distortion: 0.050,
		stage:      stage,
	}

	var width, height int
	if stage.Initialized() {
		width, height = stage.Surface().DrawingBufferSize()
	}
	m.uniforms = scene.Uniforms{
		"resolution": scene.Vec2(float32(width), float32(height)),
		"time":       scene.Float(0.0),
		"xScale":     scene.Float(float32(m.XScale)),
		"yScale":     scene.Float(float32(m.YScale)),
		"distortion": scene.Float(float32(m.Distortion)),
	}
	return m
}

func (m *Mesh) Init() error {
	if m.initialized {
		return ErrAlreadyInitialized
	}
	if !m.stage.Initialized() {
		return ErrStageNotInitialized
	}
	if err := m.setMesh(); err != nil {
		return err
	}
	if err := m.setGui(); err != nil {
		return err
	}

	m.initialized = true
	return nil
}

func (m *Mesh) setMesh() error {
	geometry, err := scene.NewGeometry(quadPositions, 3)
	if err != nil {
		return fmt.Errorf("failed to build quad geometry: %w", err)
	}

	material := &scene.ShaderMaterial{
		VertexShader:   shader.Vertex(),
		FragmentShader: shader.Fragment(),
		Uniforms:       m.uniforms,
		Side:           scene.DoubleSide,
	}

	m.object = scene.NewObject(geometry, material)
	m.stage.Scene().Add(m.object)
	return nil
}

func (m *Mesh) setGui() error {
	m.params.xScale = m.XScale
	m.params.yScale = m.YScale
	m.params.distortion = m.Distortion

	m.panel = panel.New("goshaderwave")
	m.panel.Add("xScale", &m.params.xScale, 0.00, 5.00, 0.01).OnChange(func(v float64) {
		m.uniforms["xScale"].SetFloat(float32(v))
	})
	m.panel.Add("yScale", &m.params.yScale, 0.00, 1.00, 0.01).OnChange(func(v float64) {
		m.uniforms["yScale"].SetFloat(float32(v))
	})
	m.panel.Add("distortion", &m.params.distortion, 0.001, 0.100, 0.001).OnChange(func(v float64) {
		m.uniforms["distortion"].SetFloat(float32(v))
	})

	if m.NewOverlay == nil {
		return nil
	}
	overlay, err := m.NewOverlay(m.panel)
	if err != nil {
		return fmt.Errorf("failed to create control panel overlay: %w", err)
	}
	m.stage.SetOverlay(overlay)
	return nil
}

// OnRaf advances the animation clock by one tick.
func (m *Mesh) OnRaf() {
	m.SetTime(m.clock + TimeStep)
}

// SetTime moves the animation clock to t seconds.
func (m *Mesh) SetTime(t float64) {
	m.clock = t
	m.uniforms["time"].SetFloat(float32(t))
}

// Time returns the animation clock at full precision.
func (m *Mesh) Time() float64 {
	return m.clock
}

// SetDiffuseHook installs the post-load animation. Without one, Diffuse does nothing.
func (m *Mesh) SetDiffuseHook(h PostLoadHook) {
	m.diffuse = h
}

// Diffuse runs the post-load hook, if any.
func (m *Mesh) Diffuse() {
	if m.diffuse != nil {
		m.diffuse(m)
	}
}

func (m *Mesh) Uniforms() scene.Uniforms {
	return m.uniforms
}

func (m *Mesh) Object() *scene.Object {
	return m.object
}

// Panel returns the control panel, or nil before Init.
func (m *Mesh) Panel() *panel.Panel {
	return m.panel
}

func (m *Mesh) Initialized() bool {
	return m.initialized
}
