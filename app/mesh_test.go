package app

import (
	"errors"
	"testing"

	"github.com/richinsley/goshaderwave/panel"
	"github.com/richinsley/goshaderwave/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStage(t *testing.T, w, h int, ratio float64) (*Stage, *fakeSurface) {
	t.Helper()
	host := newFakeHost(w, h)
	host.ratio = ratio
	surface := &fakeSurface{}
	s := NewStage(host, surfaceFactory(surface), 0x666666)
	require.NoError(t, s.Init())
	return s, surface
}

func TestMeshRequiresInitializedStage(t *testing.T) {
	s := NewStage(newFakeHost(640, 480), surfaceFactory(&fakeSurface{}), 0)
	m := NewMesh(s)
	assert.ErrorIs(t, m.Init(), ErrStageNotInitialized)
	assert.False(t, m.Initialized())
	assert.Nil(t, m.Panel())
}

func TestMeshInit(t *testing.T) {
	s, _ := newStage(t, 640, 480, 2)
	m := NewMesh(s)
	require.NoError(t, m.Init())
	assert.True(t, m.Initialized())

	require.Equal(t, 1, s.Scene().Len())
	obj := s.Scene().Children()[0]
	assert.Same(t, m.Object(), obj)
	assert.Equal(t, scene.DoubleSide, obj.Material.Side)
	assert.NotEmpty(t, obj.Material.VertexShader)
	assert.NotEmpty(t, obj.Material.FragmentShader)

	g := obj.Geometry
	assert.Equal(t, 6, g.VertexCount())
	assert.Equal(t, 3, g.ItemSize())
	p := g.Positions()
	for i := 0; i < len(p); i += 3 {
		assert.Contains(t, []float32{-1, 1}, p[i])
		assert.Contains(t, []float32{-1, 1}, p[i+1])
		assert.Equal(t, float32(0), p[i+2])
	}

	u := m.Uniforms()
	assert.Equal(t, []string{"distortion", "resolution", "time", "xScale", "yScale"}, u.Names())
	x, y := u["resolution"].Vec2()
	assert.Equal(t, float32(1280), x)
	assert.Equal(t, float32(960), y)
	assert.Equal(t, scene.UniformVec2, u["resolution"].Type)
	assert.Equal(t, float32(0), u["time"].Float())
	assert.Equal(t, float32(1), u["xScale"].Float())
	assert.Equal(t, float32(0.5), u["yScale"].Float())
	assert.Equal(t, float32(0.05), u["distortion"].Float())

	// the material reads the mesh's uniforms, not a copy
	u["time"].SetFloat(3)
	assert.Equal(t, float32(3), obj.Material.Uniforms["time"].Float())

	assert.ErrorIs(t, m.Init(), ErrAlreadyInitialized)
	assert.Equal(t, 1, s.Scene().Len())
}

func TestMeshTimeAdvances(t *testing.T) {
	s, _ := newStage(t, 640, 480, 1)
	m := NewMesh(s)
	require.NoError(t, m.Init())

	prev := m.Uniforms()["time"].Float()
	for i := 1; i <= 500; i++ {
		m.OnRaf()
		cur := m.Uniforms()["time"].Float()
		assert.Greater(t, cur, prev)
		assert.InDelta(t, TimeStep, cur-prev, 1e-4)
		assert.InDelta(t, 0.01*float64(i), cur, 1e-3)
		prev = cur
	}
	assert.Equal(t, 6, m.Object().Geometry.VertexCount())
}

func TestMeshTimeKeepsAdvancingAtLargeValues(t *testing.T) {
	s, _ := newStage(t, 640, 480, 1)
	m := NewMesh(s)
	require.NoError(t, m.Init())

	// float32 addition of 0.01 stalls at this magnitude
	m.SetTime(262144)
	start := m.Uniforms()["time"].Float()
	for i := 0; i < 1000; i++ {
		m.OnRaf()
	}
	assert.Greater(t, m.Uniforms()["time"].Float(), start)
	assert.InDelta(t, 262154, m.Time(), 1e-6)
	assert.InDelta(t, 262154, m.Uniforms()["time"].Float(), 0.05)
}

func TestMeshTimeDoesNotDrift(t *testing.T) {
	s, _ := newStage(t, 640, 480, 1)
	m := NewMesh(s)
	require.NoError(t, m.Init())

	// 100 minutes at 60 ticks per second
	for i := 0; i < 360000; i++ {
		m.OnRaf()
	}
	assert.InDelta(t, 3600, m.Time(), 1e-6)
	assert.InDelta(t, 3600, m.Uniforms()["time"].Float(), 1e-3)
}

func TestMeshBuildsOverlayForPanel(t *testing.T) {
	s, surface := newStage(t, 640, 480, 1)
	m := NewMesh(s)
	overlay := &fakeOverlay{surface: surface}
	var got *panel.Panel
	m.NewOverlay = func(p *panel.Panel) (Overlay, error) {
		got = p
		return overlay, nil
	}
	require.NoError(t, m.Init())
	require.NotNil(t, got)
	assert.Same(t, m.Panel(), got)

	require.NoError(t, s.OnRaf())
	require.NoError(t, s.OnRaf())
	assert.Equal(t, []int{1, 2}, overlay.drawnAfter)

	overlay.err = errors.New("lost font texture")
	assert.ErrorIs(t, s.OnRaf(), overlay.err)
}

func TestMeshOverlayFailure(t *testing.T) {
	s, _ := newStage(t, 640, 480, 1)
	m := NewMesh(s)
	boom := errors.New("no imgui context")
	m.NewOverlay = func(p *panel.Panel) (Overlay, error) { return nil, boom }
	assert.ErrorIs(t, m.Init(), boom)
	assert.False(t, m.Initialized())
}

func TestMeshSlidersAreIsolated(t *testing.T) {
	cases := []struct {
		label string
		value float64
	}{
		{"xScale", 0},
		{"xScale", 2.5},
		{"xScale", 5},
		{"yScale", 0},
		{"yScale", 0.73},
		{"yScale", 1},
		{"distortion", 0.001},
		{"distortion", 0.042},
		{"distortion", 0.1},
	}
	for _, c := range cases {
		s, _ := newStage(t, 640, 480, 1)
		m := NewMesh(s)
		require.NoError(t, m.Init())

		before := map[string][]float32{}
		for name, u := range m.Uniforms() {
			before[name] = u.Values()
		}

		slider := m.Panel().Slider(c.label)
		require.NotNil(t, slider, c.label)
		slider.SetValue(c.value)

		for name, u := range m.Uniforms() {
			if name == c.label {
				assert.InDelta(t, c.value, u.Float(), 1e-6, c.label)
				continue
			}
			assert.Equal(t, before[name], u.Values(), "%s changed when moving %s", name, c.label)
		}
		// the mirrored initial values are untouched
		assert.Equal(t, 1.0, m.XScale)
		assert.Equal(t, 0.5, m.YScale)
		assert.Equal(t, 0.05, m.Distortion)
	}
}

func TestMeshSliderRanges(t *testing.T) {
	s, _ := newStage(t, 640, 480, 1)
	m := NewMesh(s)
	require.NoError(t, m.Init())

	want := map[string][3]float64{
		"xScale":     {0, 5, 0.01},
		"yScale":     {0, 1, 0.01},
		"distortion": {0.001, 0.1, 0.001},
	}
	initial := map[string]float64{"xScale": 1, "yScale": 0.5, "distortion": 0.05}
	sliders := m.Panel().Sliders()
	require.Len(t, sliders, 3)
	for _, sl := range sliders {
		r := want[sl.Label]
		assert.Equal(t, r[0], sl.Min, sl.Label)
		assert.Equal(t, r[1], sl.Max, sl.Label)
		assert.Equal(t, r[2], sl.Step, sl.Label)
		assert.Equal(t, initial[sl.Label], sl.Value(), sl.Label)
	}

	m.Panel().Slider("xScale").SetValue(9)
	assert.Equal(t, float32(5), m.Uniforms()["xScale"].Float())
}

func TestMeshDiffuseIsDormantByDefault(t *testing.T) {
	s, _ := newStage(t, 640, 480, 1)
	m := NewMesh(s)
	require.NoError(t, m.Init())

	before := map[string][]float32{}
	for name, u := range m.Uniforms() {
		before[name] = u.Values()
	}
	m.Diffuse()
	for name, u := range m.Uniforms() {
		assert.Equal(t, before[name], u.Values())
	}

	var got *Mesh
	m.SetDiffuseHook(func(mm *Mesh) { got = mm })
	m.Diffuse()
	assert.Same(t, m, got)
}
