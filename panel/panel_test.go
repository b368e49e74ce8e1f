package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys map[string]func()

func (k fakeKeys) RegisterKey(name string, f func()) {
	k[name] = f
}

type fakeDisplay struct {
	titles []string
}

func (d *fakeDisplay) SetTitle(title string) {
	d.titles = append(d.titles, title)
}

func (d *fakeDisplay) last() string {
	if len(d.titles) == 0 {
		return ""
	}
	return d.titles[len(d.titles)-1]
}

func TestSliderClampAndSnap(t *testing.T) {
	v := 1.0
	p := New("")
	s := p.Add("xScale", &v, 0, 5, 0.01)

	var got []float64
	s.OnChange(func(x float64) { got = append(got, x) })

	s.SetValue(1.234)
	assert.Equal(t, 1.23, v)
	s.SetValue(7)
	assert.Equal(t, 5.0, v)
	s.SetValue(-1)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, []float64{1.23, 5, 0}, got)
}

func TestSliderOffsetMinimum(t *testing.T) {
	v := 0.05
	s := New("").Add("distortion", &v, 0.001, 0.1, 0.001)
	s.SetValue(0.0504)
	assert.Equal(t, 0.05, v)
	s.Nudge(3)
	assert.Equal(t, 0.053, v)
	s.SetValue(0)
	assert.Equal(t, 0.001, v)
	assert.Equal(t, "distortion=0.001", s.String())
}

func TestSliderKeepsInitialValueUntilMoved(t *testing.T) {
	v := 0.5
	s := New("").Add("yScale", &v, 0, 1, 0.01)
	assert.Equal(t, 0.5, s.Value())
	s.Nudge(-1)
	assert.Equal(t, 0.49, v)
	s.Nudge(100)
	assert.Equal(t, 1.0, v)
}

func TestPanelSelection(t *testing.T) {
	p := New("wave")
	assert.Nil(t, p.Selected())
	p.Next()
	p.Prev()
	p.Adjust(1)

	a, b := 1.0, 0.5
	p.Add("a", &a, 0, 5, 0.01)
	p.Add("b", &b, 0, 1, 0.01)
	require.Len(t, p.Sliders(), 2)
	assert.Equal(t, "a", p.Selected().Label)
	p.Next()
	assert.Equal(t, "b", p.Selected().Label)
	p.Next()
	assert.Equal(t, "a", p.Selected().Label)
	p.Prev()
	assert.Equal(t, "b", p.Selected().Label)
	assert.Same(t, p.Sliders()[0], p.Slider("a"))
	assert.Nil(t, p.Slider("missing"))
}

func TestPanelBind(t *testing.T) {
	a, b := 1.0, 0.5
	p := New("wave")
	p.Add("a", &a, 0, 5, 0.01)
	p.Add("b", &b, 0, 1, 0.01)

	keys := fakeKeys{}
	d := &fakeDisplay{}
	p.Bind(keys, d)
	for _, name := range []string{"tab", "pageup", "pagedown", "up", "down", "left", "right"} {
		assert.Contains(t, keys, name)
	}
	assert.Equal(t, "wave | [a=1.00] | b=0.50", d.last())

	keys["right"]()
	keys["up"]()
	assert.Equal(t, 1.02, a)
	keys["tab"]()
	keys["down"]()
	assert.Equal(t, 0.49, b)
	assert.Equal(t, "wave | a=1.02 | [b=0.49]", d.last())
	keys["pageup"]()
	keys["left"]()
	assert.Equal(t, 1.01, a)
}

// fakeWidgets drags the sliders named in moves to the given values.
type fakeWidgets struct {
	hidden  bool
	moves   map[string]float32
	titles  []string
	shown   map[string]float32
	formats map[string]string
	ends    int
}

func newFakeWidgets() *fakeWidgets {
	return &fakeWidgets{
		moves:   map[string]float32{},
		shown:   map[string]float32{},
		formats: map[string]string{},
	}
}

func (w *fakeWidgets) Begin(title string) bool {
	w.titles = append(w.titles, title)
	return !w.hidden
}

func (w *fakeWidgets) End() { w.ends++ }

func (w *fakeWidgets) SliderFloat(label string, v *float32, min, max float32, format string) bool {
	w.shown[label] = *v
	w.formats[label] = format
	nv, ok := w.moves[label]
	if !ok {
		return false
	}
	*v = nv
	return true
}

func TestPanelDraw(t *testing.T) {
	x, d := 1.0, 0.05
	p := New("wave")
	var changed []float64
	p.Add("xScale", &x, 0, 5, 0.01)
	p.Add("distortion", &d, 0.001, 0.1, 0.001).OnChange(func(v float64) { changed = append(changed, v) })
	display := &fakeDisplay{}
	p.Bind(fakeKeys{}, display)

	w := newFakeWidgets()
	p.Draw(w)
	assert.Equal(t, []string{"wave"}, w.titles)
	assert.Equal(t, 1, w.ends)
	assert.Equal(t, float32(1), w.shown["xScale"])
	assert.InDelta(t, 0.05, w.shown["distortion"], 1e-7)
	assert.Equal(t, "%.2f", w.formats["xScale"])
	assert.Equal(t, "%.3f", w.formats["distortion"])
	assert.Empty(t, changed)
	assert.Same(t, p.Slider("xScale"), p.Selected())

	// a drag is snapped and clamped like any other change
	w.moves["distortion"] = 0.04231
	p.Draw(w)
	assert.Equal(t, 0.042, d)
	assert.Equal(t, []float64{0.042}, changed)
	assert.Equal(t, 1.0, x)
	assert.Same(t, p.Slider("distortion"), p.Selected())
	assert.Equal(t, "wave | xScale=1.00 | [distortion=0.042]", display.last())

	w.moves = map[string]float32{"xScale": 9}
	p.Draw(w)
	assert.Equal(t, 5.0, x)
}

func TestPanelDrawCollapsed(t *testing.T) {
	x := 1.0
	p := New("wave")
	p.Add("xScale", &x, 0, 5, 0.01)

	w := newFakeWidgets()
	w.hidden = true
	w.moves["xScale"] = 3
	p.Draw(w)
	assert.Empty(t, w.shown)
	assert.Equal(t, 1, w.ends)
	assert.Equal(t, 1.0, x)
}

func TestSliderFormat(t *testing.T) {
	v := 0.0
	p := New("")
	assert.Equal(t, "%.0f", p.Add("count", &v, 0, 10, 1).Format())
	assert.Equal(t, "%.2f", p.Add("scale", &v, 0, 1, 0.25).Format())
	assert.Equal(t, "%g", p.Add("free", &v, 0, 1, 0).Format())
}
