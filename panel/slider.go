package panel

import (
	"fmt"
	"math"
	"strconv"
)

// Slider is a bounded numeric control bound to a float64 field. Every change is
// clamped to [Min, Max], snapped to Step and written back to the bound field.
type Slider struct {
	Label string
	Min   float64
	Max   float64
	Step  float64

	target   *float64
	onChange func(float64)
}

// Value returns the current value of the bound field.
func (s *Slider) Value() float64 {
	return *s.target
}

// OnChange sets the callback fired after each change.
func (s *Slider) OnChange(f func(float64)) *Slider {
	s.onChange = f
	return s
}

// SetValue moves the slider to v and fires the change callback.
func (s *Slider) SetValue(v float64) {
	v = s.snap(v)
	*s.target = v
	if s.onChange != nil {
		s.onChange(v)
	}
}

// Nudge moves the slider by n steps.
func (s *Slider) Nudge(n int) {
	s.SetValue(*s.target + float64(n)*s.Step)
}

func (s *Slider) snap(v float64) float64 {
	if math.IsNaN(v) {
		v = s.Min
	}
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		// trim the float noise the multiplication leaves behind
		v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'f', s.precision(), 64), 64)
	}
	return math.Min(math.Max(v, s.Min), s.Max)
}

// precision is the number of decimals needed to display Step.
func (s *Slider) precision() int {
	if s.Step <= 0 {
		return -1
	}
	p := 0
	for step := s.Step; p < 10 && math.Abs(step-math.Round(step)) > 1e-9; step *= 10 {
		p++
	}
	return p
}

// Format is the printf verb that shows the value at the precision of Step.
func (s *Slider) Format() string {
	if p := s.precision(); p >= 0 {
		return fmt.Sprintf("%%.%df", p)
	}
	return "%g"
}

func (s *Slider) String() string {
	return fmt.Sprintf("%s=%s", s.Label, strconv.FormatFloat(*s.target, 'f', s.precision(), 64))
}
