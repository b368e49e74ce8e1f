// Package panel provides a control panel of numeric sliders. It is drawn through an
// immediate-mode Widgets toolkit, driven from the keyboard, and mirrored into a
// Display such as the window title.
package panel

import (
	"log"
	"strings"
)

// Display receives the panel summary whenever it changes.
type Display interface {
	SetTitle(title string)
}

// KeyBinder registers a callback for a key press. Keys are named in lower case:
// "tab", "pageup", "pagedown", "up", "down", "left", "right".
type KeyBinder interface {
	RegisterKey(name string, f func())
}

// Widgets is the immediate-mode toolkit the panel lays itself out with each frame.
type Widgets interface {
	// Begin opens the panel window and reports whether its contents are visible.
	// End is called either way.
	Begin(title string) bool
	End()
	// SliderFloat shows v and reports whether the user changed it.
	SliderFloat(label string, v *float32, min, max float32, format string) bool
}

type Panel struct {
	Title    string
	sliders  []*Slider
	selected int
	display  Display
}

func New(title string) *Panel {
	return &Panel{Title: title}
}

// Add registers a slider over target. The target keeps its current value; it is
// only snapped once the slider is first moved.
func (p *Panel) Add(label string, target *float64, min, max, step float64) *Slider {
	s := &Slider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		target: target,
	}
	p.sliders = append(p.sliders, s)
	return s
}

func (p *Panel) Sliders() []*Slider {
	out := make([]*Slider, len(p.sliders))
	copy(out, p.sliders)
	return out
}

// Slider looks up a slider by label.
func (p *Panel) Slider(label string) *Slider {
	for _, s := range p.sliders {
		if s.Label == label {
			return s
		}
	}
	return nil
}

// Selected returns the slider the keyboard currently adjusts, or nil for an empty panel.
func (p *Panel) Selected() *Slider {
	if len(p.sliders) == 0 {
		return nil
	}
	return p.sliders[p.selected]
}

func (p *Panel) Next() {
	if len(p.sliders) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.sliders)
	p.refresh()
}

func (p *Panel) Prev() {
	if len(p.sliders) == 0 {
		return
	}
	p.selected = (p.selected + len(p.sliders) - 1) % len(p.sliders)
	p.refresh()
}

// Adjust nudges the selected slider by n steps.
func (p *Panel) Adjust(n int) {
	s := p.Selected()
	if s == nil {
		return
	}
	s.Nudge(n)
	log.Printf("panel: %s", s)
	p.refresh()
}

// Draw lays the sliders out in w. A slider the user drags becomes the selected one
// and takes the new value through SetValue, so the usual clamping, snapping and
// callbacks apply.
func (p *Panel) Draw(w Widgets) {
	if w.Begin(p.Title) {
		for i, s := range p.sliders {
			v := float32(s.Value())
			if !w.SliderFloat(s.Label, &v, float32(s.Min), float32(s.Max), s.Format()) {
				continue
			}
			p.selected = i
			s.SetValue(float64(v))
			p.refresh()
		}
	}
	w.End()
}

// String renders the panel summary with the selected slider bracketed.
func (p *Panel) String() string {
	parts := make([]string, 0, len(p.sliders)+1)
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	for i, s := range p.sliders {
		if i == p.selected {
			parts = append(parts, "["+s.String()+"]")
		} else {
			parts = append(parts, s.String())
		}
	}
	return strings.Join(parts, " | ")
}

// Bind wires the panel to keyboard input and mirrors its state into display.
// Tab and PageDown select the next slider, PageUp the previous one; Right/Up
// increase and Left/Down decrease the selected value by one step.
func (p *Panel) Bind(keys KeyBinder, display Display) {
	p.display = display
	keys.RegisterKey("tab", p.Next)
	keys.RegisterKey("pagedown", p.Next)
	keys.RegisterKey("pageup", p.Prev)
	keys.RegisterKey("right", func() { p.Adjust(1) })
	keys.RegisterKey("up", func() { p.Adjust(1) })
	keys.RegisterKey("left", func() { p.Adjust(-1) })
	keys.RegisterKey("down", func() { p.Adjust(-1) })
	p.refresh()
}

func (p *Panel) refresh() {
	if p.display != nil {
		p.display.SetTitle(p.String())
	}
}
