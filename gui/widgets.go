package gui

import (
	imgui "github.com/inkyblackness/imgui-go/v4"
)

// widgets draws panel controls with Dear ImGui. It must be used between
// imgui.NewFrame and imgui.Render.
type widgets struct{}

func (widgets) Begin(title string) bool {
	return imgui.BeginV(title, nil, imgui.WindowFlagsAlwaysAutoResize)
}

func (widgets) End() {
	imgui.End()
}

func (widgets) SliderFloat(label string, v *float32, min, max float32, format string) bool {
	return imgui.SliderFloatV(label, v, min, max, format, imgui.SliderFlagsNone)
}
