package graphics

// Context defines the host window and OpenGL context the demo runs in.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	// EndFrame presents the back buffer.
	EndFrame()
	// PollEvents dispatches pending window events, including resize and key callbacks.
	PollEvents()
	GetFramebufferSize() (int, int)
	// GetSize returns the window size in screen coordinates.
	GetSize() (int, int)
	// PixelRatio is the device pixel ratio of the monitor the window is on.
	PixelRatio() float64
	Time() float64
	SetResizeCallback(f func(width, height int))
	RegisterKey(name string, f func())
	SetTitle(title string)
}
