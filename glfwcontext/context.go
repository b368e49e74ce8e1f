package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	options "github.com/richinsley/goshaderwave/options"
)

var keyNames = map[string]glfw.Key{
	"tab":      glfw.KeyTab,
	"pageup":   glfw.KeyPageUp,
	"pagedown": glfw.KeyPageDown,
	"up":       glfw.KeyUp,
	"down":     glfw.KeyDown,
	"left":     glfw.KeyLeft,
	"right":    glfw.KeyRight,
}

// Context wraps a GLFW window and its OpenGL context.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
	onResize     func(width, height int)
}

// New creates and initializes a new GLFW window and returns a Context object.
func New(opts *options.StageOptions, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, *opts.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetSizeCallback(c.glfwSizeCallback)

	if *opts.VSync {
		win.MakeContextCurrent()
		glfw.SwapInterval(1)
	}

	return c, nil
}

// RegisterKey allows the main application to register a function to be
// called when the named key is pressed or repeated.
func (c *Context) RegisterKey(name string, f func()) {
	key, ok := keyNames[name]
	if !ok {
		log.Printf("glfwcontext: unknown key %q", name)
		return
	}
	c.keyCallbacks[key] = f
}

func (c *Context) SetResizeCallback(f func(width, height int)) {
	c.onResize = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press || action == glfw.Repeat {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwSizeCallback(w *glfw.Window, width, height int) {
	// minimized windows report 0x0
	if width <= 0 || height <= 0 {
		return
	}
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

func (c *Context) IsGLES() bool {
	// GLFW does not provide a direct way to check if the context is GLES.
	return false
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
}

func (c *Context) PollEvents() {
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) GetSize() (int, int) {
	return c.window.GetSize()
}

// PixelRatio reports framebuffer pixels per screen coordinate, the equivalent of a
// browser's devicePixelRatio.
func (c *Context) PixelRatio() float64 {
	fbWidth, _ := c.window.GetFramebufferSize()
	winWidth, _ := c.window.GetSize()
	if fbWidth <= 0 || winWidth <= 0 {
		return 1
	}
	return float64(fbWidth) / float64(winWidth)
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

// CursorPos returns the cursor position in screen coordinates relative to the
// top-left corner of the window.
func (c *Context) CursorPos() (float64, float64) {
	return c.window.GetCursorPos()
}

func (c *Context) MouseButton(button int) bool {
	return c.window.GetMouseButton(glfw.MouseButton1+glfw.MouseButton(button)) == glfw.Press
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
