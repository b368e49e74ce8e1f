package app

import (
	"errors"
	"fmt"

	"github.com/richinsley/goshaderwave/panel"
	"github.com/richinsley/goshaderwave/scene"
)

var (
	ErrAlreadyInitialized  = errors.New("already initialized")
	ErrStageNotInitialized = errors.New("stage not initialized")
)

// Window is the host the stage sizes itself against.
type Window interface {
	// GetSize returns the window size in screen coordinates.
	GetSize() (int, int)
	PixelRatio() float64
}

// Surface is the drawable the stage presents to.
type Surface interface {
	SetPixelRatio(ratio float64)
	SetClearColor(c scene.Color)
	// SetSize sets the logical size; the drawing buffer is size times pixel ratio.
	SetSize(width, height int)
	Size() (int, int)
	DrawingBufferSize() (int, int)
	Render(s *scene.Scene, camera *scene.OrthographicCamera) error
}

// Overlay is drawn on top of the scene once per frame.
type Overlay interface {
	Draw() error
}

// OverlayFactory builds the on-screen view of a control panel.
type OverlayFactory func(p *panel.Panel) (Overlay, error)

type RenderParams struct {
	ClearColor uint32
	Width      int
	Height     int
}

type CameraParams struct {
	Left, Right, Top, Bottom, Near, Far float32
}

// DefaultCameraParams bound the unit clip volume.
var DefaultCameraParams = CameraParams{
	Left:   -1,
	Right:  1,
	Top:    1,
	Bottom: -1,
	Near:   0,
	Far:    -1,
}

// Stage owns the scene root, the camera and the surface they are presented on.
type Stage struct {
	RenderParams RenderParams
	CameraParams CameraParams

	window     Window
	newSurface func() (Surface, error)

	scene   *scene.Scene
	camera  *scene.OrthographicCamera
	surface Surface
	overlay Overlay

	initialized bool
}

func NewStage(window Window, newSurface func() (Surface, error), clearColor uint32) *Stage {
	width, height := window.GetSize()
	return &Stage{
		RenderParams: RenderParams{
			ClearColor: clearColor,
			Width:      width,
			Height:     height,
		},
		CameraParams: DefaultCameraParams,
		window:       window,
		newSurface:   newSurface,
	}
}

func (s *Stage) Init() error {
	if s.initialized {
		return ErrAlreadyInitialized
	}
	s.setScene()
	if err := s.setRender(); err != nil {
		return err
	}
	s.setCamera()

	s.initialized = true
	return nil
}

func (s *Stage) setScene() {
	s.scene = scene.New()
}

func (s *Stage) setRender() error {
	surface, err := s.newSurface()
	if err != nil {
		return fmt.Errorf("failed to create render surface: %w", err)
	}
	surface.SetPixelRatio(s.window.PixelRatio())
	surface.SetClearColor(scene.NewColorHex(s.RenderParams.ClearColor))
	surface.SetSize(s.RenderParams.Width, s.RenderParams.Height)
	s.surface = surface
	return nil
}

func (s *Stage) setCamera() {
	if s.camera == nil {
		p := s.CameraParams
		s.camera = scene.NewOrthographicCamera(p.Left, p.Right, p.Top, p.Bottom, p.Near, p.Far)
	}

	width, height := s.window.GetSize()
	if width <= 0 || height <= 0 {
		return
	}
	s.RenderParams.Width, s.RenderParams.Height = width, height

	s.camera.Aspect = float32(width) / float32(height)
	s.camera.UpdateProjectionMatrix()
	s.surface.SetPixelRatio(s.window.PixelRatio())
	s.surface.SetSize(width, height)
}

// OnResize brings the camera and the surface in line with the window size.
func (s *Stage) OnResize() {
	if !s.initialized {
		return
	}
	s.setCamera()
}

// OnRaf presents the scene, then the overlay. It must be the last step of a tick.
func (s *Stage) OnRaf() error {
	if !s.initialized {
		return ErrStageNotInitialized
	}
	if err := s.surface.Render(s.scene, s.camera); err != nil {
		return err
	}
	if s.overlay != nil {
		if err := s.overlay.Draw(); err != nil {
			return fmt.Errorf("failed to draw overlay: %w", err)
		}
	}
	return nil
}

// SetOverlay installs o to be drawn after the scene. A nil overlay removes it.
func (s *Stage) SetOverlay(o Overlay) {
	s.overlay = o
}

func (s *Stage) Scene() *scene.Scene {
	return s.scene
}

func (s *Stage) Camera() *scene.OrthographicCamera {
	return s.camera
}

func (s *Stage) Surface() Surface {
	return s.surface
}

func (s *Stage) Initialized() bool {
	return s.initialized
}
