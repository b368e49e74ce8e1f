// Package app wires the stage, the wave mesh and the host window into the
// animation loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/richinsley/goshaderwave/graphics"
)

// ErrInterrupted is returned by Record when the loop is stopped before the last frame.
var ErrInterrupted = errors.New("recording interrupted")

type Config struct {
	Host       graphics.Context
	NewSurface func() (Surface, error)
	ClearColor uint32
	// DiffuseDelay separates load from the post-load hook.
	DiffuseDelay time.Duration
	Diffuse      PostLoadHook
	// Overlay draws the control panel over the scene. Optional.
	Overlay OverlayFactory
}

// App is a running demo. Run and Record must be called from the thread that owns
// the GL context; Stop may be called from anywhere.
type App struct {
	host  graphics.Context
	stage *Stage
	mesh  *Mesh

	loadedAt     float64
	diffuseDelay time.Duration
	diffused     bool
	// elapsed reports seconds since load. Record swaps the host clock for the
	// frame count so the hook lands on the same frame on any machine.
	elapsed func() float64

	ticks   uint64
	stopped atomic.Bool
}

// Start builds and initializes the stage and the mesh, then hooks them to the
// host's resize and key events.
func Start(cfg Config) (*App, error) {
	stage := NewStage(cfg.Host, cfg.NewSurface, cfg.ClearColor)
	if err := stage.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize stage: %w", err)
	}

	mesh := NewMesh(stage)
	mesh.SetDiffuseHook(cfg.Diffuse)
	mesh.NewOverlay = cfg.Overlay
	if err := mesh.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize mesh: %w", err)
	}

	a := &App{
		host:         cfg.Host,
		stage:        stage,
		mesh:         mesh,
		diffuseDelay: cfg.DiffuseDelay,
	}

	cfg.Host.SetResizeCallback(func(width, height int) {
		stage.OnResize()
	})
	mesh.Panel().Bind(cfg.Host, cfg.Host)

	a.loadedAt = cfg.Host.Time()
	a.elapsed = a.hostElapsed
	log.Printf("Stage ready: %dx%d (pixel ratio %.2f)", stage.RenderParams.Width, stage.RenderParams.Height, cfg.Host.PixelRatio())
	return a, nil
}

// Tick advances the mesh and presents one frame.
func (a *App) Tick() error {
	a.maybeDiffuse()
	a.mesh.OnRaf()
	if err := a.stage.OnRaf(); err != nil {
		return fmt.Errorf("render failed on tick %d: %w", a.ticks, err)
	}
	a.ticks++
	return nil
}

func (a *App) maybeDiffuse() {
	if a.diffused {
		return
	}
	if time.Duration(a.elapsed()*float64(time.Second)) < a.diffuseDelay {
		return
	}
	a.diffused = true
	a.mesh.Diffuse()
}

func (a *App) hostElapsed() float64 {
	return a.host.Time() - a.loadedAt
}

// Run drives the animation loop until the window closes, ctx is cancelled or Stop
// is called.
func (a *App) Run(ctx context.Context) error {
	for !a.done(ctx) {
		a.host.PollEvents()
		if a.done(ctx) {
			break
		}
		if err := a.Tick(); err != nil {
			return err
		}
		a.host.EndFrame()
	}
	log.Printf("Animation loop stopped after %d ticks", a.ticks)
	return nil
}

// PixelSource reads back the last presented frame.
type PixelSource interface {
	ReadPixels() ([]byte, error)
}

// FrameSink consumes recorded frames.
type FrameSink interface {
	WriteFrame(pixels []byte) error
}

// Record runs exactly frames ticks at fps, handing each presented frame to sink.
// While recording, time since load is the tick count over fps rather than the
// host clock.
func (a *App) Record(ctx context.Context, frames, fps int, src PixelSource, sink FrameSink) error {
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate %d", fps)
	}
	a.elapsed = func() float64 {
		return float64(a.ticks) / float64(fps)
	}
	defer func() { a.elapsed = a.hostElapsed }()

	for i := 0; i < frames; i++ {
		if a.done(ctx) {
			log.Printf("Recording interrupted after %d of %d frames", i, frames)
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrInterrupted, err)
			}
			return ErrInterrupted
		}
		if err := a.Tick(); err != nil {
			return err
		}
		pixels, err := src.ReadPixels()
		if err != nil {
			return fmt.Errorf("failed to read frame %d: %w", i, err)
		}
		if err := sink.WriteFrame(pixels); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", i, err)
		}
	}
	return nil
}

func (a *App) done(ctx context.Context) bool {
	if a.stopped.Load() || a.host.ShouldClose() {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Stop ends Run after the current tick.
func (a *App) Stop() {
	a.stopped.Store(true)
}

func (a *App) Ticks() uint64 {
	return a.ticks
}

func (a *App) Stage() *Stage {
	return a.stage
}

func (a *App) Mesh() *Mesh {
	return a.mesh
}
