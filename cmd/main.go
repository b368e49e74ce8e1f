package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	app "github.com/richinsley/goshaderwave/app"
	encoder "github.com/richinsley/goshaderwave/encoder"
	glfwcontext "github.com/richinsley/goshaderwave/glfwcontext"
	graphics "github.com/richinsley/goshaderwave/graphics"
	gui "github.com/richinsley/goshaderwave/gui"
	headless "github.com/richinsley/goshaderwave/headless"
	options "github.com/richinsley/goshaderwave/options"
	panel "github.com/richinsley/goshaderwave/panel"
	renderer "github.com/richinsley/goshaderwave/renderer"
)

func init() {
	runtime.LockOSThread()
}

// newHost opens the window, or an EGL pbuffer when recording headless.
func newHost(opts *options.StageOptions) (graphics.Context, error) {
	if *opts.Record && *opts.Headless {
		h, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			return nil, fmt.Errorf("failed to create headless context: %w", err)
		}
		return h, nil
	}

	// If recording, the window will be hidden
	window, err := glfwcontext.New(opts, !*opts.Record)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	return window, nil
}

func runStage(ctx context.Context, opts *options.StageOptions) error {
	if !*opts.Headless {
		if err := glfwcontext.InitGraphics(); err != nil {
			return fmt.Errorf("failed to initialize graphics: %w", err)
		}
		defer glfwcontext.TerminateGraphics()
	}

	host, err := newHost(opts)
	if err != nil {
		return err
	}
	defer host.Shutdown()
	host.MakeCurrent()

	gles := false
	if g, ok := host.(interface{ IsGLES() bool }); ok {
		gles = g.IsGLES()
	}
	r, err := renderer.New(ctx, gles)
	if err != nil {
		return err
	}
	defer r.Dispose()

	var target *renderer.OffscreenTarget
	if *opts.Record {
		target, err = renderer.NewOffscreenTarget(*opts.Width, *opts.Height)
		if err != nil {
			return fmt.Errorf("failed to create offscreen target: %w", err)
		}
		defer target.Destroy()
		r.SetRenderTarget(target)
	}

	cfg := app.Config{
		Host:         host,
		NewSurface:   func() (app.Surface, error) { return r, nil },
		ClearColor:   uint32(*opts.ClearColor),
		DiffuseDelay: time.Duration(*opts.DiffuseDelay) * time.Millisecond,
	}

	// The panel is only drawn on screen; recordings show the scene alone.
	var overlay *gui.Overlay
	if input, ok := host.(gui.Input); ok && !*opts.Record {
		cfg.Overlay = func(p *panel.Panel) (app.Overlay, error) {
			o, err := gui.New(input, p)
			if err != nil {
				return nil, err
			}
			overlay = o
			return o, nil
		}
	}
	defer func() {
		if overlay != nil {
			overlay.Dispose()
		}
	}()

	a, err := app.Start(cfg)
	if err != nil {
		return err
	}

	if !*opts.Record {
		log.Println("Starting interactive render loop...")
		return a.Run(ctx)
	}

	enc, err := encoder.New(encoder.Options{
		Width:      *opts.Width,
		Height:     *opts.Height,
		FPS:        *opts.FPS,
		OutputFile: *opts.OutputFile,
		FFMPEGPath: *opts.FFMPEGPath,
		Codec:      *opts.Codec,
	})
	if err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}

	totalFrames := int(*opts.Duration * float64(*opts.FPS))
	log.Printf("Recording %d frames to %s...", totalFrames, *opts.OutputFile)
	recErr := a.Record(ctx, totalFrames, *opts.FPS, r, enc)
	if err := enc.Close(); err != nil && recErr == nil {
		recErr = err
	}
	if recErr == nil {
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
	}
	return recErr
}

func main() {
	opts := options.Defaults()

	opts.Help = flag.Bool("help", false, "Show help message")
	opts.Title = flag.String("title", *opts.Title, "Initial window title")
	opts.Width = flag.Int("width", *opts.Width, "Width of the window or recording")
	opts.Height = flag.Int("height", *opts.Height, "Height of the window or recording")
	opts.VSync = flag.Bool("vsync", *opts.VSync, "Synchronize frames with the display refresh")
	opts.ClearColor = flag.Uint("clear", *opts.ClearColor, "Clear colour as 0xRRGGBB")
	opts.DiffuseDelay = flag.Int("diffuse-delay", *opts.DiffuseDelay, "Milliseconds between load and the post-load hook")

	// Recording flags
	opts.Record = flag.Bool("record", *opts.Record, "Render offscreen and encode to a file")
	opts.Duration = flag.Float64("duration", *opts.Duration, "Duration to record in seconds")
	opts.FPS = flag.Int("fps", *opts.FPS, "Frames per second for recording")
	opts.OutputFile = flag.String("output", *opts.OutputFile, "Output file name for recording")
	opts.FFMPEGPath = flag.String("ffmpeg", *opts.FFMPEGPath, "Path to ffmpeg executable")
	opts.Codec = flag.String("codec", *opts.Codec, "Video codec for recording (h264 or hevc)")
	opts.Headless = flag.Bool("headless", *opts.Headless, "Record through an EGL pbuffer instead of a hidden window (Linux)")

	flag.Parse()

	if *opts.Help {
		fmt.Println("Shader Wave Demo")
		fmt.Println("Drag the panel sliders, or Tab/PageDown next slider, PageUp previous, arrows adjust; Esc quits")
		flag.PrintDefaults()
		return
	}

	if *opts.Headless && !*opts.Record {
		log.Fatalf("Error: -headless requires -record")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runStage(ctx, opts); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
