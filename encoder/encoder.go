package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Options describes the raw RGBA stream handed to FFmpeg and where it goes.
type Options struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFMPEGPath string
	// Codec is "h264" or "hevc".
	Codec string
}

// FrameSize is the byte length of one RGBA frame.
func (o Options) FrameSize() int {
	return o.Width * o.Height * 4
}

var ErrClosed = errors.New("encoder closed")

// Encoder streams raw frames into an FFmpeg process. Frames are queued on a
// channel and written to the process from a single consumer goroutine.
type Encoder struct {
	opts   Options
	frames chan []byte
	done   chan error
	failed chan struct{}
	closed bool
}

// InputArgs describes the rawvideo stream on FFmpeg's stdin.
func InputArgs(opts Options) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}
}

// OutputArgs picks an encoder for the platform. Frames arrive bottom-up, so the
// output is flipped vertically.
func OutputArgs(opts Options) ffmpeg.KwArgs {
	outputArgs := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}

	hevc := opts.Codec == "hevc"
	switch runtime.GOOS {
	case "darwin":
		if hevc {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if hevc {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}

	if hevc && strings.HasSuffix(opts.OutputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return outputArgs
}

// New starts FFmpeg and returns an encoder ready for frames.
func New(opts Options) (*Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid encoder geometry %dx%d@%d", opts.Width, opts.Height, opts.FPS)
	}
	return start(opts, func(r io.Reader) error {
		cmd := ffmpeg.Input("pipe:", InputArgs(opts)).
			Output(opts.OutputFile, OutputArgs(opts)).
			OverWriteOutput().WithInput(r).ErrorToStdOut()
		if opts.FFMPEGPath != "" {
			cmd = cmd.SetFfmpegPath(opts.FFMPEGPath)
		}
		return cmd.Run()
	}), nil
}

// start wires the frame channel to run, which consumes the raw stream.
func start(opts Options, run func(r io.Reader) error) *Encoder {
	e := &Encoder{
		opts:   opts,
		frames: make(chan []byte, 3),
		done:   make(chan error, 1),
		failed: make(chan struct{}),
	}

	pipeReader, pipeWriter := io.Pipe()
	runErr := make(chan error, 1)
	go func() {
		err := run(pipeReader)
		// unblock the writer if the consumer went away early
		pipeReader.CloseWithError(ErrClosed)
		runErr <- err
	}()

	go e.consume(pipeWriter, runErr)
	return e
}

func (e *Encoder) consume(w *io.PipeWriter, runErr <-chan error) {
	var writeErr error
	written := 0
	for frame := range e.frames {
		if writeErr != nil {
			continue
		}
		if _, err := w.Write(frame); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", written, err)
			close(e.failed)
			continue
		}
		written++
	}
	w.Close()

	err := <-runErr
	if err != nil {
		err = fmt.Errorf("ffmpeg failed: %w", err)
	} else {
		err = writeErr
	}
	log.Printf("Encoder wrote %d frames to %s", written, e.opts.OutputFile)
	e.done <- err
}

// WriteFrame queues one RGBA frame. It fails once the encoder has stopped
// accepting data.
func (e *Encoder) WriteFrame(pixels []byte) error {
	if e.closed {
		return ErrClosed
	}
	if len(pixels) != e.opts.FrameSize() {
		return fmt.Errorf("frame is %d bytes, want %d", len(pixels), e.opts.FrameSize())
	}
	select {
	case <-e.failed:
		return ErrClosed
	case e.frames <- pixels:
		return nil
	}
}

// Close flushes queued frames and waits for FFmpeg to exit.
func (e *Encoder) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	close(e.frames)
	return <-e.done
}
