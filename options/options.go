package options

type StageOptions struct {
	Help       *bool
	Title      *string
	Width      *int
	Height     *int
	VSync      *bool
	ClearColor *uint
	// DiffuseDelay is the delay in milliseconds between load and the post-load hook.
	DiffuseDelay *int
	// Record renders a fixed number of frames offscreen and encodes them with FFmpeg.
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
	Headless   *bool
}

// Defaults returns a fully populated option set, as produced by parsing an empty
// command line.
func Defaults() *StageOptions {
	help := false
	title := "goshaderwave"
	width, height := 1280, 720
	vsync := true
	clearColor := uint(0x666666)
	diffuseDelay := 1000
	record := false
	duration := 10.0
	fps := 60
	output := "output.mp4"
	ffmpegPath := ""
	codec := "h264"
	headless := false
	return &StageOptions{
		Help:         &help,
		Title:        &title,
		Width:        &width,
		Height:       &height,
		VSync:        &vsync,
		ClearColor:   &clearColor,
		DiffuseDelay: &diffuseDelay,
		Record:       &record,
		Duration:     &duration,
		FPS:          &fps,
		OutputFile:   &output,
		FFMPEGPath:   &ffmpegPath,
		Codec:        &codec,
		Headless:     &headless,
	}
}
