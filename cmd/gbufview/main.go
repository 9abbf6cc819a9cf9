// Command gbufview inspects the deferred-buffer debug views headless.
//
// It lists the debug modes, prints or validates the baked shader of a mode,
// and runs frames on the noop GPU device, rebuilding the custom shader
// whenever its file changes.
//
//	gbufview -list
//	gbufview -mode depth -print
//	gbufview -mode custom -custom ./view.wgsl -validate
//	gbufview -mode custom -frames 100 -interval 200ms -v
//	gbufview -mode normal -capture normal.png -scale 0.5
//	gbufview -mode depth -capture depth.png -max-size 256
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gbufview"
	"github.com/gogpu/gbufview/internal/gpu"
	"github.com/gogpu/gbufview/recording"
	_ "github.com/gogpu/gbufview/recording/backends/state"
	_ "github.com/gogpu/gbufview/recording/backends/trace"
	"github.com/gogpu/gbufview/render"
)

type options struct {
	list     bool
	mode     string
	print    bool
	custom   string
	validate bool
	frames   int
	interval time.Duration
	backend  string
	width    int
	height   int
	capture  string
	scale    float64
	maxSize  int
	verbose  bool
}

func main() {
	var o options
	flag.BoolVar(&o.list, "list", false, "list debug modes and playback backends")
	flag.StringVar(&o.mode, "mode", "albedo", "debug mode name")
	flag.BoolVar(&o.print, "print", false, "print the baked shader of the mode")
	flag.StringVar(&o.custom, "custom", gbufview.DefaultCustomShaderPath(), "custom shader file for -mode custom")
	flag.BoolVar(&o.validate, "validate", false, "compile the baked shader with naga and exit")
	flag.IntVar(&o.frames, "frames", 1, "number of frames to run")
	flag.DurationVar(&o.interval, "interval", 0, "pause between frames")
	flag.StringVar(&o.backend, "backend", "gpu", "playback backend: gpu or a registered name")
	flag.IntVar(&o.width, "width", 640, "target width")
	flag.IntVar(&o.height, "height", 360, "target height")
	flag.StringVar(&o.capture, "capture", "", "write the last frame to this PNG file (gpu backend)")
	flag.Float64Var(&o.scale, "scale", 1, "scale factor applied to the capture")
	flag.IntVar(&o.maxSize, "max-size", 0, "fit the capture within this many pixels per side (0: no limit)")
	flag.BoolVar(&o.verbose, "v", false, "log at debug level to stderr")
	flag.Parse()

	if o.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
		gbufview.SetLogger(logger)
	}

	if err := run(o); err != nil {
		log.Fatalf("gbufview: %v", err)
	}
}

func run(o options) error {
	if o.list {
		listModes()
		return nil
	}

	mode, err := gbufview.ParseMode(o.mode)
	if err != nil {
		return err
	}

	switch {
	case o.print:
		if mode == gbufview.ModeOff {
			return errors.New("mode Off has no shader")
		}
		fmt.Print(bakedSource(mode, o.custom))
		return nil
	case o.validate:
		return validate(mode, o.custom)
	}
	return runFrames(mode, o)
}

func listModes() {
	for _, m := range gbufview.Modes() {
		fmt.Printf("%2d  %s\n", int(m), m)
	}
	fmt.Println()
	fmt.Println("backends: gpu (headless HAL)")
	for _, name := range recording.Backends() {
		fmt.Printf("  %-8s %s\n", name, recording.Describe(name))
	}
}

func bakedSource(mode gbufview.Mode, customPath string) string {
	body := gbufview.SourceFor(mode)
	if mode == gbufview.ModeCustom {
		body = gbufview.LoadCustomShader(customPath)
	}
	return gbufview.BakeShader(gbufview.Template(), body)
}

func validate(mode gbufview.Mode, customPath string) error {
	if mode == gbufview.ModeOff {
		return errors.New("mode Off has no shader")
	}
	spirv, err := gpu.ValidateWGSL(bakedSource(mode, customPath))
	if err != nil {
		return fmt.Errorf("%v shader: %w", mode, err)
	}
	fmt.Printf("%v: ok (%d SPIR-V words)\n", mode, len(spirv))
	return nil
}

// frameSink is where recorded frames are played back.
type frameSink struct {
	backend recording.Backend
	close   func()
}

func openSink(dev *gbufview.Device, target *gbufview.Target, name string) (*frameSink, error) {
	if name == "gpu" {
		b, err := dev.NewBackend(target, true)
		if err != nil {
			return nil, err
		}
		return &frameSink{backend: b, close: b.Close}, nil
	}
	b, err := recording.NewBackend(name)
	if err != nil {
		return nil, err
	}
	return &frameSink{backend: b, close: func() {}}, nil
}

func runFrames(mode gbufview.Mode, o options) error { //nolint:funlen // setup + frame loop + capture
	if o.frames < 1 {
		return fmt.Errorf("invalid frame count %d", o.frames)
	}
	if o.capture != "" && o.backend != "gpu" {
		return fmt.Errorf("-capture needs the gpu backend, have %q", o.backend)
	}

	dev, err := gbufview.OpenHeadless()
	if err != nil {
		return err
	}
	defer dev.Close()

	target, err := dev.NewTarget(o.width, o.height)
	if err != nil {
		return err
	}
	defer target.Destroy()

	comp, err := dev.NewCompositor(
		gbufview.WithConfig(gbufview.Config{Mode: int(mode), Viewport: render.FullScreen}),
		gbufview.WithCustomShaderPath(o.custom),
	)
	if err != nil {
		return err
	}
	defer comp.Close()

	sink, err := openSink(dev, target, o.backend)
	if err != nil {
		return err
	}
	defer sink.close()

	viewport := target.Viewport()
	frustum := render.NewFrustum()
	frustum.Aspect = viewport.Aspect()

	for frame := 0; frame < o.frames; frame++ {
		if frame > 0 && o.interval > 0 {
			time.Sleep(o.interval)
		}
		rec := recording.NewRecorder(viewport)
		ctx := &gbufview.RenderContext{Batch: rec, Viewport: viewport, Frustum: frustum}
		if err := comp.Run(ctx, gbufview.Inputs{}); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if err := rec.FinishRecording().Playback(sink.backend); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	fmt.Printf("%v: %d frames, %d pipeline builds\n", comp.Mode(), comp.Frames(), comp.Cache().Builds())

	if o.capture == "" {
		return nil
	}
	img, err := target.Snapshot()
	if err != nil {
		return err
	}
	return writePNG(o.capture, fitCapture(img, o.scale, o.maxSize))
}

// fitCapture applies -scale and then shrinks the result to fit -max-size.
func fitCapture(img *image.RGBA, scale float64, maxSize int) *image.RGBA {
	if scale != 1 {
		img = render.Scale(img, scale)
	}
	if maxSize > 0 {
		img = render.Thumbnail(img, maxSize, maxSize)
	}
	return img
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
