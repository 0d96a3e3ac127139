package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"runtime"
	"time"

	"cloud-shadows/internal/app"
	"cloud-shadows/internal/bake"
	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/logging"
	"cloud-shadows/internal/render"
)

type options struct {
	frames   int
	fps      float64
	outDir   string
	size     int
	flipbook string
	workers  int
	lit      string
	shadow   string
	steps    int
}

func main() {
	cfg := app.NewConfig()
	cfg.BindScene(flag.CommandLine)
	var opts options
	flag.IntVar(&opts.frames, "frames", 120, "number of cookie frames to bake")
	flag.Float64Var(&opts.fps, "fps", 30, "frames per simulated second")
	flag.StringVar(&opts.outDir, "out", "bake", "directory for the PNG frames (empty skips PNG output)")
	flag.IntVar(&opts.size, "size", 0, "PNG side length in pixels (0 keeps the cookie resolution)")
	flag.StringVar(&opts.flipbook, "flipbook", "", "optional path of an LZ4 flipbook holding every frame")
	flag.IntVar(&opts.workers, "workers", runtime.NumCPU(), "number of PNG encoder goroutines")
	flag.StringVar(&opts.lit, "lit", "", "tint lit texels with this #rrggbb color (grayscale when both tints are empty)")
	flag.StringVar(&opts.shadow, "shadow", "", "tint shadowed texels with this #rrggbb color")
	flag.IntVar(&opts.steps, "steps", 256, "number of colors in the tint ramp")
	flag.Parse()

	if err := run(cfg, opts); err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}

// tintRamp returns nil when no tint was requested. A missing end falls back
// to the viewer's default color.
func (o options) tintRamp() ([]color.RGBA, error) {
	if o.lit == "" && o.shadow == "" {
		return nil, nil
	}
	lit, shadow := render.DefaultLit, render.DefaultShadow
	var err error
	if o.lit != "" {
		if lit, err = render.ParseHex(o.lit); err != nil {
			return nil, fmt.Errorf("-lit: %w", err)
		}
	}
	if o.shadow != "" {
		if shadow, err = render.ParseHex(o.shadow); err != nil {
			return nil, fmt.Errorf("-shadow: %w", err)
		}
	}
	logging.Debug("tint ramp %s -> %s in %d steps", render.Hex(shadow), render.Hex(lit), o.steps)
	return render.ShadeRamp(lit, shadow, o.steps), nil
}

func run(cfg *app.Config, opts options) error {
	if opts.frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", opts.frames)
	}
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %v", opts.fps)
	}
	ramp, err := opts.tintRamp()
	if err != nil {
		return err
	}
	dt := 1 / opts.fps

	effect, _, err := cfg.BuildEffect(&clouds.CPUBlitter{})
	if err != nil {
		return err
	}
	defer effect.Disable()
	res := effect.Global().Resolution()

	var fb *bake.FlipbookWriter
	var fbFile *os.File
	if opts.flipbook != "" {
		fbFile, err = os.Create(opts.flipbook)
		if err != nil {
			return fmt.Errorf("create flipbook: %w", err)
		}
		defer func() {
			// Only reached on early returns; finishFlipbook clears fbFile.
			if fbFile != nil {
				fbFile.Close()
			}
		}()
		fb, err = bake.NewFlipbookWriter(fbFile, res, opts.frames, dt)
		if err != nil {
			return err
		}
	}

	var pool *encoderPool
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		pool = startEncoders(opts.workers, pngEncoder(opts.outDir, opts.size, ramp))
	}

	start := time.Now()
	bakeErr := bake.Run(effect, opts.frames, dt, func(i int, cookie clouds.Target) error {
		alpha, err := bake.Alpha(cookie, nil)
		if err != nil {
			return err
		}
		if fb != nil {
			if err := fb.WriteFrame(alpha); err != nil {
				return err
			}
		}
		if pool != nil {
			pool.submit(frame{index: i, res: res, alpha: alpha})
		}
		return nil
	})
	if pool != nil {
		if err := pool.wait(); err != nil && bakeErr == nil {
			bakeErr = err
		}
	}
	if bakeErr != nil {
		return bakeErr
	}
	if fb != nil {
		f := fbFile
		fbFile = nil
		if err := finishFlipbook(fb, f); err != nil {
			return err
		}
	}
	logging.Info("baked %d frames of %s at %dpx in %v", opts.frames, effect.Name(), res, time.Since(start).Round(time.Millisecond))
	return nil
}

// finishFlipbook flushes fb and then closes the file under it. Both run; the
// first error wins.
func finishFlipbook(fb io.Closer, f io.Closer) error {
	err := fb.Close()
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close flipbook file: %w", cerr)
	}
	return err
}
