package main

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cloud-shadows/internal/app"
	"cloud-shadows/internal/bake"
)

func TestRunWritesFramesAndFlipbook(t *testing.T) {
	dir := t.TempDir()
	cfg := app.NewConfig()
	cfg.Preset = "storm"
	cfg.Overrides = app.KVList{"resolution=16"}
	fbPath := filepath.Join(dir, "storm.csfb")

	opts := options{frames: 3, fps: 10, outDir: dir, size: 8, flipbook: fbPath, workers: 2}
	if err := run(cfg, opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	for i := 0; i < 3; i++ {
		f, err := os.Open(framePath(dir, i))
		if err != nil {
			t.Fatalf("frame %d missing: %v", i, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode frame %d: %v", i, err)
		}
		if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
			t.Fatalf("frame %d is %v, want 8x8", i, b)
		}
	}

	f, err := os.Open(fbPath)
	if err != nil {
		t.Fatalf("open flipbook: %v", err)
	}
	defer f.Close()
	fb, err := bake.ReadFlipbook(f)
	if err != nil {
		t.Fatalf("ReadFlipbook: %v", err)
	}
	if fb.Resolution != 16 || len(fb.Frames) != 3 || fb.Delta != 0.1 {
		t.Fatalf("unexpected flipbook res=%d frames=%d delta=%v", fb.Resolution, len(fb.Frames), fb.Delta)
	}
}

func TestRunRejectsBadArguments(t *testing.T) {
	cfg := app.NewConfig()
	if err := run(cfg, options{frames: 0, fps: 30}); err == nil {
		t.Fatal("expected an error for zero frames")
	}
	if err := run(cfg, options{frames: 1, fps: 0}); err == nil {
		t.Fatal("expected an error for zero fps")
	}
	if err := run(cfg, options{frames: 1, fps: 30, lit: "not-a-color"}); err == nil {
		t.Fatal("expected an error for a malformed tint")
	}
}

func TestEncoderPoolKeepsFirstError(t *testing.T) {
	boom := errors.New("boom")
	p := startEncoders(3, func(f frame) error {
		if f.index == 2 {
			return boom
		}
		return nil
	})
	for i := 0; i < 6; i++ {
		p.submit(frame{index: i})
	}
	if err := p.wait(); !errors.Is(err, boom) {
		t.Fatalf("wait() = %v, want boom", err)
	}
}

func TestFrameImageScales(t *testing.T) {
	alpha := make([]byte, 4*4)
	for i := range alpha {
		alpha[i] = 200
	}
	img := frameGray(frame{res: 4, alpha: alpha}, 12)
	if b := img.Bounds(); b.Dx() != 12 {
		t.Fatalf("scaled image is %v", b)
	}
	if got := img.GrayAt(6, 6).Y; got < 195 || got > 205 {
		t.Fatalf("uniform mask changed value: %d", got)
	}
	if same := frameGray(frame{res: 4, alpha: alpha}, 0); &same.Pix[0] != &alpha[0] {
		t.Fatal("unscaled frame should wrap the mask without copying")
	}
}

func TestFrameImageTints(t *testing.T) {
	opts := options{lit: "#ffffff", shadow: "#000000", steps: 2}
	ramp, err := opts.tintRamp()
	if err != nil {
		t.Fatalf("tintRamp: %v", err)
	}
	img := frameImage(frame{res: 2, alpha: []byte{0, 255, 255, 0}}, 0, ramp)
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("tinted frame is %T, want *image.RGBA", img)
	}
	if got := rgba.RGBAAt(0, 0); got.R != 0 || got.A != 255 {
		t.Fatalf("shadowed texel = %v", got)
	}
	if got := rgba.RGBAAt(1, 0); got.R != 255 {
		t.Fatalf("lit texel = %v", got)
	}
	if plain, _ := (options{}).tintRamp(); plain != nil {
		t.Fatal("no tint flags must keep grayscale output")
	}
}

type closeFunc func() error

func (c closeFunc) Close() error { return c() }

func TestFinishFlipbookClosesFileAndReportsErrors(t *testing.T) {
	var order []string
	closer := func(name string, err error) closeFunc {
		return func() error {
			order = append(order, name)
			return err
		}
	}
	diskFull := errors.New("disk full")

	if err := finishFlipbook(closer("flipbook", nil), closer("file", diskFull)); !errors.Is(err, diskFull) {
		t.Fatalf("err = %v, want the file close error", err)
	}
	if len(order) != 2 || order[0] != "flipbook" || order[1] != "file" {
		t.Fatalf("close order = %v, want flipbook then file", order)
	}

	order = nil
	flushErr := errors.New("short flipbook")
	if err := finishFlipbook(closer("flipbook", flushErr), closer("file", diskFull)); !errors.Is(err, flushErr) {
		t.Fatalf("err = %v, want the flipbook error first", err)
	}
	if len(order) != 2 {
		t.Fatalf("file must still be closed, got %v", order)
	}

	if err := finishFlipbook(closer("flipbook", nil), closer("file", nil)); err != nil {
		t.Fatalf("clean close: %v", err)
	}
}
