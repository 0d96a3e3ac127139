package main

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"cloud-shadows/internal/render"

	"golang.org/x/image/draw"
)

type frame struct {
	index int
	res   int
	alpha []byte
}

// encoderPool fans frames out to a fixed set of goroutines and keeps the
// first error any of them reports.
type encoderPool struct {
	jobs chan frame
	wg   sync.WaitGroup

	mu  sync.Mutex
	err error
}

func startEncoders(workers int, encode func(frame) error) *encoderPool {
	if workers < 1 {
		workers = 1
	}
	p := &encoderPool{jobs: make(chan frame, workers)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for f := range p.jobs {
				if err := encode(f); err != nil {
					p.mu.Lock()
					if p.err == nil {
						p.err = err
					}
					p.mu.Unlock()
				}
			}
		}()
	}
	return p
}

func (p *encoderPool) submit(f frame) { p.jobs <- f }

func (p *encoderPool) wait() error {
	close(p.jobs)
	p.wg.Wait()
	return p.err
}

// frameGray wraps the mask as a grayscale image, resampled to size when size
// differs from the cookie resolution.
func frameGray(f frame, size int) *image.Gray {
	src := &image.Gray{Pix: f.alpha, Stride: f.res, Rect: image.Rect(0, 0, f.res, f.res)}
	if size <= 0 || size == f.res {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// frameImage is frameGray mapped through ramp, or the grayscale image itself
// when ramp is empty.
func frameImage(f frame, size int, ramp []color.RGBA) image.Image {
	gray := frameGray(f, size)
	if len(ramp) == 0 {
		return gray
	}
	rgba := image.NewRGBA(gray.Rect)
	render.FillRampRGBA(rgba.Pix, gray.Pix, ramp)
	return rgba
}

func framePath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("cookie_%04d.png", index))
}

func pngEncoder(dir string, size int, ramp []color.RGBA) func(frame) error {
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	return func(f frame) error {
		path := framePath(dir, f.index)
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		w := bufio.NewWriter(out)
		if err := enc.Encode(w, frameImage(f, size, ramp)); err != nil {
			out.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if err := w.Flush(); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		return out.Close()
	}
}
