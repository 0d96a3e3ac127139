// Package bake renders cloud cookies offline: a fixed-step frame runner and an
// LZ4 compressed flipbook container for the resulting shadow masks.
package bake

import (
	"errors"
	"fmt"

	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/logging"
)

// ErrInert is returned when the effect refuses to enable.
var ErrInert = errors.New("bake: effect could not be enabled")

// AlphaReader is implemented by targets whose shadow mask can be read back.
type AlphaReader interface {
	AlphaBytes(dst []byte) []byte
}

// FrameFunc receives each finished cookie. The target is only valid for the
// duration of the call.
type FrameFunc func(frame int, cookie clouds.Target) error

// Run enables e if needed and advances it frames times by dt, handing every
// cookie to fn. It stops at the first error fn returns.
func Run(e *clouds.Effect, frames int, dt float64, fn FrameFunc) error {
	if !e.Enabled() && !e.Enable() {
		return ErrInert
	}
	logging.Info("bake: %d frames of %s at dt=%g", frames, e.Name(), dt)
	for i := 0; i < frames; i++ {
		e.Update(dt)
		if fn == nil {
			continue
		}
		if err := fn(i, e.Cookie()); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

// Alpha copies the shadow mask of t into dst.
func Alpha(t clouds.Target, dst []byte) ([]byte, error) {
	r, ok := t.(AlphaReader)
	if !ok {
		return nil, fmt.Errorf("bake: target %T cannot be read back", t)
	}
	return r.AlphaBytes(dst), nil
}
