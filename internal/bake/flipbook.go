package bake

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pierrec/lz4/v4"
)

// ErrBadFlipbook reports a malformed flipbook stream.
var ErrBadFlipbook = errors.New("bake: bad flipbook")

const (
	flipbookMagic   = "CSFB"
	flipbookVersion = 1
)

// Flipbook is an animated cookie: Frames holds one res*res alpha mask per
// step, rows top to bottom, Delta seconds apart.
type Flipbook struct {
	Resolution int
	Delta      float64
	Frames     [][]byte
}

type flipbookHeader struct {
	Magic      [4]byte
	Version    uint32
	Resolution uint32
	Frames     uint32
	Delta      uint64
}

// FlipbookWriter streams frames into a flipbook. The frame count is fixed up
// front so readers can size their buffers.
type FlipbookWriter struct {
	zw      *lz4.Writer
	res     int
	want    int
	written int
}

// NewFlipbookWriter writes the header to w and returns a writer expecting
// exactly frames masks of res*res bytes.
func NewFlipbookWriter(w io.Writer, res, frames int, delta float64) (*FlipbookWriter, error) {
	if res < 1 || frames < 0 {
		return nil, fmt.Errorf("%w: resolution %d frames %d", ErrBadFlipbook, res, frames)
	}
	hdr := flipbookHeader{
		Version:    flipbookVersion,
		Resolution: uint32(res),
		Frames:     uint32(frames),
		Delta:      math.Float64bits(delta),
	}
	copy(hdr.Magic[:], flipbookMagic)
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return nil, fmt.Errorf("write flipbook header: %w", err)
	}
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
		return nil, fmt.Errorf("configure lz4: %w", err)
	}
	return &FlipbookWriter{zw: zw, res: res, want: frames}, nil
}

// WriteFrame appends one alpha mask.
func (f *FlipbookWriter) WriteFrame(alpha []byte) error {
	if len(alpha) != f.res*f.res {
		return fmt.Errorf("%w: frame has %d bytes, want %d", ErrBadFlipbook, len(alpha), f.res*f.res)
	}
	if f.written >= f.want {
		return fmt.Errorf("%w: more than %d frames", ErrBadFlipbook, f.want)
	}
	if _, err := f.zw.Write(alpha); err != nil {
		return fmt.Errorf("write frame %d: %w", f.written, err)
	}
	f.written++
	return nil
}

// Close flushes the compressed stream. It fails if fewer frames were written
// than announced.
func (f *FlipbookWriter) Close() error {
	if err := f.zw.Close(); err != nil {
		return fmt.Errorf("close flipbook: %w", err)
	}
	if f.written != f.want {
		return fmt.Errorf("%w: wrote %d of %d frames", ErrBadFlipbook, f.written, f.want)
	}
	return nil
}

// WriteFlipbook encodes fb to w.
func WriteFlipbook(w io.Writer, fb *Flipbook) error {
	fw, err := NewFlipbookWriter(w, fb.Resolution, len(fb.Frames), fb.Delta)
	if err != nil {
		return err
	}
	for _, frame := range fb.Frames {
		if err := fw.WriteFrame(frame); err != nil {
			return err
		}
	}
	return fw.Close()
}

// ReadFlipbook decodes a flipbook written by WriteFlipbook or FlipbookWriter.
func ReadFlipbook(r io.Reader) (*Flipbook, error) {
	br := bufio.NewReader(r)
	var hdr flipbookHeader
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadFlipbook, err)
	}
	if string(hdr.Magic[:]) != flipbookMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadFlipbook, hdr.Magic[:])
	}
	if hdr.Version != flipbookVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadFlipbook, hdr.Version)
	}
	if hdr.Resolution == 0 || hdr.Resolution > 1<<13 {
		return nil, fmt.Errorf("%w: resolution %d", ErrBadFlipbook, hdr.Resolution)
	}
	fb := &Flipbook{
		Resolution: int(hdr.Resolution),
		Delta:      math.Float64frombits(hdr.Delta),
		Frames:     make([][]byte, 0, min(hdr.Frames, 1024)),
	}
	zr := lz4.NewReader(br)
	size := fb.Resolution * fb.Resolution
	for i := uint32(0); i < hdr.Frames; i++ {
		frame := make([]byte, size)
		if _, err := io.ReadFull(zr, frame); err != nil {
			return nil, fmt.Errorf("%w: frame %d: %v", ErrBadFlipbook, i, err)
		}
		fb.Frames = append(fb.Frames, frame)
	}
	return fb, nil
}
