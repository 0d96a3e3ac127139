package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"cloud-shadows/internal/logging"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

// Pixel formats stored in a .tex header. Formats 4 and 7 both carry DXT1
// blocks in the files seen in the wild.
const (
	texFormatDXT1a = 4
	texFormatDXT5  = 6
	texFormatDXT1  = 7
	texFormatRG88  = 8
	texFormatR8    = 9
)

const (
	texMagic     = "TEXV0005"
	texInfoMagic = "TEXI0001"
)

// Limits on a mip header. A mip's stored and unpacked sizes may exceed its
// RGBA size only by texMipSlack, which covers block padding on small mips.
const (
	texMaxDim   = 16384
	texMipSlack = 1024
)

type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) u32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// tag reads a NUL-terminated 8 character magic.
func (t *texReader) tag() string {
	var buf [9]byte
	if t.err == nil {
		_, t.err = io.ReadFull(t.r, buf[:])
	}
	return string(bytes.TrimRight(buf[:8], "\x00"))
}

// DecodeTex decodes the first mip of the first image in a Wallpaper Engine
// .tex container. LZ4 compressed mips and DXT1/DXT5, RGBA8888, RG88 and R8
// payloads are supported.
func DecodeTex(r io.Reader) (*Mask, error) {
	t := &texReader{r: r}
	if magic := t.tag(); t.err == nil && magic != texMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrUnsupportedFormat, magic)
	}
	if info := t.tag(); t.err == nil && info != texInfoMagic {
		return nil, fmt.Errorf("%w: bad info block %q", ErrUnsupportedFormat, info)
	}
	format := t.u32()
	t.u32() // flags
	t.u32() // texture width
	t.u32() // texture height
	imgW := t.u32()
	imgH := t.u32()
	t.u32()
	container := t.tag()
	imageCount := t.u32()
	if container == "TEXB0003" {
		t.u32() // source image format
	}
	if t.err != nil {
		return nil, fmt.Errorf("read tex header: %w", t.err)
	}
	if imageCount == 0 {
		return nil, fmt.Errorf("%w: no images", ErrUnsupportedFormat)
	}

	mipCount := t.u32()
	if mipCount == 0 && t.err == nil {
		return nil, fmt.Errorf("%w: no mipmaps", ErrUnsupportedFormat)
	}
	mw, mh := t.u32(), t.u32()
	var compressed bool
	var rawSize uint32
	if container != "TEXB0001" {
		compressed = t.u32() == 1
		rawSize = t.u32()
	}
	size := t.u32()
	if t.err != nil {
		return nil, fmt.Errorf("read tex mip header: %w", t.err)
	}
	if mw == 0 || mh == 0 || mw > texMaxDim || mh > texMaxDim {
		return nil, fmt.Errorf("%w: mip size %dx%d", ErrUnsupportedFormat, mw, mh)
	}
	limit := uint64(mw)*uint64(mh)*4 + texMipSlack
	if uint64(size) > limit || uint64(rawSize) > limit {
		return nil, fmt.Errorf("%w: mip of %dx%d claims %d bytes (%d unpacked)", ErrUnsupportedFormat, mw, mh, size, rawSize)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read tex mip: %w", err)
	}
	if compressed {
		raw := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, raw)
		if err != nil {
			return nil, fmt.Errorf("lz4 mip: %w", err)
		}
		data = raw[:n]
	}
	logging.Debug("texture: tex format %d mip %dx%d (%d bytes)", format, mw, mh, len(data))

	img, err := texImage(format, int(mw), int(mh), data)
	if err != nil {
		return nil, err
	}
	crop := image.Rect(0, 0, int(min(imgW, mw)), int(min(imgH, mh)))
	if crop.Empty() {
		crop = img.Bounds()
	}
	return FromImage(subImage(img, crop)), nil
}

func texImage(format uint32, w, h int, data []byte) (image.Image, error) {
	rgba := w * h * 4
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	switch {
	case format == texFormatR8 && len(data) == w*h:
		return &image.Gray{Pix: data, Stride: w, Rect: image.Rect(0, 0, w, h)}, nil
	case format == texFormatRG88 && len(data) == w*h*2:
		gray := image.NewGray(image.Rect(0, 0, w, h))
		for i := range gray.Pix {
			gray.Pix[i] = data[i*2+1]
		}
		return gray, nil
	case len(data) == rgba:
		return &image.NRGBA{Pix: data, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
	case format == texFormatDXT5 || len(data) == blocks*16:
		pix, err := dxt.DecodeDXT5(data, uint(w), uint(h))
		if err != nil {
			return nil, fmt.Errorf("dxt5: %w", err)
		}
		return &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
	case format == texFormatDXT1 || format == texFormatDXT1a || len(data) == blocks*8:
		pix, err := dxt.DecodeDXT1(data, uint(w), uint(h))
		if err != nil {
			return nil, fmt.Errorf("dxt1: %w", err)
		}
		return &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
	}
	return nil, fmt.Errorf("%w: tex format %d with %d bytes for %dx%d", ErrUnsupportedFormat, format, len(data), w, h)
}

func subImage(img image.Image, r image.Rectangle) image.Image {
	if img.Bounds().Eq(r) {
		return img
	}
	if s, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(r)
	}
	return img
}
