package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/pierrec/lz4/v4"
)

type texMip struct {
	w, h       uint32
	compressed bool
	rawSize    uint32
	data       []byte
}

func buildTex(format uint32, imgW, imgH uint32, mip texMip) []byte {
	var buf bytes.Buffer
	tag := func(s string) {
		buf.WriteString(s)
		buf.WriteByte(0)
	}
	u32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }

	tag("TEXV0005")
	tag("TEXI0001")
	u32(format)
	u32(0)
	u32(mip.w)
	u32(mip.h)
	u32(imgW)
	u32(imgH)
	u32(0)
	tag("TEXB0003")
	u32(1)
	u32(0)
	u32(1)
	u32(mip.w)
	u32(mip.h)
	if mip.compressed {
		u32(1)
	} else {
		u32(0)
	}
	u32(mip.rawSize)
	u32(uint32(len(mip.data)))
	buf.Write(mip.data)
	return buf.Bytes()
}

func TestDecodeTexLZ4R8(t *testing.T) {
	const w, h = 16, 16
	raw := make([]byte, w*h)
	for i := range raw {
		raw[i] = uint8((i / w) * 16)
	}
	compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, compressed, nil)
	if err != nil || n == 0 {
		t.Fatalf("compress: n=%d err=%v", n, err)
	}
	data := buildTex(texFormatR8, 12, 10, texMip{w: w, h: h, compressed: true, rawSize: uint32(len(raw)), data: compressed[:n]})

	m, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.W != 12 || m.H != 10 {
		t.Fatalf("cropped size %dx%d, want 12x10", m.W, m.H)
	}
	for y := 0; y < m.H; y++ {
		if want := float64(y*16) / 255; math.Abs(m.At(3, y)-want) > 1e-6 {
			t.Fatalf("row %d = %v, want %v", y, m.At(3, y), want)
		}
	}
}

func TestDecodeTexDXT1(t *testing.T) {
	// One 4x4 block: color0 white, color1 black, every index 0.
	block := []byte{0xff, 0xff, 0x00, 0x00, 0, 0, 0, 0}
	data := buildTex(texFormatDXT1, 4, 4, texMip{w: 4, h: 4, data: block})

	m, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, v := range m.Pix {
		if v < 0.99 {
			t.Fatalf("texel %d = %v, want white", i, v)
		}
	}
}

func TestDecodeTexRejectsBadMagic(t *testing.T) {
	data := buildTex(texFormatR8, 1, 1, texMip{w: 1, h: 1, data: []byte{0}})
	copy(data, "TEXV9999")
	if _, err := DecodeTex(bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := DecodeTex(bytes.NewReader(data[:5])); err == nil {
		t.Fatal("truncated header must fail")
	}
}

func TestDecodeTexRejectsOversizedMip(t *testing.T) {
	mip := texMip{w: 4, h: 4, data: make([]byte, 64)}
	tail := len(mip.data)

	data := buildTex(texFormatR8, 4, 4, mip)
	binary.LittleEndian.PutUint32(data[len(data)-tail-4:], math.MaxUint32)
	if _, err := DecodeTex(bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("stored size: err = %v, want ErrUnsupportedFormat", err)
	}

	data = buildTex(texFormatR8, 4, 4, mip)
	binary.LittleEndian.PutUint32(data[len(data)-tail-8:], 1<<30)
	if _, err := DecodeTex(bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("unpacked size: err = %v, want ErrUnsupportedFormat", err)
	}

	data = buildTex(texFormatR8, 4, 4, texMip{w: 1 << 20, h: 1 << 20, data: mip.data})
	if _, err := DecodeTex(bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("mip dimensions: err = %v, want ErrUnsupportedFormat", err)
	}
}
