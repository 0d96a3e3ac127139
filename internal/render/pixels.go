// Package render turns cookie shadow masks into displayable pixels.
package render

import "image/color"

// FillCookieRGBA converts an alpha mask (255 = fully lit) into RGBA pixels in
// buf, blending linearly from shadow to lit.
func FillCookieRGBA(buf []byte, alpha []byte, lit, shadow color.Color) {
	rl, gl, bl, al := lit.RGBA()
	rs, gs, bs, as := shadow.RGBA()
	for i, a := range alpha {
		base := i * 4
		t := uint32(a)
		buf[base+0] = mix16(rs, rl, t)
		buf[base+1] = mix16(gs, gl, t)
		buf[base+2] = mix16(bs, bl, t)
		buf[base+3] = mix16(as, al, t)
	}
}

// mix16 interpolates two 16-bit channels by t/255 and returns the high byte.
func mix16(from, to, t uint32) uint8 {
	v := (from*(255-t) + to*t) / 255
	return uint8(v >> 8)
}

// FillRampRGBA converts an alpha mask into RGBA pixels using a palette indexed
// from darkest (0) to brightest (last). An empty palette clears the buffer to
// transparent black.
func FillRampRGBA(buf []byte, alpha []byte, ramp []color.RGBA) {
	if len(ramp) == 0 {
		for i := range alpha {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	for i, a := range alpha {
		col := ramp[RampIndex(a, len(ramp))]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// RampIndex maps an alpha byte onto a ramp of n entries.
func RampIndex(a uint8, n int) int {
	if n <= 1 {
		return 0
	}
	return (int(a)*(n-1) + 127) / 255
}
