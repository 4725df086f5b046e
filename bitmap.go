// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmqr

import "encoding/binary"

// maxBitmapWidth limits the width and height of 1-bit images.
const maxBitmapWidth = 32767 * 8

// bitmapSize returns the size of the 1-bit image at c.Scale.
func (c *Code) bitmapSize() (w, h int, err error) {
	w, h, _ = c.layout()
	if w > maxBitmapWidth || h > maxBitmapWidth {
		return 0, 0, ErrLargeImage
	}
	return w, h, nil
}

// rows calls f with each row of the 1-bit image of c at c.Scale,
// quiet zone included.  Bits are set for dark pixels, or for light
// ones if white is 0xff.  The first pre bytes of each row are zero.
func (c *Code) rows(pre int, white byte, f func(row []byte) error) error {
	cc := c.c
	scale, qz := c.Scale, c.QuietZone
	length := scale * (cc.Width + 2*qz)
	buf := make([]byte, pre+(length+7)/8)
	row := buf[pre:]
	fill := func() {
		for i := range row {
			row[i] = white
		}
	}
	repeat := func(n int) error {
		for i := 0; i < n; i++ {
			if err := f(buf); err != nil {
				return err
			}
		}
		return nil
	}

	fill()
	if err := repeat(scale * qz); err != nil {
		return err
	}
	data := row[scale*qz/8 : (scale*(cc.Width+qz)+7)/8]
	slen := scale * qz & 7
	for y := 0; y < cc.Height; y++ {
		srow := cc.Bitmap[y*cc.Stride : (y+1)*cc.Stride]
		// Bespoke fast encoders for common cases.
		switch {
		case scale == 8:
			packRow8(data, srow, white)
		case scale == 4:
			packRow4(data, srow, white, slen)
		case scale == 1 && slen|int(white) == 0:
			copy(data, srow)
		default:
			packRow(row, srow, cc.Width, scale, white, scale*qz)
		}
		if err := repeat(scale); err != nil {
			return err
		}
	}
	fill()
	return repeat(scale * qz)
}

// packRow8 packs a row of modules at scale 8.
func packRow8(row, srow []byte, white byte) {
	var b uint64
	for _, v := range srow {
		v ^= white
		for i := 0; i < 8; i++ {
			b = b<<8 | uint64(-(v & 1))
			v >>= 1
		}
		if len(row) < 8 {
			break
		}
		binary.LittleEndian.PutUint64(row, b)
		row = row[8:]
	}
	if len(row) > 4 {
		binary.LittleEndian.PutUint32(row, uint32(b))
		b >>= 32
		row = row[4:]
	}
	for i := range row {
		row[i] = byte(b)
		b >>= 8
	}
}

// packRow4 packs a row of modules at scale 4, slen bits into the
// first byte of row.
func packRow4(row, srow []byte, white byte, slen int) {
	var b uint32
	var last uint16
	slen >>= 2
	for _, v := range srow {
		last |= uint16(v)
		b = uint32(byte(last>>slen)^white) * 01001001 & 0300070007 *
			0111 & 0x11111111 * 0xf
		last <<= 8
		if len(row) < 4 {
			break
		}
		binary.BigEndian.PutUint32(row, b)
		row = row[4:]
	}
	for i := range row {
		row[i] = byte(b >> 24)
		b <<= 8
	}
}

// packRow packs width modules at any scale into row, starting at
// bit off.  Bits outside the modules are left alone.
func packRow(row, srow []byte, width, scale int, white byte, off int) {
	for x := 0; x < width; x++ {
		set := srow[x>>3]<<(x&7)&0x80 != 0
		if white != 0 {
			set = !set
		}
		for p := off + x*scale; p < off+(x+1)*scale; p++ {
			if set {
				row[p>>3] |= 0x80 >> (p & 7)
			} else {
				row[p>>3] &^= 0x80 >> (p & 7)
			}
		}
	}
}
