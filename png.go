// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmqr

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"io"

	"github.com/klauspost/compress/zlib"
)

// PNG returns a PNG image displaying the code, or nil if c.Style is
// invalid or the image too large.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodePNG writes a PNG image displaying the code to w.
//
// Square modules at c.Scale are written as a 1-bit image, grayscale
// for opaque black on white, otherwise with a palette.  Other styles
// are written as 8-bit RGBA images of Image.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	pw := &pngWriter{w: w}
	if c.bitmapped() {
		pw.writeBitmap(c)
	} else {
		img, err := c.rasterize()
		if err != nil {
			return err
		}
		pw.writeRGBA(img)
	}
	return pw.err
}

// A pngWriter writes PNG chunks.  Written data is stored in IDAT
// chunks.
type pngWriter struct {
	w   io.Writer
	err error
	tmp [13]byte
}

const pngHeader = "\x89PNG\r\n\x1a\n"

// PNG colour types.
const (
	ctGray    = 0
	ctPalette = 3
	ctRGBA    = 6
)

const chunkSize = 0x8000 // IDAT chunks split after 32 KB

func (w *pngWriter) writeChunk(name string, data []byte) {
	if w.err != nil {
		return
	}
	// data may alias w.tmp
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(data)))
	copy(hdr[4:8], name)
	crc := crc32.NewIEEE()
	crc.Write(hdr[4:8])
	crc.Write(data)
	if _, w.err = w.w.Write(hdr[:]); w.err != nil {
		return
	}
	if _, w.err = w.w.Write(data); w.err != nil {
		return
	}
	binary.BigEndian.PutUint32(hdr[0:4], crc.Sum32())
	_, w.err = w.w.Write(hdr[:4])
}

func (w *pngWriter) Write(b []byte) (int, error) {
	w.writeChunk("IDAT", b)
	if w.err != nil {
		return 0, w.err
	}
	return len(b), nil
}

func (w *pngWriter) writeHeader(width, height int, depth, ctype byte) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, pngHeader)
	}
	binary.BigEndian.PutUint32(w.tmp[0:4], uint32(width))
	binary.BigEndian.PutUint32(w.tmp[4:8], uint32(height))
	w.tmp[8] = depth
	w.tmp[9] = ctype
	w.tmp[10] = 0 // deflate
	w.tmp[11] = 0 // adaptive filtering
	w.tmp[12] = 0 // no interlace
	w.writeChunk("IHDR", w.tmp[:13])
}

// writeData writes the rows produced by rows to IDAT chunks.
func (w *pngWriter) writeData(rows func(io.Writer) error) {
	bw := bufio.NewWriterSize(w, chunkSize)
	zw, err := zlib.NewWriterLevel(bw, zlib.BestCompression)
	if err != nil {
		w.err = err
		return
	}
	if err := rows(zw); err != nil {
		w.err = err
		return
	}
	if err := zw.Close(); err != nil {
		w.err = err
		return
	}
	if err := bw.Flush(); err != nil {
		w.err = err
		return
	}
	w.writeChunk("IEND", nil)
}

func (w *pngWriter) writeBitmap(c *Code) {
	width, height, err := c.bitmapSize()
	if err != nil {
		w.err = err
		return
	}
	var pal [2]color.NRGBA
	for i, col := range c.palette() {
		pal[i] = color.NRGBAModel.Convert(col).(color.NRGBA)
	}
	const b, wh, o = 0x00, 0xff, 0xff // black, white, opaque
	var white byte
	if pal == [2]color.NRGBA{{wh, wh, wh, o}, {b, b, b, o}} {
		white = 0xff
		w.writeHeader(width, height, 1, ctGray)
	} else {
		w.writeHeader(width, height, 1, ctPalette)
		// Palette and transparency
		w.tmp[0] = pal[0].R
		w.tmp[1] = pal[0].G
		w.tmp[2] = pal[0].B
		w.tmp[3] = pal[1].R
		w.tmp[4] = pal[1].G
		w.tmp[5] = pal[1].B
		w.writeChunk("PLTE", w.tmp[:6])
		w.tmp[0] = pal[0].A
		w.tmp[1] = pal[1].A
		for a := 2; a > 0; a-- {
			if w.tmp[a-1] != 0xff {
				w.writeChunk("tRNS", w.tmp[:a])
				break
			}
		}
	}
	w.writeData(func(zw io.Writer) error {
		// Each row starts with filter type 0 (none).
		return c.rows(1, white, func(row []byte) error {
			_, err := zw.Write(row)
			return err
		})
	})
}

func (w *pngWriter) writeRGBA(img *image.RGBA) {
	b := img.Bounds()
	w.writeHeader(b.Dx(), b.Dy(), 8, ctRGBA)
	w.writeData(func(zw io.Writer) error {
		row := make([]byte, 1+4*b.Dx())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := 1
			for x := b.Min.X; x < b.Max.X; x++ {
				p := color.NRGBAModel.Convert(img.RGBAAt(x, y)).(color.NRGBA)
				row[i], row[i+1], row[i+2], row[i+3] = p.R, p.G, p.B, p.A
				i += 4
			}
			if _, err := zw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
