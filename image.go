// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmqr

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// maxPixels limits the number of pixels in antialiased images.
const maxPixels = 1 << 28

// Image returns an image displaying the code, or nil if c.Style is
// invalid or the image too large.
//
// Square modules at c.Scale are drawn as an *image.Paletted with the
// background at index 0 and the foreground at index 1.  Otherwise the
// outlines of dark areas are rasterised with antialiasing into an
// *image.RGBA.
func (c *Code) Image() image.Image {
	if !c.isValid() {
		return nil
	}
	if c.bitmapped() {
		if _, _, err := c.bitmapSize(); err != nil {
			return nil
		}
		return c.paletted()
	}
	img, err := c.rasterize()
	if err != nil {
		return nil
	}
	return img
}

func (c *Code) paletted() *image.Paletted {
	qz := c.QuietZone
	m := image.NewPaletted(image.Rect(0, 0,
		c.c.Width+2*qz, c.c.Height+2*qz), c.palette())
	for y := 0; y < c.c.Height; y++ {
		for x := 0; x < c.c.Width; x++ {
			if c.c.Black(x, y) {
				m.SetColorIndex(x+qz, y+qz, 1)
			}
		}
	}
	if c.Scale == 1 {
		return m
	}
	b := m.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0,
		b.Dx()*c.Scale, b.Dy()*c.Scale), m.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst
}

// rasterPath draws paths in module coordinates to a Rasterizer.
type rasterPath struct {
	z         *vector.Rasterizer
	unit, off float64
}

func (p rasterPath) pt(x, y float64) (float32, float32) {
	return float32(p.off + x*p.unit), float32(p.off + y*p.unit)
}

func (p rasterPath) moveTo(x, y float64) { p.z.MoveTo(p.pt(x, y)) }
func (p rasterPath) lineTo(x, y float64) { p.z.LineTo(p.pt(x, y)) }
func (p rasterPath) closePath()          { p.z.ClosePath() }

func (p rasterPath) quadTo(cx, cy, x, y float64) {
	bx, by := p.pt(cx, cy)
	ex, ey := p.pt(x, y)
	p.z.QuadTo(bx, by, ex, ey)
}

func (c *Code) rasterize() (*image.RGBA, error) {
	w, h, unit := c.layout()
	if w <= 0 || h <= 0 || w > maxPixels/h {
		return nil, ErrLargeImage
	}
	pal := c.palette()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(pal[0]), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	p := rasterPath{z, unit, float64(c.QuietZone) * unit}
	for _, ct := range trace(c.c) {
		ct.path(p, c.Shape == Round)
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(pal[1]), image.Point{})
	return dst, nil
}
