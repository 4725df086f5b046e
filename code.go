// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmqr

import (
	"image/color"
	"math"
	"strings"

	"github.com/unixdj/rmqr/coding"
)

// A Shape is the shape of dark areas in rendered images.
type Shape int

const (
	Square Shape = iota // square modules
	Round               // outlines with rounded corners
)

// Style describes how a Code is rendered.
type Style struct {
	Foreground color.Color // dark modules; nil is black
	Background color.Color // light modules and quiet zone; nil is white
	Reverse    bool        // swap Foreground and Background

	Shape Shape

	// Size is the image width in pixels; the height follows the
	// aspect ratio of the code.  If Size is 0, each module is Scale
	// pixels wide.
	Size  int
	Scale int // image pixels per module

	// QuietZone is the margin around the code in modules.
	QuietZone int
}

// A Code is a finished QR, Micro QR or rMQR code.  The embedded Style
// controls rendering and may be changed freely.
type Code struct {
	Style
	c *coding.Code
}

func newCode(cc *coding.Code) *Code {
	qz := 4
	if cc.Kind != coding.Standard {
		qz = 2
	}
	return &Code{Style{Scale: 8, QuietZone: qz}, cc}
}

func (c *Code) Kind() Kind       { return c.c.Kind }
func (c *Code) Version() Version { return c.c.Version }
func (c *Code) Level() Level     { return c.c.Level }

// Mask returns the mask pattern number.  It is always 0 for rMQR
// codes, which have a single pattern.
func (c *Code) Mask() int { return c.c.Mask }

// Width returns the number of modules in a row, quiet zone excluded.
func (c *Code) Width() int { return c.c.Width }

// Height returns the number of modules in a column, quiet zone
// excluded.
func (c *Code) Height() int { return c.c.Height }

// IsDark reports whether the module at the given row and column is
// dark.  Modules outside the code are light.
func (c *Code) IsDark(row, col int) bool { return c.c.IsDark(row, col) }

// Black reports whether the module at column x, row y is dark.
func (c *Code) Black(x, y int) bool { return c.c.Black(x, y) }

func (c *Code) isValid() bool {
	return c != nil && c.c != nil && c.QuietZone >= 0 && c.Size >= 0 &&
		(c.Size > 0 || c.Scale > 0) &&
		(c.Shape == Square || c.Shape == Round)
}

// bitmapped reports whether images are drawn module by module from
// the bitmap.
func (c *Code) bitmapped() bool {
	return c.Shape == Square && c.Size == 0
}

// layout returns the image size in pixels and the size of a module.
func (c *Code) layout() (w, h int, unit float64) {
	mw := c.c.Width + 2*c.QuietZone
	mh := c.c.Height + 2*c.QuietZone
	if c.Size == 0 {
		return c.Scale * mw, c.Scale * mh, float64(c.Scale)
	}
	unit = float64(c.Size) / float64(mw)
	return c.Size, int(math.Round(unit * float64(mh))), unit
}

// palette returns the background and foreground colours.
func (c *Code) palette() color.Palette {
	bg, fg := c.Background, c.Foreground
	if bg == nil {
		bg = color.White
	}
	if fg == nil {
		fg = color.Black
	}
	if c.Reverse {
		bg, fg = fg, bg
	}
	return color.Palette{bg, fg}
}

// Text returns the code as text, one line per row of modules and one
// dark or light string per module.  Quiet zone is not included.
func (c *Code) Text(dark, light string) string {
	var b strings.Builder
	b.Grow((c.c.Width*max(len(dark), len(light)) + 1) * c.c.Height)
	for y := 0; y < c.c.Height; y++ {
		for x := 0; x < c.c.Width; x++ {
			if c.c.Black(x, y) {
				b.WriteString(dark)
			} else {
				b.WriteString(light)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String returns the code, quiet zone included, drawn with Unicode
// block elements, two rows of modules per line.  Dark modules are
// drawn as blocks, or light ones if c.Reverse is set.
func (c *Code) String() string {
	const (
		empty = " "
		upper = "▀"
		lower = "▄"
		full  = "█"
	)
	qz := c.QuietZone
	if qz < 0 {
		qz = 0
	}
	w, h := c.c.Width+2*qz, c.c.Height+2*qz
	block := func(x, y int) bool {
		return y < h && c.c.Black(x-qz, y-qz) != c.Reverse
	}
	var b strings.Builder
	b.Grow((w*len(full) + 1) * (h + 1) / 2)
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			switch t, u := block(x, y), block(x, y+1); {
			case t && u:
				b.WriteString(full)
			case t:
				b.WriteString(upper)
			case u:
				b.WriteString(lower)
			default:
				b.WriteString(empty)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
