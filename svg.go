// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmqr

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strconv"
)

// SVG returns an SVG image displaying the code, or nil if c.Style is
// invalid.
func (c *Code) SVG() []byte {
	var b bytes.Buffer
	if err := c.EncodeSVG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodeSVG writes an SVG image displaying the code to w.  Dark areas
// are drawn as a single path in module units; the image is c.Size
// pixels wide, or c.Scale pixels per module.
func (c *Code) EncodeSVG(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	pw, ph, _ := c.layout()
	qz := c.QuietZone
	vw, vh := c.c.Width+2*qz, c.c.Height+2*qz
	pal := c.palette()

	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d">
`, pw, ph, vw, vh)
	if fill := svgFill(pal[0]); fill != "" {
		fmt.Fprintf(b, "<rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\"%s/>\n",
			vw, vh, fill)
	}
	if fill := svgFill(pal[1]); fill != "" {
		p := svgPath{b: make([]byte, 0, 64)}
		for _, ct := range trace(c.c) {
			ct.path(&p, c.Shape == Round)
		}
		fmt.Fprintf(b, "<path%s transform=\"translate(%d,%d)\" fill-rule=\"evenodd\" d=\"%s\"/>\n",
			fill, qz, qz, p.b)
	}
	b.WriteString("</svg>\n")
	return b.Flush()
}

// svgFill returns the fill attributes for col, or "" if it is fully
// transparent.
func svgFill(col color.Color) string {
	p := color.NRGBAModel.Convert(col).(color.NRGBA)
	switch p.A {
	case 0:
		return ""
	case 0xff:
		return fmt.Sprintf(` fill="#%02x%02x%02x"`, p.R, p.G, p.B)
	}
	return fmt.Sprintf(` fill="#%02x%02x%02x" fill-opacity="%.3g"`,
		p.R, p.G, p.B, float64(p.A)/0xff)
}

// svgPath builds SVG path data with absolute coordinates.
type svgPath struct {
	b    []byte
	x, y float64
}

func (p *svgPath) op(c byte, xy ...float64) {
	p.b = append(p.b, c)
	for i, v := range xy {
		if i != 0 {
			p.b = append(p.b, ' ')
		}
		p.b = strconv.AppendFloat(p.b, v, 'f', -1, 64)
	}
	if n := len(xy); n >= 2 {
		p.x, p.y = xy[n-2], xy[n-1]
	}
}

func (p *svgPath) moveTo(x, y float64) { p.op('M', x, y) }

func (p *svgPath) lineTo(x, y float64) {
	switch {
	case x == p.x && y == p.y:
	case y == p.y:
		p.b = append(p.b, 'H')
		p.b = strconv.AppendFloat(p.b, x, 'f', -1, 64)
		p.x = x
	case x == p.x:
		p.b = append(p.b, 'V')
		p.b = strconv.AppendFloat(p.b, y, 'f', -1, 64)
		p.y = y
	default:
		p.op('L', x, y)
	}
}

func (p *svgPath) quadTo(cx, cy, x, y float64) { p.op('Q', cx, cy, x, y) }
func (p *svgPath) closePath()                  { p.b = append(p.b, 'Z') }
