// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
func maskBit(mask, i, j int) bool {
	switch mask {
	case 0:
		return (i+j)%2 == 0
	case 1:
		return i%2 == 0
	case 2:
		return j%3 == 0
	case 3:
		return (i+j)%3 == 0
	case 4:
		return (i/2+j/3)%2 == 0
	case 5:
		return i*j%2+i*j%3 == 0
	case 6:
		return (i*j%2+i*j%3)%2 == 0
	case 7:
		return ((i+j)%2+i*j%3)%2 == 0
	}
	panic("qr: internal error")
}

// Masks returns the number of mask patterns for kind.
func Masks(k Kind) int {
	switch k {
	case Micro:
		return 4
	case RMQR:
		return 1
	}
	return 8
}

// pattern returns the QR mask pattern used as mask number mask in a
// code of kind k.
func pattern(k Kind, mask int) int {
	switch k {
	case Micro:
		return [4]int{1, 4, 6, 7}[mask]
	case RMQR:
		return 4
	}
	return mask
}

// applyMask inverts data modules selected by the mask pattern.
func (g *Grid) applyMask(k Kind, mask int) {
	pat := pattern(k, mask)
	for i := 0; i < g.Height; i++ {
		row := g.Cells[i*g.Width : (i+1)*g.Width]
		for j, m := range row {
			if m.IsFunction() || !maskBit(pat, i, j) {
				continue
			}
			switch m {
			case Dark:
				row[j] = Light
			case Light:
				row[j] = Dark
			default:
				panic("qr: internal error")
			}
		}
	}
}

// A Code is a rectangular pixel grid.
type Code struct {
	Kind    Kind    // symbol family
	Version Version // code version
	Level   Level   // error correction level
	Mask    int     // mask number

	Bitmap []byte // 1 is black, 0 is white
	Width  int    // number of pixels in a row
	Height int    // number of pixels in a column
	Stride int    // number of bytes per row
}

// Black reports whether the pixel at column x, row y is black.
// Pixels outside the code are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Width && 0 <= y && y < c.Height &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// IsDark reports whether the module at the given row and column is
// dark.
func (c *Code) IsDark(row, col int) bool { return c.Black(col, row) }

// Penalty returns the penalty value for a QR or rMQR code, or the
// negative evaluation score for a Micro QR code.  The value is used
// for choosing the mask.
func (c *Code) Penalty() int {
	if c.Kind == Micro {
		// Micro QR code evaluation score: min(v,h)*16+max(v,h)
		//   v = number of dark modules in right side edge
		//   h = number of dark modules in lower side edge
		// v and h exclude timing modules.
		v, h := 0, 0
		for i := 1; i < c.Height; i++ {
			if c.Black(c.Width-1, i) {
				v++
			}
		}
		for i := 1; i < c.Width; i++ {
			if c.Black(i, c.Height-1) {
				h++
			}
		}
		if h < v {
			h, v = v, h
		}
		return -(v<<4 + h)
	}

	// Total penalty is the sum of penalties for runs and boxes
	// of same-colour pixels, finder patterns and colour balance.
	//
	//   - RunP: for non-overlapping runs of n pixels, n>=5 -> n-2
	//   - BoxP: for possibly overlapping 2x2 boxes -> 3
	//   - FindP: for possibly overlapping finder-like patterns -> 40
	//     The pattern is 1011101 with 0000 on either side;
	//     may extend into the quiet zone
	//   - BalP: for n% of black pixels -> 10*floor(abs(n-50)/5)
	const (
		MinRun    = 5  // RunP:  miniumum run length
		RunPDelta = -2 // RunP:  add to run length
		BoxPP     = 3  // BoxP:  points per box
		FindPP    = 40 // FindP: points per pattern
		BalPP     = 10 // BalP:  points per 5%

		// last pixels are kept in a uint16; the pattern
		// occupies the low 11 bits.
		FindMask = 0x7ff
		FindB    = 0b0000_1011101 // quiet zone before
		FindA    = 0b1011101_0000 // quiet zone after
	)

	p := 0
	dark := 0
	// line scores runs and finder patterns in a line of n pixels.
	line := func(n int, black func(int) bool) {
		var pat uint16
		r := 0
		prev := false
		for i := -4; i < n+4; i++ {
			b := black(i)
			pat = pat<<1 | uint16(btoi(b))
			if pat&FindMask == FindB || pat&FindMask == FindA {
				p += FindPP
			}
			if i < 0 || i >= n {
				continue
			}
			if i > 0 && b == prev {
				r++
			} else {
				if r >= MinRun {
					p += r + RunPDelta
				}
				r = 1
			}
			prev = b
		}
		if r >= MinRun {
			p += r + RunPDelta
		}
	}
	for y := 0; y < c.Height; y++ {
		line(c.Width, func(x int) bool { return c.Black(x, y) })
		for x := 0; x < c.Width; x++ {
			b := c.Black(x, y)
			if b {
				dark++
			}
			if x > 0 && y > 0 && b == c.Black(x-1, y) &&
				b == c.Black(x, y-1) && b == c.Black(x-1, y-1) {
				p += BoxPP
			}
		}
	}
	for x := 0; x < c.Width; x++ {
		line(c.Height, func(y int) bool { return c.Black(x, y) })
	}

	total := c.Width * c.Height
	p += abs(dark*2-total) * 10 / total * BalPP
	return p
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
