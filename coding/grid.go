// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Module is the state of one grid cell.
type Module byte

// Module states.  Function is a flag marking modules that are not
// data: patterns and format and version information.
const (
	Unset Module = iota
	Light
	Dark
	Reserved

	Function Module = 4
)

// State returns m without the Function flag.
func (m Module) State() Module { return m &^ Function }

// IsFunction reports whether m is a function module.
func (m Module) IsFunction() bool { return m&Function != 0 }

// IsDark reports whether m is dark.
func (m Module) IsDark() bool { return m.State() == Dark }

// A Grid is a code under construction.
type Grid struct {
	Width, Height int
	Cells         []Module // row major
}

// NewGrid returns an empty grid.
func NewGrid(w, h int) *Grid {
	return &Grid{Width: w, Height: h, Cells: make([]Module, w*h)}
}

// Clone returns a copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.Cells = append([]Module(nil), g.Cells...)
	return &c
}

// At returns the module at column x, row y.  Modules outside the grid
// are Light.
func (g *Grid) At(x, y int) Module {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Light
	}
	return g.Cells[y*g.Width+x]
}

// set sets a function module.
func (g *Grid) set(x, y int, dark bool) {
	m := Light | Function
	if dark {
		m = Dark | Function
	}
	g.Cells[y*g.Width+x] = m
}

// setIfUnset sets a function module unless it is already set.
func (g *Grid) setIfUnset(x, y int, dark bool) {
	if g.Cells[y*g.Width+x] == Unset {
		g.set(x, y, dark)
	}
}

// reserve marks a module for format or version information.
func (g *Grid) reserve(x, y int) {
	g.Cells[y*g.Width+x] = Reserved | Function
}

// fill writes a reserved module.  It panics if the module is not
// reserved.
func (g *Grid) fill(x, y int, dark bool) {
	if g.Cells[y*g.Width+x] != Reserved|Function {
		panic("qr: internal error")
	}
	g.set(x, y, dark)
}

// rect sets a w×h rectangle of function modules at x, y.
func (g *Grid) rect(x, y, w, h int, dark bool) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			g.set(xx, yy, dark)
		}
	}
}

// finder draws a finder pattern of the given size (7 or 5) at x, y:
// a dark ring, a light ring and a dark centre.
func (g *Grid) finder(x, y, size int) {
	g.rect(x, y, size, size, true)
	g.rect(x+1, y+1, size-2, size-2, false)
	c := size / 2
	if size == 7 {
		g.rect(x+2, y+2, 3, 3, true)
	} else {
		g.set(x+c, y+c, true)
	}
}

// alignment draws a 5×5 alignment pattern centred at x, y.
func (g *Grid) alignment(x, y int) {
	g.finder(x-2, y-2, 5)
}

// Count returns the number of modules in state s.
func (g *Grid) Count(s Module) int {
	n := 0
	for _, m := range g.Cells {
		if m.State() == s {
			n++
		}
	}
	return n
}

// code packs g into a Code.  It panics if any module is unset or
// reserved.
func (g *Grid) code() *Code {
	stride := (g.Width + 7) >> 3
	c := &Code{
		Width:  g.Width,
		Height: g.Height,
		Stride: stride,
		Bitmap: make([]byte, stride*g.Height),
	}
	for y := 0; y < g.Height; y++ {
		row := g.Cells[y*g.Width : (y+1)*g.Width]
		for x, m := range row {
			switch m.State() {
			case Dark:
				c.Bitmap[y*stride+x>>3] |= 0x80 >> (x & 7)
			case Light:
			default:
				panic("qr: internal error")
			}
		}
	}
	return c
}
