// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A Plan describes how to construct a code with a specific version.
type Plan struct {
	Version Version // code version
	Kind    Kind    // symbol family

	Width, Height int // number of pixels in a row and in a column

	// Grid has function patterns set, format and version modules
	// reserved and data modules unset.  It must not be modified.
	Grid *Grid

	// Path lists offsets of data modules in Grid.Cells in placement
	// order.
	Path []int
}

// Pre-allocated Plans.  A Plan is created the first time a version is
// used.
var plans [MaxRMQR + 1]struct {
	once sync.Once
	p    *Plan
}

// NewPlan returns the Plan for a code with the given version.
// Plans are shared and must not be modified.
func NewPlan(v Version) (*Plan, error) {
	if !v.Valid() {
		return nil, ErrVersion
	}
	p := &plans[v]
	p.once.Do(func() { p.p = vplan(v) })
	return p.p, nil
}

// vplan creates a Plan for the given version.
func vplan(v Version) *Plan {
	w, h := v.Width(), v.Height()
	p := &Plan{
		Version: v,
		Kind:    v.Kind(),
		Width:   w,
		Height:  h,
		Grid:    NewGrid(w, h),
	}
	g := p.Grid
	start, skip := w-1, 6
	switch p.Kind {
	case Standard:
		qrPatterns(g, v)
	case Micro:
		microPatterns(g)
		skip = -1
	case RMQR:
		rmqrPatterns(g, v)
		start, skip = w-2, -1
	}
	g.reserveInfo(v)

	// Data modules are placed in two-module wide columns starting
	// at the right, going up and down in turn, the right module
	// first.
	up := true
	for x := start; x > 0; x -= 2 {
		if x == skip { // vertical timing pattern
			x--
		}
		for i := 0; i < h; i++ {
			y := i
			if up {
				y = h - 1 - i
			}
			for _, xx := range [2]int{x, x - 1} {
				if g.At(xx, y) == Unset {
					p.Path = append(p.Path, y*w+xx)
				}
			}
		}
		up = !up
	}
	if len(p.Path) < v.Bytes()*8-4 || g.Count(Unset) != len(p.Path) {
		panic("qr: internal error")
	}
	return p
}

// qrPatterns draws QR function patterns.
func qrPatterns(g *Grid, v Version) {
	siz := g.Width
	// Timing patterns (overwritten by boxes).
	for i := 0; i < siz; i++ {
		g.set(i, 6, i&1 == 0)
		g.set(6, i, i&1 == 0)
	}
	// Position boxes with separators.
	for _, o := range [3][2]int{{0, 0}, {siz - 7, 0}, {0, siz - 7}} {
		sx, sy := o[0]-1, o[1]-1
		g.rect(max(sx, 0), max(sy, 0), 8, 8, false)
		g.finder(o[0], o[1], 7)
	}
	// Alignment boxes, except where they would overlap position
	// boxes.
	ap := vtab[v].align
	for i, y := range ap {
		for j, x := range ap {
			last := len(ap) - 1
			if i == 0 && (j == 0 || j == last) || j == 0 && i == last {
				continue
			}
			g.alignment(x, y)
		}
	}
	// One lonely black pixel.
	g.set(8, siz-8, true)
}

// microPatterns draws Micro QR function patterns.
func microPatterns(g *Grid) {
	siz := g.Width
	for i := 8; i < siz; i++ {
		g.set(i, 0, i&1 == 0)
		g.set(0, i, i&1 == 0)
	}
	g.rect(0, 0, 8, 8, false)
	g.finder(0, 0, 7)
}

// rmqrPatterns draws rMQR function patterns.
func rmqrPatterns(g *Grid, v Version) {
	w, h := g.Width, g.Height
	// Finder pattern and separator.
	g.finder(0, 0, 7)
	for y := 0; y < min(8, h); y++ {
		g.set(7, y, false)
	}
	if h >= 9 {
		for x := 0; x < 8; x++ {
			g.set(x, 7, false)
		}
	}
	// Finder sub-pattern.
	g.finder(w-5, h-5, 5)
	// Corner finder patterns.
	g.rect(0, h-1, 3, 1, true)
	if h >= 11 {
		g.set(0, h-2, true)
		g.set(1, h-2, false)
	}
	g.set(w-1, 0, true)
	g.set(w-2, 0, true)
	g.set(w-1, 1, true)
	g.set(w-2, 1, false)
	// Alignment patterns.
	ap := vtab[v].align
	for _, x := range ap {
		for _, y := range [2]int{0, h - 3} {
			g.rect(x-1, y, 3, 3, true)
			g.set(x, y+1, false)
		}
	}
	// Timing patterns fill what is left of the edges and the
	// alignment columns.
	for x := 0; x < w; x++ {
		g.setIfUnset(x, 0, x&1 == 0)
		g.setIfUnset(x, h-1, x&1 == 0)
	}
	for y := 0; y < h; y++ {
		g.setIfUnset(0, y, y&1 == 0)
		g.setIfUnset(w-1, y, y&1 == 0)
		for _, x := range ap {
			g.setIfUnset(x, y, y&1 == 0)
		}
	}
}

// Serialise writes bits from s to the data modules of g in placement
// order.  Modules left over after the end of s are light.
func (p *Plan) Serialise(s BitStream, g *Grid) {
	for _, off := range p.Path {
		if s.Next() != 0 {
			g.Cells[off] = Dark
		} else {
			g.Cells[off] = Light
		}
	}
}
