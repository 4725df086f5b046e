// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmqr

import (
	"image"

	"github.com/unixdj/rmqr/coding"
)

// A contour is a closed outline of a dark area as a list of corners
// in module coordinates.  Outer edges run clockwise, holes
// counterclockwise.
type contour []image.Point

var (
	right = image.Pt(1, 0)
	down  = image.Pt(0, 1)
	left  = image.Pt(-1, 0)
	up    = image.Pt(0, -1)
)

func turnRight(d image.Point) image.Point { return image.Pt(-d.Y, d.X) }
func turnLeft(d image.Point) image.Point  { return image.Pt(d.Y, -d.X) }

// An edgeSet holds the directed unit edges between dark and light
// modules.  hz[y*w+x] is the edge from (x,y) to (x+1,y), 1 if it
// runs right, -1 if left.  vt[y*(w+1)+x] is the edge from (x,y) to
// (x,y+1), 1 if it runs down, -1 if up.
type edgeSet struct {
	w, h   int
	hz, vt []int8
}

func newEdgeSet(c *coding.Code) *edgeSet {
	w, h := c.Width, c.Height
	e := &edgeSet{
		w:  w,
		h:  h,
		hz: make([]int8, (h+1)*w),
		vt: make([]int8, h*(w+1)),
	}
	edge := func(a, b bool) int8 {
		switch {
		case b && !a:
			return 1
		case a && !b:
			return -1
		}
		return 0
	}
	for y := 0; y <= h; y++ {
		for x := 0; x < w; x++ {
			e.hz[y*w+x] = edge(c.Black(x, y-1), c.Black(x, y))
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x <= w; x++ {
			e.vt[y*(w+1)+x] = -edge(c.Black(x-1, y), c.Black(x, y))
		}
	}
	return e
}

// take removes the edge leaving p in direction d and reports
// whether it was there.
func (e *edgeSet) take(p, d image.Point) bool {
	var cell *int8
	var want int8
	switch d {
	case right:
		if p.X < e.w {
			cell, want = &e.hz[p.Y*e.w+p.X], 1
		}
	case left:
		if p.X > 0 {
			cell, want = &e.hz[p.Y*e.w+p.X-1], -1
		}
	case down:
		if p.Y < e.h {
			cell, want = &e.vt[p.Y*(e.w+1)+p.X], 1
		}
	case up:
		if p.Y > 0 {
			cell, want = &e.vt[(p.Y-1)*(e.w+1)+p.X], -1
		}
	}
	if cell == nil || *cell != want {
		return false
	}
	*cell = 0
	return true
}

// trace returns the outlines of the dark areas of c, in the order of
// their topmost, leftmost horizontal edges.  Areas touching only at
// corners are traced separately.
func trace(c *coding.Code) []contour {
	e := newEdgeSet(c)
	var cs []contour
	for y := 0; y <= e.h; y++ {
		for x := 0; x < e.w; x++ {
			var p, d image.Point
			switch e.hz[y*e.w+x] {
			case 1:
				p, d = image.Pt(x, y), right
			case -1:
				p, d = image.Pt(x+1, y), left
			default:
				continue
			}
			e.take(p, d)
			start := p
			pts := []image.Point{p}
			for p = p.Add(d); p != start; p = p.Add(d) {
				pts = append(pts, p)
				found := false
				for _, nd := range [3]image.Point{turnRight(d), turnLeft(d), d} {
					if e.take(p, nd) {
						d, found = nd, true
						break
					}
				}
				if !found {
					panic("qr: internal error")
				}
			}
			cs = append(cs, corners(pts))
		}
	}
	return cs
}

// corners returns the points of the closed path pts where the
// direction changes.
func corners(pts []image.Point) contour {
	n := len(pts)
	var c contour
	for i, p := range pts {
		in := p.Sub(pts[(i+n-1)%n])
		out := pts[(i+1)%n].Sub(p)
		if in != out {
			c = append(c, p)
		}
	}
	return c
}

// A pather receives path drawing operations.
type pather interface {
	moveTo(x, y float64)
	lineTo(x, y float64)
	quadTo(cx, cy, x, y float64)
	closePath()
}

// path draws c to p.  With round set, each corner is replaced by a
// quadratic curve starting and ending half a module away from it.
func (c contour) path(p pather, round bool) {
	n := len(c)
	if n == 0 {
		return
	}
	if !round {
		p.moveTo(float64(c[0].X), float64(c[0].Y))
		for _, q := range c[1:] {
			p.lineTo(float64(q.X), float64(q.Y))
		}
		p.closePath()
		return
	}
	p.moveTo(halfway(c[0], c[1%n]))
	for i := 1; i <= n; i++ {
		q := c[i%n]
		p.lineTo(halfway(q, c[i-1]))
		x, y := halfway(q, c[(i+1)%n])
		p.quadTo(float64(q.X), float64(q.Y), x, y)
	}
	p.closePath()
}

// halfway returns the point half a module away from a towards b.
func halfway(a, b image.Point) (float64, float64) {
	sign := func(n int) float64 {
		switch {
		case n > 0:
			return 0.5
		case n < 0:
			return -0.5
		}
		return 0
	}
	return float64(a.X) + sign(b.X-a.X), float64(a.Y) + sign(b.Y-a.Y)
}
