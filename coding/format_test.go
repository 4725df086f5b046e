// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBits(t *testing.T) {
	for _, tt := range []struct {
		l    Level
		mask int
		want uint32
	}{
		{M, 0, 0x5412},
		{M, 1, 0x5125},
		{M, 7, 0x4aa0},
		{L, 0, 0x77c4},
		{L, 3, 0x789d},
		{H, 0, 0x1689},
		{Q, 0, 0x355f},
		{Q, 3, 0x3a06},
	} {
		assert.Equal(t, tt.want, FormatBits(1, tt.l, tt.mask),
			"%v mask %d", tt.l, tt.mask)
	}
	// Micro QR symbol number 0 (M1) with mask 0.
	assert.Equal(t, uint32(0x4445), FormatBits(M1, L, 0))
}

func TestVersionBits(t *testing.T) {
	assert.Equal(t, uint32(0x07c94), VersionBits(7))
	assert.Equal(t, uint32(0x085bc), VersionBits(8))
	assert.Equal(t, uint32(0x28c69), VersionBits(40))
	assert.Zero(t, VersionBits(6))
	assert.Zero(t, VersionBits(M4))
}

// rem returns the remainder of x divided by poly.
func rem(x, poly uint32) uint32 {
	deg := 0
	for p := poly; p > 1; p >>= 1 {
		deg++
	}
	for i := 31; i >= deg; i-- {
		if x>>i&1 != 0 {
			x ^= poly << (i - deg)
		}
	}
	return x
}

func TestFormatCodewords(t *testing.T) {
	for v := MinVersion; v <= MaxRMQR; v++ {
		for _, l := range v.Levels() {
			for mask := 0; mask < Masks(v.Kind()); mask++ {
				fb := FormatBits(v, l, mask)
				switch v.Kind() {
				case Standard:
					assert.Zero(t, rem(fb^formatMask, formatPoly))
					assert.Equal(t, uint32(l^1)<<3|uint32(mask), (fb^formatMask)>>10)
				case Micro:
					assert.Zero(t, rem(fb^microFormatMask, formatPoly))
					assert.Equal(t, uint32(mask), (fb^microFormatMask)>>10&3)
				case RMQR:
					d := fb ^ rmqrMaskFinder
					assert.Zero(t, rem(d, versionPoly))
					assert.Equal(t, uint32(v.Index()), d>>12&0x1f)
					assert.Equal(t, l == H, d>>17 == 1)
					assert.Less(t, fb, uint32(1<<18))
				}
			}
		}
	}
	// Micro QR symbol numbers
	sym := func(v Version, l Level) uint32 {
		return (FormatBits(v, l, 0) ^ microFormatMask) >> 12
	}
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, []uint32{
		sym(M1, L), sym(M2, L), sym(M2, M), sym(M3, L),
		sym(M3, M), sym(M4, L), sym(M4, M), sym(M4, Q),
	})
}

func TestFormatCells(t *testing.T) {
	for _, v := range []Version{1, 7, M1, M4, R7x43, R17x139} {
		n := 0
		seen := map[[2]int]int{}
		formatCells(v, func(bit, x, y int) {
			n++
			seen[[2]int{x, y}]++
			assert.True(t, 0 <= x && x < v.Width() && 0 <= y && y < v.Height())
		})
		for xy, c := range seen {
			assert.Equal(t, 1, c, "%v: %v", v, xy)
		}
		switch v.Kind() {
		case Micro:
			assert.Equal(t, 15, n)
		default:
			assert.Equal(t, 30+6*int(v.Kind()/RMQR), n)
		}
	}
}

func TestWriteFormatPanics(t *testing.T) {
	g := NewGrid(21, 21)
	assert.Panics(t, func() { g.writeFormat(1, M, 0) })
	g.reserveInfo(1)
	assert.NotPanics(t, func() { g.writeFormat(1, M, 0) })
	// Once written, the cells are no longer reserved.
	assert.Panics(t, func() { g.writeFormat(1, M, 0) })
}
