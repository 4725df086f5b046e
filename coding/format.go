// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// BCH generator polynomials.
const (
	formatPoly  = 0x537  // (15,5)
	versionPoly = 0x1f25 // (18,6)
)

// Format information masks.
const (
	formatMask      = 0x5412
	microFormatMask = 0x4445
	rmqrMaskFinder  = 0x1fab2
	rmqrMaskSub     = 0x20a7b
)

// bch returns data followed by the remainder of its division by poly.
// n is the number of check bits.
func bch(data uint32, poly uint32, n int) uint32 {
	rem := data << n
	deg := 0
	for p := poly; p > 1; p >>= 1 {
		deg++
	}
	for i := 31; i >= deg; i-- {
		if rem>>i&1 != 0 {
			rem ^= poly << (i - deg)
		}
	}
	return data<<n | rem
}

// FormatBits returns the 15 bit format information for a QR or
// Micro QR code, or the 18 bit format information on the finder
// pattern side of an rMQR code.
func FormatBits(v Version, l Level, mask int) uint32 {
	switch v.Kind() {
	case RMQR:
		return rmqrFormat(v, l) ^ rmqrMaskFinder
	case Micro:
		sym := max(int(v-M1)*2-1+int(l), 0)
		return bch(uint32(sym<<2|mask), formatPoly, 10) ^ microFormatMask
	}
	// L=01 M=00 Q=11 H=10
	return bch(uint32(l^1)<<3|uint32(mask), formatPoly, 10) ^ formatMask
}

func rmqrFormat(v Version, l Level) uint32 {
	d := uint32(v.Index())
	if l == H {
		d |= 1 << 5
	}
	return bch(d, versionPoly, 12)
}

// VersionBits returns the 18 bit version information for QR versions
// 7 and up, or 0.
func VersionBits(v Version) uint32 {
	if v < 7 || v > MaxVersion {
		return 0
	}
	return bch(uint32(v), versionPoly, 12)
}

// formatCells calls f for each format information module in bit
// order from the least significant bit, once per copy.
func formatCells(v Version, f func(bit, x, y int)) {
	w, h := v.Width(), v.Height()
	switch v.Kind() {
	case RMQR:
		for n := 0; n < 18; n++ {
			if n < 15 {
				f(n, 8+n/5, 1+n%5)
				f(n+18, w-8+n/5, h-6+n%5)
			} else {
				f(n, 11, n-14)
				f(n+18, w-20+n, h-6)
			}
		}
	case Micro:
		for i := 0; i < 15; i++ {
			switch {
			case i < 7:
				f(i, 8, i+1)
			case i == 7:
				f(i, 8, 8)
			default:
				f(i, 15-i, 8)
			}
		}
	default:
		for i := 0; i < 15; i++ {
			switch {
			case i < 6:
				f(i, 8, i)
			case i < 8:
				f(i, 8, i+1)
			case i == 8:
				f(i, 7, 8)
			default:
				f(i, 14-i, 8)
			}
			if i < 8 {
				f(i, w-1-i, 8)
			} else {
				f(i, 8, h-15+i)
			}
		}
	}
}

// versionCells calls f for each version information module of a QR
// code with version 7 or higher, twice per bit.
func versionCells(v Version, f func(bit, x, y int)) {
	if v < 7 || v > MaxVersion {
		return
	}
	h := v.Height()
	for k := 0; k < 18; k++ {
		f(k, k/3, h-11+k%3)
		f(k, h-11+k%3, k/3)
	}
}

// reserveInfo reserves format and version information modules.
func (g *Grid) reserveInfo(v Version) {
	formatCells(v, func(_, x, y int) { g.reserve(x, y) })
	versionCells(v, func(_, x, y int) { g.reserve(x, y) })
}

// writeFormat writes format information for the given level and mask.
func (g *Grid) writeFormat(v Version, l Level, mask int) {
	fb := uint64(FormatBits(v, l, mask))
	if v.Kind() == RMQR {
		// bits 18-35 select the sub-finder side copy
		fb |= uint64(rmqrFormat(v, l)^rmqrMaskSub) << 18
	}
	formatCells(v, func(bit, x, y int) {
		g.fill(x, y, fb>>bit&1 != 0)
	})
}

// writeVersion writes version information.
func (g *Grid) writeVersion(v Version) {
	vb := VersionBits(v)
	versionCells(v, func(bit, x, y int) {
		g.fill(x, y, vb>>bit&1 != 0)
	})
}
