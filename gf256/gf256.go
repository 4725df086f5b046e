// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon error correction coding over it.
package gf256 // import "github.com/unixdj/rmqr/gf256"

import "sync"

// A Field represents an instance of GF(256) defined by a specific
// polynomial.  A Field is safe for concurrent use.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte // exp[i] = α^i, doubled so exp[log x + log y] needs no mod

	gen [256]struct { // generator polynomials by degree
		once sync.Once
		p    []byte
	}
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// The choice of generator α only matters for the Exp and Log
// operations.  NewField panics if α does not generate the
// multiplicative group of the field.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 {
		panic("gf256: invalid polynomial")
	}
	f := new(Field)
	x := 1
	for i := 0; i < 255; i++ {
		if x == 0 || x == 1 && i != 0 {
			panic("gf256: invalid generator")
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	if x != 1 {
		panic("gf256: invalid generator")
	}
	return f
}

// mul multiplies x by y modulo poly, bit by bit.  Used to build the
// tables.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte { return x ^ y }

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-int(f.log[x])]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// generator returns the generator polynomial of degree e,
// ∏(x - α^i) for i in [0, e), highest degree first.  The leading
// coefficient is always 1.
func (f *Field) generator(e int) []byte {
	g := &f.gen[e]
	g.once.Do(func() {
		p := make([]byte, 1, e+1)
		p[0] = 1
		for i := 0; i < e; i++ {
			a := f.exp[i]
			p = append(p, 0)
			for k := len(p) - 1; k > 0; k-- {
				p[k] ^= f.Mul(p[k-1], a)
			}
		}
		g.p = p
	})
	return g.p
}

// An RSEncoder implements Reed-Solomon encoding over a given field
// using a given number of error correction bytes.  An RSEncoder holds
// no mutable state and may be shared.
type RSEncoder struct {
	f   *Field
	c   int
	gen []byte
}

// NewRSEncoder returns a new Reed-Solomon encoder over the given field
// and number of error correction bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	if c < 1 || c > 255 {
		panic("gf256: invalid number of check bytes")
	}
	return &RSEncoder{f: f, c: c, gen: f.generator(c)}
}

// Len returns the number of error correction bytes.
func (rs *RSEncoder) Len() int { return rs.c }

// Generator returns a copy of the generator polynomial, highest degree
// first.
func (rs *RSEncoder) Generator() []byte {
	return append([]byte(nil), rs.gen...)
}

// ECC writes to check the error correcting code bytes for data,
// the remainder of data·x^c divided by the generator polynomial.
// check must be at least rs.Len() bytes long.
func (rs *RSEncoder) ECC(data, check []byte) {
	c := rs.c
	if len(check) < c {
		panic("gf256: invalid check byte length")
	}
	check = check[:c]
	clear(check)
	f, gen := rs.f, rs.gen[1:]
	for _, b := range data {
		k := b ^ check[0]
		copy(check, check[1:])
		check[c-1] = 0
		if k == 0 {
			continue
		}
		lk := int(f.log[k])
		for j, g := range gen {
			if g != 0 {
				check[j] ^= f.exp[lk+int(f.log[g])]
			}
		}
	}
}
