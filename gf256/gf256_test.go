// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qrField = NewField(0x11d, 2)

func TestFieldTables(t *testing.T) {
	f := qrField
	assert.Equal(t, byte(1), f.Exp(0))
	assert.Equal(t, byte(1), f.Exp(255))
	assert.Equal(t, byte(0x1d), f.Exp(8))
	assert.Equal(t, byte(0), f.Exp(-1))
	assert.Equal(t, -1, f.Log(0))
	for i := 1; i < 256; i++ {
		x := byte(i)
		require.Equal(t, x, f.Exp(f.Log(x)), "exp(log(%#x))", x)
		require.Equal(t, byte(1), f.Mul(x, f.Inv(x)), "%#x * inv", x)
	}
	assert.Equal(t, byte(0x1d), f.Mul(2, 0x80))
	assert.Equal(t, byte(0), f.Mul(0, 0x80))
	assert.Equal(t, byte(0), f.Inv(0))
	assert.Equal(t, byte(3), f.Add(1, 2))
}

func TestMulMatchesBitwise(t *testing.T) {
	f := qrField
	for x := 0; x < 256; x += 7 {
		for y := 0; y < 256; y += 5 {
			assert.Equal(t, byte(mul(x, y, 0x11d)), f.Mul(byte(x), byte(y)))
		}
	}
}

func TestNewFieldPanics(t *testing.T) {
	assert.Panics(t, func() { NewField(0x1d, 2) })
	// 0x11b is irreducible but 2 does not generate its group.
	assert.Panics(t, func() { NewField(0x11b, 2) })
	assert.NotPanics(t, func() { NewField(0x11b, 3) })
}

func TestGenerator(t *testing.T) {
	// x^7 + α^87x^6 + α^229x^5 + α^146x^4 + α^149x^3 + α^238x^2 +
	// α^102x + α^21
	rs := NewRSEncoder(qrField, 7)
	gen := rs.Generator()
	require.Len(t, gen, 8)
	logs := make([]int, len(gen))
	for i, g := range gen {
		logs[i] = qrField.Log(g)
	}
	assert.Equal(t, []int{0, 87, 229, 146, 149, 238, 102, 21}, logs)
	assert.Equal(t, 7, rs.Len())

	// Cached per degree.
	assert.Same(t, &rs.gen[0], &NewRSEncoder(qrField, 7).gen[0])
}

func TestECC(t *testing.T) {
	for _, tt := range []struct {
		name  string
		data  []byte
		check []byte
	}{
		{"01234567-1M",
			[]byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
				0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11},
			[]byte{0xa5, 0x24, 0xd4, 0xc1, 0xed, 0x36, 0xc7, 0x87,
				0x2c, 0x55}},
		{"HELLO WORLD-1M",
			[]byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236,
				17, 236, 17, 236, 17},
			[]byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRSEncoder(qrField, len(tt.check))
			check := make([]byte, len(tt.check)+2)
			for i := range check {
				check[i] = 0xff
			}
			rs.ECC(tt.data, check)
			assert.Equal(t, tt.check, check[:len(tt.check)])
			assert.Equal(t, []byte{0xff, 0xff}, check[len(tt.check):])
		})
	}
}

func TestCodewordRoots(t *testing.T) {
	// A codeword vanishes at every root of the generator.
	rs := NewRSEncoder(qrField, 10)
	data := []byte("The quick brown fox")
	check := make([]byte, 10)
	rs.ECC(data, check)
	cw := append(append([]byte(nil), data...), check...)
	for i := 0; i < 10; i++ {
		a := qrField.Exp(i)
		var v byte
		for _, c := range cw {
			v = qrField.Mul(v, a) ^ c
		}
		assert.Zero(t, v, "root α^%d", i)
	}
}

func TestNewRSEncoderPanics(t *testing.T) {
	assert.Panics(t, func() { NewRSEncoder(qrField, 0) })
	assert.Panics(t, func() { NewRSEncoder(qrField, 256) })
	rs := NewRSEncoder(qrField, 4)
	assert.Panics(t, func() { rs.ECC([]byte{1}, make([]byte, 3)) })
}
