// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsWrite(t *testing.T) {
	var b Bits
	b.Write(1, 1)
	b.Write(0, 2)
	b.Write(0x1f, 5)
	b.Write(0xabc, 12)
	b.Write(0, 0)
	assert.Equal(t, 20, b.Bits())
	assert.Equal(t, []byte{0x9f, 0xab, 0xc0}, b.b)
	assert.Panics(t, func() { b.Bytes() })
	b.Write(0xf, 4)
	assert.Equal(t, []byte{0x9f, 0xab, 0xcf}, b.Bytes())
	b.Reset()
	assert.Zero(t, b.Bits())
}

// Bit streams from ISO/IEC 18004 annexes.
func TestSegmentEncode(t *testing.T) {
	for _, tt := range []struct {
		name string
		v    Version
		seg  Segment
		bits int
		want []byte
	}{
		{"numeric", 1, Segment{"01234567", Numeric}, 41,
			[]byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80}},
		{"alphanumeric", 1, Segment{"AC-42", Alphanumeric}, 41,
			[]byte{0x20, 0x29, 0xce, 0xe7, 0x21, 0x00}},
		{"kanji", 1, Segment{"\x93\x5f\xe4\xaa", Kanji}, 38,
			[]byte{0x80, 0x26, 0xcf, 0xea, 0xa8}},
		{"byte", 1, Segment{"\x01\xff", Byte}, 28,
			[]byte{0x40, 0x20, 0x1f, 0xf0}},
		{"micro", M1, Segment{"12345", Numeric}, 20,
			[]byte{0xa3, 0xda, 0xd0}},
		{"micro byte", M3, Segment{"a", Byte}, 2 + 4 + 8,
			[]byte{0x85, 0x84}},
		{"rmqr", R7x43, Segment{"42", Numeric}, 3 + 4 + 7,
			[]byte{0x24, 0xa8}},
		{"rmqr kanji", R11x43, Segment{"\x93\x5f", Kanji}, 3 + 4 + 13,
			[]byte{0x82, 0xd9, 0xf0}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var b Bits
			require.NoError(t, tt.seg.Encode(&b, tt.v))
			assert.Equal(t, tt.bits, b.Bits())
			assert.Equal(t, tt.bits, tt.seg.EncodedLength(tt.v))
			assert.Equal(t, tt.want, b.b)
		})
	}
}

func TestSegmentErrors(t *testing.T) {
	var b Bits
	err := Segment{"12a", Numeric}.Encode(&b, 1)
	assert.Equal(t, SegmentError{"12a", Numeric}, err)
	assert.EqualError(t, err, "qr: non-numeric string `12a`")

	err = Segment{"ab", Alphanumeric}.Encode(&b, 1)
	assert.IsType(t, SegmentError{}, err)

	err = Segment{"\x93", Kanji}.Encode(&b, 1)
	assert.IsType(t, SegmentError{}, err)

	err = Segment{"\x93\x7f", Kanji}.Encode(&b, 1)
	assert.IsType(t, SegmentError{}, err)

	err = Segment{"x", Byte}.Encode(&b, M2)
	assert.Equal(t, CompatError{Byte, M2}, err)
	assert.EqualError(t, err, "qr: mode byte not encodable in version M2")

	err = Segment{"A", Alphanumeric}.Encode(&b, M1)
	assert.Equal(t, CompatError{Alphanumeric, M1}, err)

	err = Segment{"x", Mode(9)}.Encode(&b, 1)
	assert.EqualError(t, err, "qr: invalid mode 9")

	// count field overflow
	err = Segment{"12345678", Numeric}.Encode(&b, M1)
	assert.ErrorIs(t, err, ErrTooLong)
	assert.Zero(t, b.Bits())
}

func TestModeIndicator(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		want [4]uint32
	}{
		{1, [4]uint32{1, 2, 4, 8}},
		{M4, [4]uint32{0, 1, 2, 3}},
		{R13x99, [4]uint32{1, 2, 3, 4}},
	} {
		var got [4]uint32
		for m := Numeric; m <= Kanji; m++ {
			got[m] = m.Indicator(tt.v)
		}
		assert.Equal(t, tt.want, got, "%v", tt.v)
	}
	assert.Equal(t, 4, Version(1).IndicatorLength())
	assert.Equal(t, 0, M1.IndicatorLength())
	assert.Equal(t, 3, M4.IndicatorLength())
	assert.Equal(t, 3, R7x43.IndicatorLength())
	assert.Equal(t, []int{3, 5, 7, 9},
		[]int{M1.TerminatorLength(), M2.TerminatorLength(),
			M3.TerminatorLength(), M4.TerminatorLength()})
}

func TestModeLength(t *testing.T) {
	assert.Equal(t, 67, Numeric.PayloadLength(20))
	assert.Equal(t, 4+10+67, Numeric.Length(20, 1))
	assert.Equal(t, 33, Alphanumeric.PayloadLength(6))
	assert.Equal(t, 39, Alphanumeric.PayloadLength(7))
	assert.Equal(t, 24, Byte.PayloadLength(3))
	assert.Equal(t, 26, Kanji.PayloadLength(2))
	assert.Zero(t, Kanji.Length(1, M2))
	assert.True(t, Kanji.Available(M3))
	assert.False(t, Byte.Available(M2))
}

func TestCharClasses(t *testing.T) {
	for _, r := range "0123456789" {
		assert.True(t, IsNumeric(r))
		assert.True(t, IsAlphanumeric(r))
	}
	for _, r := range "ABCXYZ $%*+-./:" {
		assert.False(t, IsNumeric(r))
		assert.True(t, IsAlphanumeric(r), "%q", r)
	}
	for _, r := range "a!#,;@[\x00\x1fÀ" {
		assert.False(t, IsAlphanumeric(r), "%q", r)
	}
	assert.True(t, IsShiftJISKanji(0x81, 0x40))
	assert.True(t, IsShiftJISKanji(0x9f, 0xfc))
	assert.True(t, IsShiftJISKanji(0xeb, 0xbf))
	assert.False(t, IsShiftJISKanji(0xeb, 0xc0))
	assert.False(t, IsShiftJISKanji(0xa0, 0x40))
	assert.False(t, IsShiftJISKanji(0x88, 0x7f))
	assert.False(t, IsShiftJISKanji(0x88, 0x3f))
}

func TestIsKanji(t *testing.T) {
	for _, r := range "点茗あア漢字" {
		assert.True(t, IsKanji(r), "%q", r)
	}
	for _, r := range "aA0€😀" {
		assert.False(t, IsKanji(r), "%q", r)
	}
}

func TestTerminate(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		l    Level
		bits int
		want []byte
	}{
		{R7x43, M, 5, []byte{0xf8, 0xec, 0x11, 0xec, 0x11, 0xec}},
		{M1, L, 10, []byte{0xff, 0xc0, 0x00}},
		{M1, L, 19, []byte{0xff, 0xff, 0xe0}},
		{1, L, 150, nil},
	} {
		b := NewBits(tt.v, tt.l)
		for n := tt.bits; n > 0; n -= min(n, 16) {
			b.Write(0xffff, min(n, 16))
		}
		b.terminate(tt.v, tt.v.DataBits(tt.l))
		assert.Equal(t, (tt.v.DataBits(tt.l)+7)/8, len(b.Bytes()), "%v", tt.v)
		if tt.want != nil {
			assert.Equal(t, tt.want, b.Bytes(), "%v", tt.v)
		}
	}
}

func TestAddCheckBytes(t *testing.T) {
	b := NewBits(1, M)
	require.NoError(t, Segment{"01234567", Numeric}.Encode(b, 1))
	b.AddCheckBytes(1, M)
	assert.Equal(t, []byte{
		0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
		0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11,
		0xa5, 0x24, 0xd4, 0xc1, 0xed, 0x36, 0xc7, 0x87,
		0x2c, 0x55,
	}, b.Bytes())

	// A full buffer gets no terminator.
	b = NewBits(M1, L)
	require.NoError(t, Segment{"12345", Numeric}.Encode(b, M1))
	b.AddCheckBytes(M1, L)
	d := b.Bytes()
	require.Len(t, d, 5)
	assert.Equal(t, []byte{0xa3, 0xda}, d[:2])
	assert.Equal(t, byte(0xd0), d[2]&0xf0)
	assert.Zero(t, d[4]&0x0f)

	b = NewBits(M1, L)
	b.Write(0, 21)
	assert.Panics(t, func() { b.AddCheckBytes(M1, L) })
}

func TestPermute(t *testing.T) {
	// 5-Q: blocks of 15, 15, 16 and 16 data bytes
	b := NewBits(5, Q)
	for i := 0; i < 62; i++ {
		b.Write(uint32(i), 8)
	}
	b.AddCheckBytes(5, Q)
	s := b.Permute(5, Q)
	out := s.Bytes()
	require.Len(t, out, 134)
	// data: first bytes of each block, then second bytes, ...
	assert.Equal(t, []byte{0, 15, 30, 46, 1, 16, 31, 47}, out[:8])
	// long blocks contribute the last data bytes
	assert.Equal(t, []byte{45, 61}, out[60:62])
	// check bytes of block 0 come first in each column
	src := b.b[:134]
	assert.Equal(t, src[62], out[62])
	assert.Equal(t, src[62+18], out[63])
}

func TestBitStream(t *testing.T) {
	s := NewBitStream([]byte{0xa0})
	var got []byte
	for i := 0; i < 10; i++ {
		got = append(got, s.Next())
	}
	assert.Equal(t, []byte{1, 0, 1, 0, 0, 0, 0, 0, 0, 0}, got)
}
