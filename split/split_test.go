// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/rmqr/coding"
)

func TestAnalyze(t *testing.T) {
	for _, tt := range []struct {
		name string
		s    String
		want []coding.Segment
	}{
		{"numeric", String{Text: "01234567"},
			[]coding.Segment{{Text: "01234567", Mode: coding.Numeric}}},
		{"byte", String{Text: "Hello, rmqr!"},
			[]coding.Segment{{Text: "Hello, rmqr!", Mode: coding.Byte}}},
		{"mixed", String{Text: "ABC123456789012"},
			[]coding.Segment{
				{Text: "ABC", Mode: coding.Alphanumeric},
				{Text: "123456789012", Mode: coding.Numeric},
			}},
		{"short digits", String{Text: "A1B"},
			[]coding.Segment{{Text: "A1B", Mode: coding.Alphanumeric}}},
		{"utf-8", String{Text: "点茗"},
			[]coding.Segment{{Text: "点茗", Mode: coding.Byte}}},
		{"kanji", String{Text: "点茗", Kanji: true},
			[]coding.Segment{{Text: "\x93\x5f\xe4\xaa", Mode: coding.Kanji}}},
		{"latin1", String{Text: "café", Charset: Latin1},
			[]coding.Segment{{Text: "caf\xe9", Mode: coding.Byte}}},
		{"shift jis", String{Text: "ｱｲｳ", Charset: ShiftJIS},
			[]coding.Segment{{Text: "\xb1\xb2\xb3", Mode: coding.Byte}}},
		{"empty", String{}, nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Analyze(tt.s.Text, tt.s.Charset, tt.s.Kanji)
			require.NoError(t, err)
			assert.Equal(t, tt.want, segs)
		})
	}
}

func TestSplitBits(t *testing.T) {
	sp, err := NewSplitter(String{Text: "01234567890123456789"})
	require.NoError(t, err)
	segs, bits := sp.Split(1)
	assert.Equal(t, 4+10+67, bits)
	assert.Len(t, segs, 1)
	_, bits = sp.Split(coding.R13x27)
	assert.Equal(t, 3+5+67, bits)
	// count field overflow
	segs, bits = sp.Split(coding.M1)
	assert.Nil(t, segs)
	assert.GreaterOrEqual(t, bits, inf)

	// Micro QR M2 has no byte mode.
	sp, err = NewSplitter(String{Text: "a"})
	require.NoError(t, err)
	_, bits = sp.Split(coding.M2)
	assert.GreaterOrEqual(t, bits, inf)
	_, bits = sp.Split(coding.M3)
	assert.Equal(t, 2+4+8, bits)

	// encoded lengths agree with the segments
	sp, err = NewSplitter(String{Text: "Tel. +81 3-1234-5678 点茗", Kanji: true})
	require.NoError(t, err)
	for _, v := range []coding.Version{1, 10, 27, coding.M4, coding.R17x139} {
		segs, bits := sp.Split(v)
		n := 0
		for _, s := range segs {
			n += s.EncodedLength(v)
		}
		assert.Equal(t, n, bits, "%v", v)
		e, err := coding.NewEncoder(v, coding.M)
		require.NoError(t, err)
		require.NoError(t, e.Write(segs...))
		assert.Equal(t, bits, e.Bits(), "%v", v)
	}
}

func TestCharError(t *testing.T) {
	for _, tt := range []struct {
		s   String
		off int
		r   rune
	}{
		{String{Text: "a一b", Charset: Latin1}, 1, '一'},
		{String{Text: "ab\xff", Charset: Latin1}, 2, utf8.RuneError},
		{String{Text: "x😀", Charset: ShiftJIS}, 1, '😀'},
		{String{Text: "x😀", Charset: ShiftJIS, Kanji: true}, 1, '😀'},
	} {
		_, err := NewSplitter(tt.s)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotEncodable)
		var ce *CharError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, tt.off, ce.Offset, "%q", tt.s.Text)
		assert.Equal(t, tt.r, ce.Rune, "%q", tt.s.Text)
	}

	// Kanji mode accepts what Latin-1 can't.
	segs, err := Analyze("a一b", Latin1, true)
	require.NoError(t, err)
	assert.Equal(t, []coding.Segment{
		{Text: "a", Mode: coding.Byte},
		{Text: "\x88\xea", Mode: coding.Kanji},
		{Text: "b", Mode: coding.Byte},
	}, segs)

	// UTF-8 passes invalid encoding through.
	segs, err = Analyze("ab\xff", UTF8, false)
	require.NoError(t, err)
	assert.Equal(t, []coding.Segment{{Text: "ab\xff", Mode: coding.Byte}}, segs)

	_, err = NewSplitter(String{Charset: 7})
	assert.ErrorIs(t, err, ErrCharset)
}

func TestSelect(t *testing.T) {
	for _, tt := range []struct {
		name     string
		text     string
		level    coding.Level
		kind     coding.Kind
		strategy Strategy
		want     coding.Version
	}{
		{"qr", "01234567890123456789", M, coding.Standard, Area, 1},
		{"qr class", strings.Repeat("a", 300), L, coding.Standard, Area, 11},
		{"qr empty", "", H, coding.Standard, Area, 1},
		{"micro", "12345", L, coding.Micro, Area, coding.M1},
		{"micro level", "12345", M, coding.Micro, Area, coding.M2},
		{"micro byte", "Hello", L, coding.Micro, Area, coding.M3},
		{"micro empty", "", Q, coding.Micro, Area, coding.M4},
		{"rmqr", "Hello, rmqr!", M, coding.RMQR, Area, coding.R11x43},
		{"rmqr width", "Hello, rmqr!", M, coding.RMQR, Width, coding.R11x43},
		{"rmqr height", "Hello, rmqr!", M, coding.RMQR, Height, coding.R7x77},
		{"rmqr high", "Hello, rmqr!", H, coding.RMQR, Area, coding.R13x43},
		{"rmqr digits", "01234567890123456789", M, coding.RMQR, Area, coding.R13x27},
		{"rmqr digits height", "01234567890123456789", H, coding.RMQR, Height, coding.R7x77},
		{"rmqr empty", "", M, coding.RMQR, Area, coding.R11x27},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v, segs, err := Split(String{Text: tt.text}, tt.level, tt.kind, tt.strategy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			n := 0
			for _, s := range segs {
				n += s.EncodedLength(v)
			}
			assert.LessOrEqual(t, n, v.DataBits(tt.level))
			_, err = coding.Encode(v, tt.level, segs...)
			assert.NoError(t, err)
		})
	}
}

func TestSelectErrors(t *testing.T) {
	s := String{Text: "12345"}
	for _, l := range []coding.Level{L, Q, -1, 4} {
		_, _, err := Split(s, l, coding.RMQR, Area)
		assert.ErrorIs(t, err, coding.ErrLevel, "%v", l)
	}
	_, _, err := Split(s, H, coding.Micro, Area)
	assert.ErrorIs(t, err, coding.ErrLevel)
	_, _, err = Split(s, M, coding.RMQR, Strategy(5))
	assert.ErrorIs(t, err, ErrStrategy)
	_, _, err = Split(s, M, coding.Kind(7), Area)
	assert.ErrorIs(t, err, coding.ErrVersion)

	var le *coding.LengthError
	_, _, err = Split(String{Text: strings.Repeat("7", 8000)}, L, coding.Standard, Area)
	assert.ErrorIs(t, err, coding.ErrTooLong)
	require.True(t, errors.As(err, &le))
	assert.Equal(t, coding.MaxVersion, le.Version)

	_, _, err = Split(String{Text: strings.Repeat("7", 400)}, M, coding.RMQR, Width)
	assert.ErrorIs(t, err, coding.ErrTooLong)
	require.True(t, errors.As(err, &le))
	assert.Equal(t, coding.R17x139, le.Version)
	assert.Equal(t, 1216, le.Max)

	_, _, err = Split(String{Text: "Hello, wonderful world"}, L, coding.Micro, Area)
	assert.ErrorIs(t, err, coding.ErrTooLong)
}

func TestFit(t *testing.T) {
	sp, err := NewSplitter(String{Text: "12345"})
	require.NoError(t, err)
	segs, err := Fit(sp, coding.M1, L)
	require.NoError(t, err)
	assert.Equal(t, []coding.Segment{{Text: "12345", Mode: coding.Numeric}}, segs)

	sp, err = NewSplitter(String{Text: "123456"})
	require.NoError(t, err)
	_, err = Fit(sp, coding.M1, L)
	assert.ErrorIs(t, err, coding.ErrTooLong)
	_, err = Fit(sp, coding.M1, M)
	assert.ErrorIs(t, err, coding.ErrLevel)
	_, err = Fit(sp, 41+100, M)
	assert.ErrorIs(t, err, coding.ErrVersion)
}

func TestStrategy(t *testing.T) {
	assert.Equal(t, []coding.Version{
		coding.R11x27, coding.R7x43, coding.R13x27, coding.R9x43,
	}, Area.Versions()[:4])
	assert.Equal(t, []coding.Version{
		coding.R11x27, coding.R13x27, coding.R7x43, coding.R9x43,
	}, Width.Versions()[:4])
	assert.Equal(t, []coding.Version{
		coding.R7x43, coding.R7x59, coding.R7x77, coding.R7x99,
	}, Height.Versions()[:4])
	for _, s := range []Strategy{Area, Width, Height} {
		assert.Len(t, s.Versions(), 32)
		p, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, p)
	}
	assert.Nil(t, Strategy(3).Versions())
	_, err := ParseStrategy("diagonal")
	assert.ErrorIs(t, err, ErrStrategy)
	assert.Equal(t, "strategy(3)", Strategy(3).String())
}
