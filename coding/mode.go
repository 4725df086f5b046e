// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
)

// A Mode is a segment encoding mode.
type Mode int8

// Encoding modes.
const (
	Numeric      Mode = iota // digits 0-9
	Alphanumeric             // 0-9, A-Z, space and $%*+-./:
	Byte                     // any data
	Kanji                    // Shift JIS double byte characters
)

var modeNames = [...]string{"numeric", "alphanumeric", "byte", "kanji"}

func (mode Mode) String() string {
	if Numeric <= mode && mode <= Kanji {
		return modeNames[mode]
	}
	return strconv.Itoa(int(mode))
}

// Indicator returns the mode indicator of mode at version v.
func (mode Mode) Indicator(v Version) uint32 {
	switch v.Kind() {
	case RMQR:
		return uint32(mode) + 1
	case Micro:
		return uint32(mode)
	}
	return 1 << mode
}

// Available reports whether mode can be used at version v.
func (mode Mode) Available(v Version) bool {
	return v.CountLength(mode) != 0
}

// PayloadLength returns the length in bits of n characters encoded
// in mode, excluding the header.  A kanji character is a Shift JIS
// byte pair.
func (mode Mode) PayloadLength(n int) int {
	switch mode {
	case Numeric:
		return (10*n + 2) / 3
	case Alphanumeric:
		return (11*n + 1) / 2
	case Kanji:
		return 13 * n
	}
	return 8 * n
}

// Length returns the length in bits of n characters encoded in mode
// at version v, including the header.  Length returns 0 if the mode
// is not available at v.
func (mode Mode) Length(n int, v Version) int {
	cl := v.CountLength(mode)
	if cl == 0 {
		return 0
	}
	return v.IndicatorLength() + cl + mode.PayloadLength(n)
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsNumeric reports whether r is encodable in numeric mode.
func IsNumeric(r rune) bool { return uint32(r-'0') < 10 }

// IsAlphanumeric reports whether r is encodable in alphanumeric mode.
func IsAlphanumeric(r rune) bool {
	return uint32(r)-' ' < 64 && alphamask>>(uint32(r)-' ')&1 != 0
}

// IsShiftJISKanji reports whether the Shift JIS byte pair hi, lo is
// encodable in kanji mode.
func IsShiftJISKanji(hi, lo byte) bool {
	c := uint16(hi)<<8 | uint16(lo)
	return (0x8140 <= c && c <= 0x9ffc || 0xe040 <= c && c <= 0xebbf) &&
		0x40 <= lo && lo <= 0xfc && lo != 0x7f
}

// A Segment describes a QR code segment.
type Segment struct {
	Text string // data to encode; Shift JIS for Kanji
	Mode Mode   // encoding mode
}

// SegmentError represents an invalid Segment.
type SegmentError Segment

func (e SegmentError) Error() string {
	if e.Mode < Numeric || e.Mode > Kanji {
		return fmt.Sprintf("qr: invalid mode %d", int(e.Mode))
	}
	return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
}

// CompatError represents an incompatibility between Mode and Version.
type CompatError struct {
	Mode
	Version
}

func (e CompatError) Error() string {
	return fmt.Sprintf("qr: mode %s not encodable in version %s",
		e.Mode, e.Version)
}

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	s := seg.Text
	switch seg.Mode {
	case Numeric:
		for i := 0; i < len(s); i++ {
			if !IsNumeric(rune(s[i])) {
				return false
			}
		}
	case Alphanumeric:
		for i := 0; i < len(s); i++ {
			if !IsAlphanumeric(rune(s[i])) {
				return false
			}
		}
	case Byte:
	case Kanji:
		if len(s)&1 != 0 {
			return false
		}
		for i := 0; i < len(s); i += 2 {
			if !IsShiftJISKanji(s[i], s[i+1]) {
				return false
			}
		}
	default:
		return false
	}
	return true
}

// Count returns the value of the character count field for seg.
func (seg Segment) Count() int {
	if seg.Mode == Kanji {
		return len(seg.Text) >> 1
	}
	return len(seg.Text)
}

// EncodedLength returns the encoded length in bits of seg at version
// v, including the header.  EncodedLength returns 0 if the mode is not
// available at v.  The segment is not validated.
func (seg Segment) EncodedLength(v Version) int {
	return seg.Mode.Length(seg.Count(), v)
}

// Encode writes seg encoded for version v to b.
func (seg Segment) Encode(b *Bits, v Version) error {
	if !seg.IsValid() {
		return SegmentError(seg)
	}
	cl := v.CountLength(seg.Mode)
	if cl == 0 {
		return CompatError{seg.Mode, v}
	}
	n := seg.Count()
	if n >= 1<<cl {
		return &LengthError{Bits: seg.EncodedLength(v)}
	}
	// write header
	b.Write(seg.Mode.Indicator(v), v.IndicatorLength())
	b.Write(uint32(n), cl)
	// encode the string
	s := seg.Text
	switch seg.Mode {
	case Numeric:
		for ; len(s) >= 3; s = s[3:] {
			b.Write(uint32(s[0])*100+uint32(s[1])*10+
				uint32(s[2])+-'0'*111&0x3ff, 10)
		}
		switch len(s) {
		case 2:
			b.Write(uint32(s[0])*10+uint32(s[1])-'0'*11&0x7f, 7)
		case 1:
			b.Write(uint32(s[0]-'0'), 4)
		}
	case Alphanumeric:
		for ; len(s) >= 2; s = s[2:] {
			b.Write(uint32(alpha[s[0]&0x3f])*45+
				uint32(alpha[s[1]&0x3f]), 11)
		}
		if len(s) == 1 {
			b.Write(uint32(alpha[s[0]&0x3f]), 6)
		}
	case Byte:
		if b.nbit&7 != 0 {
			for i := 0; i < len(s); i++ {
				b.Write(uint32(s[i]), 8)
			}
		} else {
			b.b = append(b.b, s...)
			b.nbit += len(s) * 8
		}
	case Kanji:
		for ; len(s) >= 2; s = s[2:] {
			b.Write(uint32(s[0]&^0xc0)*0xc0+uint32(s[1])-0x100, 13)
		}
	}
	return nil
}
