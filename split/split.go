// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments and selects the
smallest code version for them.
*/
package split // import "github.com/unixdj/rmqr/split"

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"

	"github.com/unixdj/rmqr/coding"
)

// QR error correction levels.
const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

var (
	ErrNotEncodable = errors.New("qr: text not encodable in given modes")
	ErrCharset      = errors.New("qr: invalid charset")
	ErrStrategy     = errors.New("qr: invalid strategy")
)

// CharError reports a character not encodable in any enabled mode.
type CharError struct {
	Offset int  // byte offset in the text
	Rune   rune // utf8.RuneError for invalid UTF-8
}

func (e *CharError) Error() string {
	return fmt.Sprintf("qr: character %U at offset %d not encodable",
		e.Rune, e.Offset)
}

func (e *CharError) Unwrap() error { return ErrNotEncodable }

// A Charset determines the encoding of byte mode segments.
type Charset int

const (
	UTF8     Charset = iota // UTF-8 as is
	Latin1                  // ISO 8859-1, characters up to U+00FF
	ShiftJIS                // Shift JIS
)

func (c Charset) String() string {
	switch c {
	case UTF8:
		return "utf-8"
	case Latin1:
		return "latin1"
	case ShiftJIS:
		return "shift_jis"
	}
	return fmt.Sprintf("charset(%d)", int(c))
}

// encoder returns the encoder for byte mode segments, or nil if the
// text is used as is.
func (c Charset) encoder() *encoding.Encoder {
	switch c {
	case Latin1:
		return charmap.ISO8859_1.NewEncoder()
	case ShiftJIS:
		return japanese.ShiftJIS.NewEncoder()
	}
	return nil
}

// String describes a UTF-8 string to encode.
//
// Text is split into numeric, alphanumeric, byte and, if Kanji is set,
// kanji mode segments to minimise the encoded length.  Byte mode
// segments are encoded in Charset.  Kanji mode accepts characters
// mapping to Shift JIS byte pairs 0x8140-0x9ffc and 0xe040-0xebbf.
type String struct {
	Text    string
	Charset Charset
	Kanji   bool
}

/*
Splitter and its component types.

NewSplitter determines modes in which each rune in the string is
encodable and creates a slice of spans, each span describing a
substring of runes encodable in the same modes.  To avoid multiple
allocations, the span structure contains an array of segments for the
modes.

Splitter.Split creates a linked list of segments representing an
optimal split of the data for a given version.  A segment contains its
mode, lengths of its text, total encoded length in bits of the string
from this segment to the end, and a link to the next segment.

The split is calculated by walking the spans backwards.  For each span
n, for each mode m, a segment (n,m) is created representing an optimal
split for the string from segment n to the end, starting with mode m.

The segment (n,m) is created thusly.  For each mode mm in which span
n+1 is encodable, a segment (n,m,mm) linking to (n+1,mm) is created.
If m=mm, the segments are merged.  The encoded length is calculated,
and the total encoded length of the next segment is added to it.  Of
these segments, the one with the smallest total encoded length is
chosen as (n,m).

When the beginning of the span slice is reached, a segment (0,m) with
the smallest total encoded length for any m describes an optimal split
for the whole string.
*/
type (
	// segment describes a segment encoded in a certain mode.
	segment struct {
		mode    coding.Mode // encoding mode
		segdata             // lengths and pointer to next
	}

	// segdata is the mutable portion of segment.
	segdata struct {
		next *segment // link to next segment in the chain
		len  int      // length of string in bytes
		rlen int      // length of string in Unicode code points
		blen int      // length of string in byte mode
		bits int      // encoded size of all segments in the chain
	}

	// span describes a span of bytes encodable in the same modes.
	span struct {
		len  int        // length of string in bytes
		rlen int        // length of string in Unicode code points
		blen int        // length of string in byte mode
		seg  [4]segment // segments
	}
)

// A Splitter calculates optimal splits of a String.
// A Splitter must not be used concurrently.
type Splitter struct {
	s   string
	cs  Charset
	sp  []span
	enc *encoding.Encoder
}

// modes
const (
	numMode   = 1 << coding.Numeric
	alphaMode = 1 << coding.Alphanumeric
	byteMode  = 1 << coding.Byte
	kanjiMode = 1 << coding.Kanji
)

// chartbl bits: HKL00ban
//
//	H  0x80  high byte
//	K  0x40  first byte of Kanji (maybe)       check kanji
//	L  0x20  first byte of Latin-1             Latin1: byte mode
//	b  0x04  byte mode
//	a  0x02  alphanumeric mode
//	n  0x01  numeric mode
//
// The K bit is set on 15 bytes that may begin a UTF-8 character
// encodable in Kanji mode.  The L bit is set on c2 and c3, initial
// bytes for 0x80-0xbf and 0xc0-0xff.
const (
	latin1Bit = 1 << (iota + 5)
	kanjiBit
	highBit

	by = byteMode       // ASCII byte
	al = by | alphaMode // alphanumeric
	nu = al | numMode   // numeric
	hi = highBit        // high
	ka = hi | kanjiBit  // kanji
	l1 = ka | latin1Bit // latin1 + kanji
)

var chartbl = [256]byte{
	by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, // 0x00
	by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, // 0x10
	al, by, by, by, al, al, by, by, by, by, al, al, by, al, by, al, // 0x20
	nu, nu, nu, nu, nu, nu, nu, nu, nu, nu, al, by, by, by, by, by, // 0x30
	by, al, al, al, al, al, al, al, al, al, al, al, al, al, al, al, // 0x40
	al, al, al, al, al, al, al, al, al, al, al, by, by, by, by, by, // 0x50
	by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, // 0x60
	by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, // 0x70
	hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, // 0x80
	hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, // 0x90
	hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, // 0xa0
	hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, // 0xb0
	hi, hi, l1, l1, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, ka, ka, // 0xc0
	ka, ka, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, // 0xd0
	hi, hi, ka, ka, ka, ka, ka, ka, ka, ka, hi, hi, hi, hi, hi, ka, // 0xe0
	hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, hi, // 0xf0
}

// classify returns a bit field of modes in which the first rune in s
// is encodable, its length in bytes and its length in byte mode.
func (sp *Splitter) classify(s string, kanji bool) (byte, int, int) {
	t := chartbl[s[0]]
	if t&highBit == 0 {
		return t, 1, 1
	}
	r, sz := utf8.DecodeRuneInString(s)
	var m byte
	var blen int
	switch sp.cs {
	case UTF8:
		m, blen = byteMode, sz
	case Latin1:
		if t&latin1Bit != 0 && sz == 2 {
			m, blen = byteMode, 1
		}
	case ShiftJIS:
		if sz > 1 {
			if b, err := sp.enc.String(s[:sz]); err == nil {
				m, blen = byteMode, len(b)
			}
		}
	}
	if kanji && t&kanjiBit != 0 && coding.IsKanji(r) {
		m |= kanjiMode
	}
	return m, sz, blen
}

// NewSplitter returns a Splitter calculating optimal splits for s.
// If s is not encodable, NewSplitter returns a *CharError.
func NewSplitter(s String) (*Splitter, error) {
	if s.Charset < UTF8 || s.Charset > ShiftJIS {
		return nil, ErrCharset
	}
	sp := &Splitter{s: s.Text, cs: s.Charset, enc: s.Charset.encoder()}

	// Scan the string, detect valid encoding modes for each
	// character and populate spans.
	var old byte
	for i, sz := 0, 0; i < len(s.Text); i += sz {
		var m byte
		var blen int
		if m, sz, blen = sp.classify(s.Text[i:], s.Kanji); m == 0 {
			r, _ := utf8.DecodeRuneInString(s.Text[i:])
			return nil, &CharError{Offset: i, Rune: r}
		}
		if m != old {
			sp.sp = append(sp.sp, span{})
			v := &sp.sp[len(sp.sp)-1]
			for j := range v.seg {
				v.seg[j].mode = -1
			}
			j := 0
			for mode := coding.Numeric; mode <= coding.Kanji; mode++ {
				if m&(1<<mode) != 0 {
					v.seg[j].mode = mode
					j++
				}
			}
			old = m
		}
		v := &sp.sp[len(sp.sp)-1]
		v.len += sz
		v.rlen++
		v.blen += blen
	}
	return sp, nil
}

const inf = 1 << 30 // excessive encoded length

// count returns the value of the character count field for d
// encoded in mode.
func (d *segdata) count(mode coding.Mode) int {
	if mode == coding.Byte {
		return d.blen
	}
	return d.rlen
}

func (d *segdata) setBits(mode coding.Mode, v coding.Version) {
	n, cl := d.count(mode), v.CountLength(mode)
	bits := mode.Length(n, v)
	if cl == 0 || n >= 1<<cl {
		bits = inf
	}
	if d.next != nil {
		bits += d.next.bits
	}
	d.bits = min(bits, inf)
}

// add adds v to the split before p, returning a pointer to the
// segment with the smallest encoded length.
func (v *span) add(p *span, ver coding.Version) *segment {
	best := &v.seg[0]
	for j := range v.seg {
		seg := &v.seg[j]
		if seg.mode < 0 {
			break
		}
		seg.bits = inf + 1
		// p.seg is an array, not a slice, so range works when p is nil
		for k := range p.seg {
			if k != 0 && p.seg[k].mode < 0 {
				break
			}
			c := segdata{len: v.len, rlen: v.rlen, blen: v.blen}
			bias := 0
			if p != nil {
				c.next = &p.seg[k]
				if seg.mode == c.next.mode {
					c.len += c.next.len
					c.rlen += c.next.rlen
					c.blen += c.next.blen
					c.next = c.next.next
					bias = 1 // prefer fewer segments
				}
			}
			c.setBits(seg.mode, ver)
			if c.bits-bias < seg.bits {
				seg.segdata = c
			}
			if p == nil {
				break
			}
		}
		if seg.bits < best.bits {
			best = seg
		}
	}
	return best
}

// Split returns an optimal split of the text for version v, already
// encoded for the segment modes, and its encoded length in bits.
// Modes not available in v are not used.  If the text can't be
// encoded in v, the length is at least 1<<30.
func (sp *Splitter) Split(v coding.Version) ([]coding.Segment, int) {
	// process spans in reverse order
	var head *segment
	var next *span
	for i := len(sp.sp) - 1; i >= 0; i-- {
		head = sp.sp[i].add(next, v)
		next = &sp.sp[i]
	}
	if head == nil {
		return nil, 0
	}
	if head.bits >= inf {
		return nil, inf
	}

	var n int
	for seg := head; seg != nil; seg = seg.next {
		n++
	}
	segs := make([]coding.Segment, 0, n)
	for seg, s := head, sp.s; seg != nil; seg = seg.next {
		segs = append(segs, coding.Segment{
			Text: sp.transform(s[:seg.len], seg.mode),
			Mode: seg.mode,
		})
		s = s[seg.len:]
	}
	return segs, head.bits
}

// transform converts the text of a segment to its encoding.
func (sp *Splitter) transform(s string, mode coding.Mode) string {
	var enc *encoding.Encoder
	switch mode {
	case coding.Kanji:
		enc = japanese.ShiftJIS.NewEncoder()
	case coding.Byte:
		if enc = sp.enc; enc == nil {
			return s
		}
	default:
		return s
	}
	t, err := enc.String(s)
	if err != nil {
		panic("qr: internal error")
	}
	return t
}

// Analyze returns segments for data in QR versions 1 to 9.
func Analyze(text string, charset Charset, kanji bool) ([]coding.Segment, error) {
	sp, err := NewSplitter(String{Text: text, Charset: charset, Kanji: kanji})
	if err != nil {
		return nil, err
	}
	segs, _ := sp.Split(coding.MinVersion)
	return segs, nil
}
