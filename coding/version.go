// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR, Micro QR and rMQR coding
// details.
package coding // import "github.com/unixdj/rmqr/coding"

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/unixdj/rmqr/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrTooLong = errors.New("qr: text too long")
)

// LengthError reports data that does not fit into a code.
type LengthError struct {
	Bits    int     // encoded length
	Max     int     // capacity
	Version Version // zero if no version fits
}

func (e *LengthError) Error() string {
	if e.Version == 0 {
		return fmt.Sprintf("qr: cannot encode %d bits", e.Bits)
	}
	return fmt.Sprintf("qr: cannot encode %d bits into %d-bit code %s",
		e.Bits, e.Max, e.Version)
}

func (e *LengthError) Unwrap() error { return ErrTooLong }

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Kind is a symbol family.
type Kind int

const (
	Standard Kind = iota // QR, versions 1 to 40
	Micro                // Micro QR, versions M1 to M4
	RMQR                 // rectangular Micro QR, R7x43 to R17x139
)

func (k Kind) String() string {
	switch k {
	case Standard:
		return "qr"
	case Micro:
		return "micro"
	case RMQR:
		return "rmqr"
	}
	return strconv.Itoa(int(k))
}

// A Version represents a QR version.
// The version specifies the size of the code:
// a QR code with version v has 4v+17 pixels on a side,
// a Micro QR code with version Mv 2v+9 pixels,
// an rMQR code with version RHxW is H pixels high and W pixels wide.
// Versions run in three sequences, from 1 to 40, from M1 to M4 and
// from R7x43 to R17x139; within the first two, the larger the
// version, the more information the code can store.
type Version int

// Code versions.
const (
	// Micro QR versions
	M1 Version = MaxVersion + 1 + iota
	M2
	M3
	M4

	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

// rMQR versions, in version indicator order.
const (
	R7x43 Version = M4 + 1 + iota
	R7x59
	R7x77
	R7x99
	R7x139
	R9x43
	R9x59
	R9x77
	R9x99
	R9x139
	R11x27
	R11x43
	R11x59
	R11x77
	R11x99
	R11x139
	R13x27
	R13x43
	R13x59
	R13x77
	R13x99
	R13x139
	R15x43
	R15x59
	R15x77
	R15x99
	R15x139
	R17x43
	R17x59
	R17x77
	R17x99
	R17x139

	MinRMQR = R7x43
	MaxRMQR = R17x139
)

// Valid reports whether v is a known version.
func (v Version) Valid() bool { return MinVersion <= v && v <= MaxRMQR }

// Kind returns the symbol family of v.
func (v Version) Kind() Kind {
	switch {
	case v >= MinRMQR:
		return RMQR
	case v >= M1:
		return Micro
	}
	return Standard
}

func (v Version) String() string {
	switch {
	case !v.Valid():
		return "version(" + strconv.Itoa(int(v)) + ")"
	case v >= MinRMQR:
		return fmt.Sprintf("R%dx%d", vtab[v].height, vtab[v].width)
	case v >= M1:
		return []string{"M1", "M2", "M3", "M4"}[v-M1]
	}
	return strconv.Itoa(int(v))
}

// ParseVersion parses a version name as returned by String.
func ParseVersion(s string) (Version, error) {
	for v := MinVersion; v <= MaxRMQR; v++ {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, ErrVersion
}

// Width returns the number of pixels in a row, or 0 if v is invalid.
func (v Version) Width() int {
	if !v.Valid() {
		return 0
	}
	return vtab[v].width
}

// Height returns the number of pixels in a column, or 0 if v is
// invalid.
func (v Version) Height() int {
	if !v.Valid() {
		return 0
	}
	return vtab[v].height
}

// Index returns the number encoded in the version indicator:
// the version number for QR, 0 to 3 for Micro QR and 0 to 31 for rMQR.
func (v Version) Index() int {
	switch v.Kind() {
	case RMQR:
		return int(v - MinRMQR)
	case Micro:
		return int(v - M1)
	}
	return int(v)
}

// Bytes returns the total number of codewords in v.
func (v Version) Bytes() int {
	if !v.Valid() {
		return 0
	}
	return vtab[v].bytes
}

// Check returns nil if l is supported at version v, ErrVersion if v
// is invalid and ErrLevel if l is not supported.
func (v Version) Check(l Level) error {
	if !v.Valid() {
		return ErrVersion
	}
	if l < L || l > H || vtab[v].level[l].nblock == 0 {
		return ErrLevel
	}
	return nil
}

// Levels returns the error correction levels supported at v.
func (v Version) Levels() []Level {
	var ls []Level
	for l := L; l <= H; l++ {
		if v.Check(l) == nil {
			ls = append(ls, l)
		}
	}
	return ls
}

// dataBytes returns the number of data bytes that can be
// stored in a code with the given version and level.
func (v Version) dataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a code with the given version and level,
// or 0 if the combination is not supported.
func (v Version) DataBits(l Level) int {
	if v.Check(l) != nil {
		return 0
	}
	n := v.dataBytes(l) * 8
	if v == M1 || v == M3 {
		n -= 4 // last data codeword is 4 bits long
	}
	return n
}

// CountLength returns the length of the character count field of
// mode at v, or 0 if mode is not available at v.
func (v Version) CountLength(mode Mode) int {
	if !v.Valid() || mode < Numeric || mode > Kanji {
		return 0
	}
	return int(vtab[v].count[mode])
}

// IndicatorLength returns the length of the mode indicator at v.
func (v Version) IndicatorLength() int {
	switch v.Kind() {
	case RMQR:
		return 3
	case Micro:
		return int(v - M1)
	}
	return 4
}

// TerminatorLength returns the length of the terminator at v.
func (v Version) TerminatorLength() int {
	switch v.Kind() {
	case RMQR:
		return 3
	case Micro:
		return int(v-M1)*2 + 3
	}
	return 4
}

// qrClass returns the character count size class of a QR version.
func qrClass(v Version) int {
	switch {
	case v <= 9:
		return 0
	case v <= 26:
		return 1
	}
	return 2
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// A version describes metadata associated with a version.
type version struct {
	width, height int
	bytes         int      // total codewords
	align         []int    // alignment pattern centres
	level         [4]level // zero if not supported
	count         [4]byte  // character count field lengths
}

type level struct {
	nblock int
	check  int
}

// A Block describes one error correction block.
type Block struct {
	Data  int // data codewords
	Check int // error correction codewords
}

// Blocks returns the error correction blocks for the given version
// and level, shorter blocks first.
func Blocks(v Version, l Level) ([]Block, error) {
	if err := v.Check(l); err != nil {
		return nil, err
	}
	lev := vtab[v].level[l]
	nd := v.dataBytes(l)
	db := nd / lev.nblock
	normal := (db+1)*lev.nblock - nd
	bs := make([]Block, lev.nblock)
	for i := range bs {
		if i == normal {
			db++
		}
		bs[i] = Block{db, lev.check}
	}
	return bs, nil
}
