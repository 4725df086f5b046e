// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/unixdj/rmqr/gf256"

// Bits is a bit buffer written MSB first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for a code of the
// given version and level.
func NewBits(v Version, l Level) *Bits {
	vt := &vtab[v]
	n := vt.bytes
	if 1 < vt.level[l].nblock {
		n <<= 1
	}
	return &Bits{b: make([]byte, 0, n)}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the buffer.  It panics unless a whole number of bytes
// has been written.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

func (b *Bits) growTo(n int) {
	if cap(b.b) < n {
		nb := make([]byte, len(b.b), n)
		copy(nb, b.b)
		b.b = nb
	}
}

// Add adds n bytes to b and returns the added slice.
func (b *Bits) Add(n int) []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	b.growTo(len(b.b) + n)
	start := len(b.b)
	b.b = b.b[:start+n]
	b.nbit = 8 * len(b.b)
	return b.b[start:]
}

// Write writes the low nbit bits of v, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit == 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// terminate writes as much of the terminator of v as fits into n
// bits, zero bits to a byte boundary and alternating pad codewords
// 0xec and 0x11 up to n bits.  When n ends with a half codeword, the
// half codeword is zero and b is padded to a whole byte.
func (b *Bits) terminate(v Version, n int) {
	b.Write(0, min(v.TerminatorLength(), n-b.nbit))
	b.Write(0, -b.nbit&7)
	for pad := byte(0xec); len(b.b)*8+8 <= n; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
	}
	if len(b.b)*8 < n {
		b.b = append(b.b, 0)
	}
	b.nbit = len(b.b) * 8
}

// AddCheckBytes adds terminator, padding and checksum to b for the
// given version and level.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	blocks, err := Blocks(v, l)
	nb := v.DataBits(l)
	if err != nil || b.nbit > nb {
		panic("qr: too much data")
	}
	b.growTo(v.Bytes())
	b.terminate(v, nb)

	dat := b.Bytes()
	rs := gf256.NewRSEncoder(Field, blocks[0].Check)
	for _, bl := range blocks {
		rs.ECC(dat[:bl.Data], b.Add(bl.Check))
		dat = dat[bl.Data:]
	}

	if len(b.Bytes()) != v.Bytes() {
		panic("qr: internal error")
	}
	if nb&4 != 0 {
		// Close the gap after the 4 bit data codeword.
		chk := b.b[nb>>3:]
		for i := range chk[:len(chk)-1] {
			chk[i] |= chk[i+1] >> 4
			chk[i+1] <<= 4
		}
	}
}

// interleave fills dst with codewords taken in turn from each of the
// blocks laid out back to back in src, n(bl) codewords per block.
func interleave(dst, src []byte, blocks []Block, n func(Block) int) {
	start := make([]int, len(blocks))
	for i, off := 0, 0; i < len(blocks); i++ {
		start[i] = off
		off += n(blocks[i])
	}
	k := 0
	for j := 0; k < len(dst); j++ {
		for i, bl := range blocks {
			if j < n(bl) {
				dst[k] = src[start[i]+j]
				k++
			}
		}
	}
}

// Permute returns a BitStream reading data and checksum bits in b
// with blocks interleaved for the given version and level.
// The BitStream may use the same underlying buffer.
func (b *Bits) Permute(v Version, l Level) BitStream {
	src := b.Bytes()
	blocks, err := Blocks(v, l)
	if err != nil || len(src) != v.Bytes() {
		panic("qr: wrong data length")
	}
	if len(blocks) == 1 {
		return NewBitStream(src)
	}
	var dst []byte
	if cap(src) < len(src)*2 {
		dst = make([]byte, len(src))
	} else {
		dst = src[len(src) : len(src)*2]
	}
	nd := v.dataBytes(l)
	interleave(dst[:nd], src[:nd], blocks, func(bl Block) int { return bl.Data })
	interleave(dst[nd:], src[nd:], blocks, func(bl Block) int { return bl.Check })
	return NewBitStream(dst)
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Next returns the next bit from s as 0 or 1.
// Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}
