// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// jis0208qr has one bit per character of the Basic Multilingual
// Plane, with bits set for characters encodable in kanji mode.
var jis0208qr struct {
	once sync.Once
	tab  []uint32
}

// IsKanji reports whether the Unicode rune r maps to a Shift JIS
// character encodable in kanji mode.
func IsKanji(r rune) bool {
	jis0208qr.once.Do(initKanji)
	x := uint32(r) >> 5
	return int(x) < len(jis0208qr.tab) && jis0208qr.tab[x]>>(r&0x1f)&1 != 0
}

// initKanji decodes every kanji mode byte pair and keeps those that
// survive a round trip through Shift JIS.
func initKanji() {
	tab := make([]uint32, 0x10000>>5)
	dec := japanese.ShiftJIS.NewDecoder()
	enc := japanese.ShiftJIS.NewEncoder()
	for hi := 0x81; hi <= 0xeb; hi++ {
		if hi == 0xa0 {
			hi = 0xe0
		}
		for lo := 0x40; lo <= 0xfc; lo++ {
			pair := []byte{byte(hi), byte(lo)}
			if !IsShiftJISKanji(pair[0], pair[1]) {
				continue
			}
			u, err := dec.Bytes(pair)
			if err != nil {
				continue
			}
			r, n := utf8.DecodeRune(u)
			if n != len(u) || r == utf8.RuneError || r >= 0x10000 {
				continue
			}
			if back, err := enc.Bytes(u); err != nil ||
				!bytes.Equal(back, pair) {
				continue
			}
			tab[r>>5] |= 1 << (r & 0x1f)
		}
	}
	jis0208qr.tab = tab
}
