// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split_test

import (
	"fmt"
	"log"

	"golang.org/x/text/encoding/japanese"

	"github.com/unixdj/rmqr/coding"
	"github.com/unixdj/rmqr/split"
)

func ExampleSplit() {
	v, seg, err := split.Split(split.String{Text: "ABC123456789012"},
		split.M, coding.RMQR, split.Area)
	if err != nil {
		log.Fatalln(err)
	}
	bits := 0
	for _, s := range seg {
		bits += s.EncodedLength(v)
	}
	fmt.Printf("version %v, %d of %d bits:\n", v, bits, v.DataBits(split.M))
	for _, s := range seg {
		fmt.Printf("  %-12s %q\n", s.Mode, s.Text)
	}
	// Output:
	// version R13x27, 73 of 96 bits:
	//   alphanumeric "ABC"
	//   numeric      "123456789012"
}

func ExampleSplitter_Split() {
	sp, err := split.NewSplitter(split.String{
		Text:  "単価 120円",
		Kanji: true,
	})
	if err != nil {
		log.Fatalln(err)
	}
	dec := japanese.ShiftJIS.NewDecoder()
	for _, v := range []coding.Version{1, coding.M4} {
		seg, bits := sp.Split(v)
		fmt.Printf("version %v, %d bits:\n", v, bits)
		for _, s := range seg {
			t := s.Text
			if s.Mode == coding.Kanji {
				// Convert the string to UTF-8 for printing
				if t, err = dec.String(t); err != nil {
					log.Fatalln(err)
				}
			}
			fmt.Printf("  %-12s %q\n", s.Mode, t)
		}
	}
	// Output:
	// version 1, 98 bits:
	//   kanji        "単価"
	//   alphanumeric " 120"
	//   kanji        "円"
	// version M4, 83 bits:
	//   kanji        "単価"
	//   alphanumeric " 120"
	//   kanji        "円"
}
