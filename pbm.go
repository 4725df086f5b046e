// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmqr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  Modules are drawn as squares at c.Scale;
// c.Shape, c.Size and colours other than c.Reverse are disregarded,
// as other PNM formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	if w == nil || !c.isValid() || c.Scale <= 0 {
		return ErrArgs
	}
	s := *c
	s.Shape, s.Size = Square, 0
	width, height, err := s.bitmapSize()
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	if _, err := b.WriteString("P4\n" + strconv.Itoa(width) + " " +
		strconv.Itoa(height) + "\n"); err != nil {
		return err
	}
	var white byte
	if c.Reverse {
		white = 0xff
	}
	if err := s.rows(0, white, func(row []byte) error {
		_, err := b.Write(row)
		return err
	}); err != nil {
		return err
	}
	return b.Flush()
}
