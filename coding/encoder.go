// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Encoder encodes a code.
type Encoder struct {
	// Parallel enables evaluating mask patterns concurrently.
	// The chosen mask does not depend on it.
	Parallel bool

	// Logger, if set, receives debug records for the mask
	// evaluation.
	Logger *slog.Logger

	p *Plan
	l Level
	b *Bits
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	if err := version.Check(level); err != nil {
		return nil, err
	}
	p, err := NewPlan(version)
	if err != nil {
		return nil, err
	}
	return &Encoder{p: p, l: level, b: NewBits(version, level)}, nil
}

// Write adds text to e.
func (e *Encoder) Write(text ...Segment) error {
	for _, t := range text {
		if err := t.Encode(e.b, e.p.Version); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) Reset() { e.b.Reset() }

// Bits returns the number of bits written to e.
func (e *Encoder) Bits() int { return e.b.Bits() }

// Code returns a code containing data written to e.
func (e *Encoder) Code() (*Code, error) {
	v, l := e.p.Version, e.l
	if n := v.DataBits(l); e.b.Bits() > n {
		return nil, &LengthError{Bits: e.b.Bits(), Max: n, Version: v}
	}
	e.b.AddCheckBytes(v, l)
	bits := e.b.Permute(v, l)
	// Now we have the checksum bytes and the data bytes.
	// Construct the grid with data and checksum bits.
	g := e.p.Grid.Clone()
	e.p.Serialise(bits, g)
	g.writeVersion(v)

	// Apply masks to the grid to construct the actual codes.
	// Choose the code with the smallest penalty.
	codes := make([]*Code, Masks(e.p.Kind))
	pens := make([]int, len(codes))
	try := func(mask int) {
		mg := g.Clone()
		mg.applyMask(e.p.Kind, mask)
		mg.writeFormat(v, l, mask)
		c := mg.code()
		c.Kind, c.Version, c.Level, c.Mask = e.p.Kind, v, l, mask
		codes[mask], pens[mask] = c, c.Penalty()
	}
	if e.Parallel && len(codes) > 1 {
		var eg errgroup.Group
		eg.SetLimit(runtime.GOMAXPROCS(0))
		for mask := range codes {
			eg.Go(func() error {
				try(mask)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for mask := range codes {
			try(mask)
		}
	}
	best := 0
	for mask, pen := range pens {
		if e.Logger != nil {
			e.Logger.Debug("mask", "version", v, "ecl", l,
				"mask", mask, "penalty", pen)
		}
		if pen < pens[best] {
			best = mask
		}
	}
	if e.Logger != nil {
		e.Logger.Debug("chosen mask", "version", v, "mask", best,
			"penalty", pens[best])
	}
	return codes[best], nil
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(text ...Segment) (*Code, error) {
	if err := e.Write(text...); err != nil {
		return nil, err
	}
	return e.Code()
}

// Encode encodes text using an Encoder with the given version and level.
func Encode(version Version, level Level, text ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(text...)
}
