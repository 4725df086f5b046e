// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rmqr encodes QR, Micro QR and rMQR (rectangular Micro QR)
codes.

Text is split into numeric, alphanumeric, byte and kanji segments so
that the encoded length is minimal, the smallest version holding the
segments is chosen, and the code is masked with the pattern giving
the lowest penalty.  The resulting Code renders itself as an image,
PNG, SVG, PBM or text.
*/
package rmqr // import "github.com/unixdj/rmqr"

import (
	"context"
	"errors"
	"log/slog"

	"github.com/unixdj/rmqr/coding"
	"github.com/unixdj/rmqr/split"
)

type (
	Kind     = coding.Kind
	Level    = coding.Level
	Version  = coding.Version
	Strategy = split.Strategy
	Charset  = split.Charset
)

// Symbol families.
const (
	Standard = coding.Standard
	Micro    = coding.Micro
	RMQR     = coding.RMQR
)

// Error correction levels.
// From least to most tolerant of errors, they are L, M, Q, H.
const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// rMQR version selection strategies.
const (
	Area   = split.Area
	Width  = split.Width
	Height = split.Height
)

// Byte mode character sets.
const (
	UTF8     = split.UTF8
	Latin1   = split.Latin1
	ShiftJIS = split.ShiftJIS
)

var (
	// ErrInvalidCharacter is returned for text containing
	// characters that cannot be encoded.  The error is a
	// *split.CharError.
	ErrInvalidCharacter = split.ErrNotEncodable

	// ErrDataTooLong is returned for text not fitting into any
	// allowed version.  The error is a *coding.LengthError.
	ErrDataTooLong = coding.ErrTooLong

	// ErrUnsupported is returned for invalid or incompatible
	// kinds, levels, versions, strategies and charsets.  The error
	// is an *UnsupportedError.
	ErrUnsupported = errors.New("qr: unsupported configuration")

	ErrArgs       = errors.New("qr: invalid arguments")
	ErrLargeImage = errors.New("qr: image too large")
)

// UnsupportedError reports an unsupported combination of code
// parameters.
type UnsupportedError struct {
	Err error
}

func (e *UnsupportedError) Error() string        { return e.Err.Error() }
func (e *UnsupportedError) Unwrap() error        { return e.Err }
func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

func wrapError(err error) error {
	var ce coding.CompatError
	switch {
	case errors.Is(err, coding.ErrLevel),
		errors.Is(err, coding.ErrVersion),
		errors.Is(err, split.ErrStrategy),
		errors.Is(err, split.ErrCharset),
		errors.As(err, &ce):
		return &UnsupportedError{err}
	}
	return err
}

// Options control encoding.  The zero value encodes a QR code at
// level L choosing the smallest version.
type Options struct {
	Kind     Kind     // symbol family
	Level    Level    // error correction level; rMQR needs M or H
	Strategy Strategy // rMQR version order
	Version  Version  // if non-zero, the version to use; Kind is ignored
	Charset  Charset  // byte mode character set
	Kanji    bool     // enable kanji mode

	// Parallel enables evaluating mask patterns concurrently.
	Parallel bool

	// Logger, if set, receives debug records on version selection,
	// segments and masks.
	Logger *slog.Logger
}

// Encode returns an encoding of text according to opts.  A nil opts
// is equivalent to a pointer to a zero Options.
func Encode(text string, opts *Options) (*Code, error) {
	if opts == nil {
		opts = new(Options)
	}
	sp, err := split.NewSplitter(split.String{
		Text:    text,
		Charset: opts.Charset,
		Kanji:   opts.Kanji,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	v := opts.Version
	var segs []coding.Segment
	if v == 0 {
		v, segs, err = split.Select(sp, opts.Level, opts.Kind, opts.Strategy)
	} else {
		segs, err = split.Fit(sp, v, opts.Level)
	}
	if err != nil {
		return nil, wrapError(err)
	}
	if l := opts.Logger; l != nil && l.Enabled(context.Background(), slog.LevelDebug) {
		bits := 0
		for _, s := range segs {
			bits += s.EncodedLength(v)
		}
		l.Debug("version", "version", v.String(), "ecl", opts.Level.String(),
			"bits", bits, "capacity", v.DataBits(opts.Level),
			"segments", len(segs))
		for _, s := range segs {
			l.Debug("segment", "mode", s.Mode.String(), "bytes", len(s.Text),
				"bits", s.EncodedLength(v))
		}
	}

	e, err := coding.NewEncoder(v, opts.Level)
	if err != nil {
		return nil, wrapError(err)
	}
	e.Parallel, e.Logger = opts.Parallel, opts.Logger
	cc, err := e.Encode(segs...)
	if err != nil {
		return nil, wrapError(err)
	}
	return newCode(cc), nil
}

// EncodeStandard returns a QR code for text at level M.
func EncodeStandard(text string) (*Code, error) {
	return EncodeStandardWithOptions(text, M)
}

// EncodeStandardWithOptions returns a QR code for text at the given
// level.
func EncodeStandardWithOptions(text string, level Level) (*Code, error) {
	return Encode(text, &Options{Level: level})
}

// EncodeRMQR returns an rMQR code for text at level M, choosing the
// version with the smallest area.
func EncodeRMQR(text string) (*Code, error) {
	return EncodeRMQRWithOptions(text, M, Area)
}

// EncodeRMQRWithOptions returns an rMQR code for text at the given
// level, which must be M or H, choosing the first version in the
// order of strategy that holds the text.
func EncodeRMQRWithOptions(text string, level Level, strategy Strategy) (*Code, error) {
	return Encode(text, &Options{
		Kind:     RMQR,
		Level:    level,
		Strategy: strategy,
	})
}

// EncodeMicro returns a Micro QR code for text at the given level.
func EncodeMicro(text string, level Level) (*Code, error) {
	return Encode(text, &Options{Kind: Micro, Level: level})
}
