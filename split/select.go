// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/unixdj/rmqr/coding"
)

// A Strategy orders rMQR versions for selection.
type Strategy int

const (
	Area   Strategy = iota // smallest area, then width, then height
	Width                  // narrowest, then lowest, then smallest area
	Height                 // lowest, then narrowest, then smallest area
)

var strategyNames = [...]string{"area", "width", "height"}

func (s Strategy) String() string {
	if Area <= s && s <= Height {
		return strategyNames[s]
	}
	return "strategy(" + strconv.Itoa(int(s)) + ")"
}

// ParseStrategy parses a strategy name as returned by String.
func ParseStrategy(name string) (Strategy, error) {
	if i := slices.Index(strategyNames[:], name); i >= 0 {
		return Strategy(i), nil
	}
	return 0, ErrStrategy
}

func (s Strategy) key(v coding.Version) [3]int {
	w, h := v.Width(), v.Height()
	switch s {
	case Width:
		return [3]int{w, h, w * h}
	case Height:
		return [3]int{h, w, w * h}
	}
	return [3]int{w * h, w, h}
}

// rmqrOrder lists rMQR versions in the order of each Strategy.
var rmqrOrder [len(strategyNames)][]coding.Version

func init() {
	for s := range rmqrOrder {
		vs := make([]coding.Version, 0, coding.MaxRMQR-coding.MinRMQR+1)
		for v := coding.MinRMQR; v <= coding.MaxRMQR; v++ {
			vs = append(vs, v)
		}
		st := Strategy(s)
		slices.SortStableFunc(vs, func(a, b coding.Version) int {
			ka, kb := st.key(a), st.key(b)
			for i := range ka {
				if c := cmp.Compare(ka[i], kb[i]); c != 0 {
					return c
				}
			}
			return 0
		})
		rmqrOrder[s] = vs
	}
}

// Versions returns the rMQR versions in the order tried by Select,
// or nil if s is invalid.
func (s Strategy) Versions() []coding.Version {
	if s < Area || s > Height {
		return nil
	}
	return slices.Clone(rmqrOrder[s])
}

// QR version size classes.  Versions within a class share character
// count field lengths.
var sizeClass = [3]struct{ min, max coding.Version }{
	{1, 9}, {10, 26}, {27, 40},
}

/*
Select returns the smallest version of the given kind for the text
of sp at the given error correction level, and the segments for it.

QR codes are split for each size class until the data fits, and the
version is then binary searched within the class.  Micro QR versions
are tried in order, skipping those not supporting the level.  rMQR
codes support levels M and H; versions are tried in the order of the
strategy.

If no version fits, Select returns a *coding.LengthError.
*/
func Select(sp *Splitter, level coding.Level, kind coding.Kind, strategy Strategy) (coding.Version, []coding.Segment, error) {
	if level < L || level > H {
		return 0, nil, coding.ErrLevel
	}
	switch kind {
	case coding.Standard:
		return selectQR(sp, level)
	case coding.Micro:
		return selectList(sp, level, []coding.Version{
			coding.M1, coding.M2, coding.M3, coding.M4,
		})
	case coding.RMQR:
		if level != M && level != H {
			return 0, nil, coding.ErrLevel
		}
		if strategy < Area || strategy > Height {
			return 0, nil, ErrStrategy
		}
		return selectList(sp, level, rmqrOrder[strategy])
	}
	return 0, nil, coding.ErrVersion
}

func selectQR(sp *Splitter, level coding.Level) (coding.Version, []coding.Segment, error) {
	// Split data into segments for the size class.
	class := 0
	segs, bits := sp.Split(sizeClass[class].min)
	// If data is too big for the size class, increment class
	// and resplit.  bits will change, hence the loop.
	for sizeClass[class].max.DataBits(level) < bits {
		if class++; class == len(sizeClass) {
			return 0, nil, &coding.LengthError{
				Bits:    bits,
				Max:     coding.MaxVersion.DataBits(level),
				Version: coding.MaxVersion,
			}
		}
		segs, bits = sp.Split(sizeClass[class].min)
	}

	// Find version in the size class.
	v := sizeClass[class].min
	for max := sizeClass[class].max; v < max; {
		if mid := (v + max) / 2; mid.DataBits(level) < bits {
			v = mid + 1
		} else {
			max = mid
		}
	}
	return v, segs, nil
}

// selectList returns the first version in list fitting the text.
func selectList(sp *Splitter, level coding.Level, list []coding.Version) (coding.Version, []coding.Segment, error) {
	var err error = coding.ErrLevel
	for _, v := range list {
		if v.Check(level) != nil {
			continue
		}
		segs, bits := sp.Split(v)
		if n := v.DataBits(level); bits <= n {
			return v, segs, nil
		} else if le, ok := err.(*coding.LengthError); !ok || n > le.Max {
			err = &coding.LengthError{Bits: bits, Max: n, Version: v}
		}
	}
	return 0, nil, err
}

// Fit returns the segments for the text of sp in version v at the
// given error correction level.
func Fit(sp *Splitter, v coding.Version, level coding.Level) ([]coding.Segment, error) {
	if err := v.Check(level); err != nil {
		return nil, err
	}
	segs, bits := sp.Split(v)
	if n := v.DataBits(level); bits > n {
		return nil, &coding.LengthError{Bits: bits, Max: n, Version: v}
	}
	return segs, nil
}

// Split is a wrapper around NewSplitter and Select.
func Split(data String, level coding.Level, kind coding.Kind, strategy Strategy) (coding.Version, []coding.Segment, error) {
	sp, err := NewSplitter(data)
	if err != nil {
		return 0, nil, err
	}
	return Select(sp, level, kind, strategy)
}
