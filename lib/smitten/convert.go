//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package smitten

import (
	"math"

	"git.sr.ht/~vejnar/Smitten/lib/cmapper"
)

// Convert detects the grammar of s and returns it rewritten in the V2
// grammar together with the detected Format. Identifiers without any
// range are returned unchanged with FormatUndefined.
//
// Ranges are peeled from the right. The first one fixes the grammar of the
// chain; peeling stops at the first range written in another grammar, which
// is then part of the sequence identifier. With zeroBasedHalfOpen, every
// start coordinate is incremented.
func Convert(s string, zeroBasedHalfOpen bool) (string, Format, error) {
	const op = "convert"
	if err := checkChars(op, s); err != nil {
		return "", FormatUndefined, err
	}

	var chain Format
	var peeled []Range // innermost first
	rest := s
	for {
		prefix, sx, ok, err := peel(rest, false)
		if err != nil {
			return "", FormatUndefined, newError(ErrMalformedInput, op, s, "%v", err)
		} else if !ok {
			break
		}
		f := sx.format()
		if chain == FormatUndefined {
			chain = f
		} else if f != chain {
			break
		}
		if zeroBasedHalfOpen {
			if sx.start == math.MaxInt {
				return "", FormatUndefined, newError(ErrMalformedInput, op, s, "start coordinate %d overflows", sx.start)
			}
			sx.start++
		}
		var r Range
		switch f {
		case FormatV1:
			if sx.start > sx.end {
				r = Range{Start: sx.end, End: sx.start, Orientation: Reverse}
			} else {
				r = Range{Start: sx.start, End: sx.end, Orientation: Forward}
			}
		default:
			if sx.start > sx.end {
				return "", FormatUndefined, newError(ErrDecreasingRange, op, s, "%s range %d-%d must be increasing", f, sx.start, sx.end)
			}
			r = Range{Start: sx.start, End: sx.end, Orientation: sx.orientation()}
		}
		peeled = append(peeled, r)
		rest = prefix
	}

	assembly, sequence, ok := splitAssembly(rest)
	if !ok {
		return "", FormatUndefined, newError(ErrMalformedAssemblySequence, op, s, "invalid assembly+sequence %q", rest)
	}
	if len(peeled) == 0 {
		return s, FormatUndefined, nil
	}

	id := Identifier{Assembly: assembly, Sequence: sequence, Ranges: make([]Range, len(peeled)), Format: FormatV2}
	for i, r := range peeled {
		id.Ranges[len(peeled)-1-i] = r
	}
	if err := checkChain(op, s, id.Ranges); err != nil {
		return "", FormatUndefined, err
	}
	return id.String(), chain, nil
}

// checkChain validates an outermost-first chain: coordinates are 1-based and
// each range fits within the length of its parent.
func checkChain(op, s string, ranges []Range) error {
	for i, r := range ranges {
		if r.Start < 1 || r.End < 1 {
			return newError(ErrZeroCoordinate, op, s, "range %d-%d in a one-based coordinate system", r.Start, r.End)
		}
		if i > 0 {
			p := ranges[i-1]
			cm := cmapper.CoordMapper{Start: p.Start, End: p.End, Strand: p.Orientation.Strand()}
			_, okStart := cm.Sub2Parent(r.Start)
			_, okEnd := cm.Sub2Parent(r.End)
			if !okStart || !okEnd {
				return newError(ErrOutOfBounds, op, s, "sub-range %d-%d outside parent range length %d", r.Start, r.End, cm.Length())
			}
		}
	}
	return nil
}
