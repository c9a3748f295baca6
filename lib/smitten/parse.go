//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package smitten

// Parse reads an identifier in the V2 grammar. Only V2 range suffixes are
// recognized and every range must be written in increasing order.
func Parse(s string) (Identifier, error) {
	const op = "parse"
	if err := checkChars(op, s); err != nil {
		return Identifier{}, err
	}

	var peeled []Range
	rest := s
	for {
		prefix, sx, ok, err := peel(rest, true)
		if err != nil {
			return Identifier{}, newError(ErrMalformedInput, op, s, "%v", err)
		} else if !ok {
			break
		}
		if sx.start > sx.end {
			return Identifier{}, newError(ErrDecreasingRange, op, s, "V2 range %d-%d must be increasing", sx.start, sx.end)
		}
		peeled = append(peeled, Range{Start: sx.start, End: sx.end, Orientation: sx.orientation()})
		rest = prefix
	}

	if rest == "" {
		return Identifier{}, newError(ErrEmptySequenceId, op, s, "no sequence identifier")
	}
	assembly, sequence, ok := splitAssembly(rest)
	if !ok && assembly != "" && sequence == "" {
		return Identifier{}, newError(ErrEmptySequenceId, op, s, "assembly %q without sequence identifier", assembly)
	} else if !ok {
		return Identifier{}, newError(ErrMalformedAssemblySequence, op, s, "invalid assembly+sequence %q", rest)
	}

	id := Identifier{Assembly: assembly, Sequence: sequence, Format: FormatV2}
	if len(peeled) > 0 {
		id.Ranges = make([]Range, len(peeled))
		for i, r := range peeled {
			id.Ranges[len(peeled)-1-i] = r
		}
	}
	return id, nil
}
