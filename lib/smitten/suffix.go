//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package smitten

import "strconv"

// suffix is one trailing range peeled off an identifier:
// sep1 start sep2 end ["_" marker]
type suffix struct {
	start, end int
	sep1, sep2 byte
	marker     byte // 0 when absent
}

// format classifies the suffix by its separators.
func (sx suffix) format() Format {
	if sx.sep1 == ':' && sx.sep2 == '-' {
		if sx.marker != 0 {
			return FormatV2
		}
		return FormatV1
	}
	return FormatV0
}

func (sx suffix) orientation() Orientation {
	if sx.marker == 'R' || sx.marker == '-' {
		return Reverse
	}
	return Forward
}

// peel matches the last range suffix of s and returns the text before it.
// In strict mode only V2 suffixes (":" start "-" end "_" ("+"|"-")) match.
// err is set when a coordinate does not fit an int.
func peel(s string, strict bool) (prefix string, sx suffix, ok bool, err error) {
	i := len(s)
	if i >= 2 && s[i-2] == '_' && isMarker(s[i-1], strict) {
		sx.marker = s[i-1]
		i -= 2
	} else if strict {
		return
	}
	// End coordinate, then sep2
	j := digitsStart(s, i)
	if j == i || j == 0 {
		return
	}
	sx.sep2 = s[j-1]
	// Start coordinate, then sep1
	k := digitsStart(s, j-1)
	if k == j-1 || k == 0 {
		return
	}
	sx.sep1 = s[k-1]
	if strict {
		if sx.sep1 != ':' || sx.sep2 != '-' {
			return
		}
	} else if (sx.sep1 != ':' && sx.sep1 != '_') || (sx.sep2 != '-' && sx.sep2 != '_') {
		return
	}
	if sx.start, err = strconv.Atoi(s[k : j-1]); err != nil {
		return
	}
	if sx.end, err = strconv.Atoi(s[j:i]); err != nil {
		return
	}
	return s[:k-1], sx, true, nil
}

func isMarker(c byte, strict bool) bool {
	return c == '+' || c == '-' || (!strict && c == 'R')
}

// digitsStart returns the index of the first ASCII digit of the run ending at end.
func digitsStart(s string, end int) int {
	i := end
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return i
}
