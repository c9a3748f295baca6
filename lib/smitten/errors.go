//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package smitten

import (
	"errors"
	"fmt"
	"unicode"
)

var (
	ErrMalformedInput            = errors.New("smitten: malformed input")
	ErrDecreasingRange           = errors.New("smitten: decreasing range")
	ErrZeroCoordinate            = errors.New("smitten: zero coordinate")
	ErrOutOfBounds               = errors.New("smitten: range out of parent bounds")
	ErrMalformedAssemblySequence = errors.New("smitten: malformed assembly/sequence")
	ErrEmptySequenceId           = errors.New("smitten: empty sequence identifier")
)

func newError(kind error, op, id, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s %q: %s", kind, op, id, fmt.Sprintf(format, args...))
}

// checkChars rejects spaces, line terminations and other control characters.
func checkChars(op, id string) error {
	for i, c := range id {
		if unicode.IsSpace(c) || unicode.IsControl(c) {
			return newError(ErrMalformedInput, op, id, "space or control character at offset %d", i)
		}
	}
	return nil
}
