//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package smitten parses, converts and normalizes sequence identifiers
// carrying (possibly nested) sub-ranges and strand orientation.
//
// Three grammars are recognized:
//
//	V0  seq ("_" start "_" end ["_R"])*                      chr1_100_200_R
//	V1  seq (":" lo "-" hi)*, hi-lo means reverse            chr1:200-100
//	V2  [assembly ":"] seq (":" start "-" end "_" ("+"|"-"))*  hg38:chr1:100-200_-
//
// Coordinates are 1-based and fully closed. In a chain, each range is
// relative to the range before it; the first is relative to the sequence.
package smitten

import (
	"strconv"
	"strings"
)

type Orientation int8

const (
	Forward Orientation = 1
	Reverse Orientation = -1
)

// OrientationFromStrand returns Reverse for strand -1 and Forward otherwise.
func OrientationFromStrand(strand int8) Orientation {
	if strand == -1 {
		return Reverse
	}
	return Forward
}

// Strand returns the orientation as a +1/-1 strand.
func (o Orientation) Strand() int8 {
	if o == Reverse {
		return -1
	}
	return 1
}

func (o Orientation) String() string {
	if o == Reverse {
		return "-"
	}
	return "+"
}

// Format is the grammar an identifier was written in.
type Format int

const (
	FormatUndefined Format = iota
	FormatV0
	FormatV1
	FormatV2
)

func (f Format) String() string {
	switch f {
	case FormatV0:
		return "V0"
	case FormatV1:
		return "V1"
	case FormatV2:
		return "V2"
	default:
		return "Undefined"
	}
}

// Range is a sub-range. Start <= End regardless of orientation.
type Range struct {
	Start, End  int
	Orientation Orientation
}

// Length returns the number of positions covered by the range.
func (r Range) Length() int {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End) + "_" + r.Orientation.String()
}

// Identifier is a parsed sequence identifier. Assembly is empty when the
// identifier has no assembly prefix. Ranges are ordered outermost first.
type Identifier struct {
	Assembly string
	Sequence string
	Ranges   []Range
	Format   Format
}

// Prefix returns the assembly and sequence part of the identifier.
func (id Identifier) Prefix() string {
	if id.Assembly != "" {
		return id.Assembly + ":" + id.Sequence
	}
	return id.Sequence
}

// String renders the identifier in the V2 grammar.
func (id Identifier) String() string {
	var b strings.Builder
	b.WriteString(id.Prefix())
	for _, r := range id.Ranges {
		b.WriteByte(':')
		b.WriteString(r.String())
	}
	return b.String()
}

// Equal reports whether both identifiers have the same assembly, sequence
// and ranges. Format is ignored.
func (id Identifier) Equal(o Identifier) bool {
	if id.Assembly != o.Assembly || id.Sequence != o.Sequence || len(id.Ranges) != len(o.Ranges) {
		return false
	}
	for i := range id.Ranges {
		if id.Ranges[i] != o.Ranges[i] {
			return false
		}
	}
	return true
}

// Validate checks that coordinates are 1-based and that each range lies
// within the range before it.
func (id Identifier) Validate() error {
	return checkChain("validate", id.String(), id.Ranges)
}

// Normalize is a shortcut for Normalize(id).
func (id Identifier) Normalize() (Identifier, error) {
	return Normalize(id)
}

// FromLegacyUnderscore reads a V0 identifier (1-based coordinates).
func FromLegacyUnderscore(s string) (Identifier, error) {
	v2, _, err := Convert(s, false)
	if err != nil {
		return Identifier{}, err
	}
	return Parse(v2)
}

// FromLegacyColon reads a V1 identifier.
func FromLegacyColon(s string) (Identifier, error) {
	v2, _, err := Convert(s, false)
	if err != nil {
		return Identifier{}, err
	}
	return Parse(v2)
}

// FromCanonical reads a V2 identifier.
func FromCanonical(s string) (Identifier, error) {
	return Parse(s)
}

// FromUnknown detects the grammar of s, converts it to V2 and parses it.
// The returned Format is the detected grammar, FormatUndefined if s has
// no range. With zeroBasedHalfOpen, range starts are read as 0-based.
func FromUnknown(s string, zeroBasedHalfOpen bool) (Identifier, Format, error) {
	v2, f, err := Convert(s, zeroBasedHalfOpen)
	if err != nil {
		return Identifier{}, FormatUndefined, err
	}
	id, err := Parse(v2)
	if err != nil {
		return Identifier{}, FormatUndefined, err
	}
	return id, f, nil
}

// splitAssembly splits the text left after peeling ranges. ok is false
// unless s has no ':' or exactly one with non-empty halves.
func splitAssembly(s string) (assembly, sequence string, ok bool) {
	switch strings.Count(s, ":") {
	case 0:
		return "", s, s != ""
	case 1:
		i := strings.IndexByte(s, ':')
		assembly, sequence = s[:i], s[i+1:]
		return assembly, sequence, assembly != "" && sequence != ""
	}
	return "", "", false
}
