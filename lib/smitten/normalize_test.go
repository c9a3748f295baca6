//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package smitten

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		id   string
		want string
	}{
		{"hg38:chr1:100-200_+:10-50_-:1-5_+", "hg38:chr1:145-149_-"},
		{"hg38:chr1:100-200_-:10-20_+", "hg38:chr1:181-191_-"},
		{"s:1-10_-:1-10_-", "s:1-10_+"},
		{"s:1000-2000_+:100-200_+:10-20_+", "s:1108-1118_+"},
		{"s:1000-2000_-:100-200_-:10-20_-", "s:1810-1820_-"},
		{"chr1:100-200_+", "chr1:100-200_+"},
		{"chr1:100-200_-", "chr1:100-200_-"},
		{"hg38:chr1", "hg38:chr1"},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			id, err := FromCanonical(tc.id)
			require.NoError(t, err)
			n, err := id.Normalize()
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.String())
			assert.LessOrEqual(t, len(n.Ranges), 1)

			nn, err := Normalize(n)
			require.NoError(t, err)
			assert.Equal(t, n, nn)
		})
	}
}

func TestNormalize_Unchanged(t *testing.T) {
	id := Identifier{Assembly: "hg38", Sequence: "chr1", Format: FormatUndefined}
	n, err := Normalize(id)
	require.NoError(t, err)
	assert.Equal(t, id, n)
}

func TestNormalize_DoesNotAlias(t *testing.T) {
	id, err := FromCanonical("chr1:100-200_+")
	require.NoError(t, err)
	n, err := Normalize(id)
	require.NoError(t, err)
	n.Ranges[0].Start = 1
	assert.Equal(t, 100, id.Ranges[0].Start)
}

func TestNormalize_Unchecked(t *testing.T) {
	testCases := []struct {
		id   string
		want string
		err  error
	}{
		{"chr1:100-200_+:300-400_+", "chr1:399-499_+", ErrOutOfBounds},
		{"s:100-200_+:150-160_+", "s:249-259_+", ErrOutOfBounds},
		{"s:100-200_-:1-102_+", "s:99-200_-", ErrOutOfBounds},
		{"s:0-10_+", "s:0-10_+", ErrZeroCoordinate},
		{"s:0-10_+:1-5_+", "s:0-4_+", ErrZeroCoordinate},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			id, err := FromCanonical(tc.id)
			require.NoError(t, err)
			assert.ErrorIs(t, id.Validate(), tc.err)
			n, err := Normalize(id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.String())
		})
	}
}

func TestValidate(t *testing.T) {
	for _, s := range []string{"chr1", "chr1:100-200_-:1-101_+", "s:1-10_+:10-10_-"} {
		id, err := FromCanonical(s)
		require.NoError(t, err)
		assert.NoError(t, id.Validate(), s)
	}
}

// positions expands a chain into the sequence positions of its innermost
// range, in reading order.
func positions(ranges []Range) []int {
	var pos []int
	for i, r := range ranges {
		var frame []int
		for p := r.Start; p <= r.End; p++ {
			if i == 0 {
				frame = append(frame, p)
			} else {
				frame = append(frame, pos[p-1])
			}
		}
		if r.Orientation == Reverse {
			for a, b := 0, len(frame)-1; a < b; a, b = a+1, b-1 {
				frame[a], frame[b] = frame[b], frame[a]
			}
		}
		pos = frame
	}
	return pos
}

func TestNormalize_MatchesExpansion(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		var ranges []Range
		length := 1 + rnd.Intn(5000)
		for depth := 1 + rnd.Intn(5); depth > 0; depth-- {
			start := 1 + rnd.Intn(length)
			end := start + rnd.Intn(length-start+1)
			o := Forward
			if rnd.Intn(2) == 0 {
				o = Reverse
			}
			ranges = append(ranges, Range{Start: start, End: end, Orientation: o})
			length = end - start + 1
		}
		id := Identifier{Sequence: "seq", Ranges: ranges}

		parsed, err := FromCanonical(id.String())
		require.NoError(t, err)
		norm, err := Normalize(parsed)
		require.NoError(t, err, id.String())
		require.Len(t, norm.Ranges, 1)

		want := Forward
		for _, r := range ranges {
			if r.Orientation == Reverse {
				want = -want
			}
		}
		pos := positions(ranges)
		first, last := pos[0], pos[len(pos)-1]
		if first > last {
			first, last = last, first
			assert.Equal(t, Reverse, want, id.String())
		} else if first < last {
			assert.Equal(t, Forward, want, id.String())
		}
		assert.Equal(t, Range{first, last, want}, norm.Ranges[0], id.String())
	}
}
