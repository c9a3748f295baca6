//
// Copyright (C) 2015-2021 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"fmt"

	"github.com/biogo/store/interval"
)

// segment is one half-open interval of a feature, as stored in an interval.IntTree.
type segment struct {
	interval.IntRange
	uid  uintptr
	feat *Feature
}

func newSegment(coord []int, uid uintptr, feat *Feature) segment {
	return segment{IntRange: interval.IntRange{Start: coord[0], End: coord[1]}, uid: uid, feat: feat}
}

func (s segment) Overlap(b interval.IntRange) bool {
	return s.End > b.Start && s.Start < b.End
}

func (s segment) ID() uintptr              { return s.uid }
func (s segment) Range() interval.IntRange { return s.IntRange }

func (s segment) String() string {
	if s.feat == nil {
		return fmt.Sprintf("[%d,%d)#%d", s.Start, s.End, s.uid)
	}
	return fmt.Sprintf("[%d,%d)#%d-%s", s.Start, s.End, s.uid, s.feat.Name)
}

// overlapLength returns the number of positions shared by a and b.
func overlapLength(a, b interval.IntRange) int {
	if l := min(a.End, b.End) - max(a.Start, b.Start); l > 0 {
		return l
	}
	return 0
}
