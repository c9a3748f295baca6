//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.
//

package cmapper

// CoordMapper maps 1-based, fully closed coordinates of a sub-range onto
// the sequence the sub-range was extracted from. Start and End are parent
// coordinates (Start <= End). With Strand -1 the sub-range is read from End
// towards Start.
type CoordMapper struct {
	Start, End int
	Strand     int8
}

// Length returns mapper length.
func (cm CoordMapper) Length() int {
	return cm.End - cm.Start + 1
}

// Map translates a coordinate from the sub-range to the parent system.
// Coordinates outside [1, Length] are extrapolated.
func (cm CoordMapper) Map(coord int) int {
	if cm.Strand == -1 {
		return cm.End - coord + 1
	}
	return cm.Start + coord - 1
}

// Sub2Parent is Map restricted to the sub-range: within is false when coord
// is outside [1, Length].
func (cm CoordMapper) Sub2Parent(coord int) (pcoord int, within bool) {
	if coord < 1 || coord > cm.Length() {
		return
	}
	return cm.Map(coord), true
}

// ComposeStrand returns the strand, on the parent, of a feature lying on
// strand of the sub-range.
func (cm CoordMapper) ComposeStrand(strand int8) int8 {
	if cm.Strand == -1 {
		return -strand
	}
	return strand
}
