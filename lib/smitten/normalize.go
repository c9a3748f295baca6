//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package smitten

import (
	"git.sr.ht/~vejnar/Smitten/lib/cmapper"
)

// Normalize collapses the range chain of id into a single range relative
// to the sequence. For example hg38:chr1:100-200_+:10-50_-:1-5_+ becomes
// hg38:chr1:145-149_-. An identifier without range is returned as is.
//
// The fold is pure arithmetic and never fails: coordinates are not checked
// against their parent (see Identifier.Validate).
func Normalize(id Identifier) (Identifier, error) {
	if len(id.Ranges) == 0 {
		return id, nil
	}

	inner := id.Ranges[len(id.Ranges)-1]
	start, end, strand := inner.Start, inner.End, inner.Orientation.Strand()
	for i := len(id.Ranges) - 2; i >= 0; i-- {
		r := id.Ranges[i]
		cm := cmapper.CoordMapper{Start: r.Start, End: r.End, Strand: r.Orientation.Strand()}
		start, end, strand = cm.Map(start), cm.Map(end), cm.ComposeStrand(strand)
	}
	if start > end {
		start, end = end, start
	}

	return Identifier{
		Assembly: id.Assembly,
		Sequence: id.Sequence,
		Ranges:   []Range{{Start: start, End: end, Orientation: OrientationFromStrand(strand)}},
		Format:   FormatV2,
	}, nil
}
