//
// Copyright (C) 2015-2021 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"errors"
	"fmt"
	"strings"

	"git.sr.ht/~vejnar/Smitten/lib/seqio"
	"git.sr.ht/~vejnar/Smitten/lib/smitten"
)

var ErrNoRange = errors.New("identifier has no range")

// Feature is a stranded interval on Chrom. Coords are 0-based, half-open.
type Feature struct {
	ID     uint32
	Name   string
	Chrom  string
	Strand int8
	Coords [][]int
}

// Length returns the length of feature
func (feat Feature) Length() (length int) {
	for _, coords := range feat.Coords {
		length += coords[1] - coords[0]
	}
	return
}

// Identifier returns the feature as a single-range identifier.
func (feat Feature) Identifier() smitten.Identifier {
	id := smitten.Identifier{Format: smitten.FormatV2}
	if i := strings.IndexByte(feat.Chrom, ':'); i >= 0 {
		id.Assembly, id.Sequence = feat.Chrom[:i], feat.Chrom[i+1:]
	} else {
		id.Sequence = feat.Chrom
	}
	if len(feat.Coords) > 0 {
		id.Ranges = []smitten.Range{{
			Start:       feat.Coords[0][0] + 1,
			End:         feat.Coords[len(feat.Coords)-1][1],
			Orientation: smitten.OrientationFromStrand(feat.Strand),
		}}
	}
	return id
}

// FromIdentifier normalizes id and returns it as a feature named name.
func FromIdentifier(id smitten.Identifier, name string, fid uint32) (Feature, error) {
	nid, err := smitten.Normalize(id)
	if err != nil {
		return Feature{}, err
	}
	if len(nid.Ranges) == 0 {
		return Feature{}, fmt.Errorf("%s: %w", id, ErrNoRange)
	}
	r := nid.Ranges[0]
	return Feature{
		ID:     fid,
		Name:   name,
		Chrom:  nid.Prefix(),
		Strand: r.Orientation.Strand(),
		Coords: [][]int{{r.Start - 1, r.End}},
	}, nil
}

// OpenIDs reads features from a file of identifiers, one per line. A line
// may be "name<TAB>identifier"; otherwise the identifier is the name.
func OpenIDs(ipath string, zeroBasedHalfOpen bool) (features []Feature, err error) {
	r, err := seqio.Open(ipath)
	if err != nil {
		return
	}
	defer r.Close()

	sc := seqio.NewScanner(r, false)
	for sc.Scan() {
		name, raw := sc.Text(), sc.Text()
		if fields := strings.Split(sc.Text(), "\t"); len(fields) == 2 {
			name, raw = fields[0], fields[1]
		}
		id, _, err := smitten.FromUnknown(raw, zeroBasedHalfOpen)
		if err != nil {
			return features, fmt.Errorf("%s:%d: %w", ipath, sc.Line(), err)
		}
		f, err := FromIdentifier(id, name, uint32(len(features)))
		if err != nil {
			return features, fmt.Errorf("%s:%d: %w", ipath, sc.Line(), err)
		}
		features = append(features, f)
	}
	err = sc.Err()
	return
}
