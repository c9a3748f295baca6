//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"sort"

	"github.com/biogo/store/interval"
)

// Trees indexes features by chrom then strand (1 or -1).
type Trees map[string]map[int8]*interval.IntTree

type FeatureOverlap struct {
	Feature *Feature
	Length  int
}

// Sorting functions: By Name, then ID
// Use it with: sort.Sort(feature.ByName(overlaps))
type ByName []FeatureOverlap

func (f ByName) Len() int      { return len(f) }
func (f ByName) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f ByName) Less(i, j int) bool {
	if f[i].Feature.Name != f[j].Feature.Name {
		return f[i].Feature.Name < f[j].Feature.Name
	}
	return f[i].Feature.ID < f[j].Feature.ID
}

// BuildFeatTrees builds a tree of features: each interval of each feature is added to the tree.
func BuildFeatTrees(features []Feature) (trees Trees, err error) {
	trees = make(Trees)
	icoord := 0
	for ifeat := range features {
		feat := &features[ifeat]
		for _, coord := range feat.Coords {
			// New tree for unseen chromosome
			if _, ok := trees[feat.Chrom]; !ok {
				trees[feat.Chrom] = make(map[int8]*interval.IntTree)
				trees[feat.Chrom][1] = &interval.IntTree{}
				trees[feat.Chrom][-1] = &interval.IntTree{}
			}
			strand := feat.Strand
			if strand != -1 {
				strand = 1
			}
			if err = trees[feat.Chrom][strand].Insert(newSegment(coord, uintptr(icoord), feat), false); err != nil {
				return
			}
			icoord++
		}
	}
	for k := range trees {
		trees[k][1].AdjustRanges()
		trees[k][-1].AdjustRanges()
	}
	return
}

// Overlaps returns the features overlapping query on the given strands
// (nil for both), with the total overlap length, sorted by feature name.
func (trees Trees) Overlaps(query Feature, strands []int8) []FeatureOverlap {
	if strands == nil {
		strands = []int8{1, -1}
	}
	tree, ok := trees[query.Chrom]
	if !ok {
		return nil
	}
	overlaps := make(map[*Feature]int)
	for _, coord := range query.Coords {
		q := newSegment(coord, 0, nil)
		for _, strand := range strands {
			t, ok := tree[strand]
			if !ok {
				continue
			}
			for _, iv := range t.Get(q) {
				s := iv.(segment)
				overlaps[s.feat] += overlapLength(s.IntRange, q.IntRange)
			}
		}
	}
	result := make([]FeatureOverlap, 0, len(overlaps))
	for f, l := range overlaps {
		result = append(result, FeatureOverlap{Feature: f, Length: l})
	}
	sort.Sort(ByName(result))
	return result
}
