//
// Copyright (C) 2015-2021 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/Smitten/lib/smitten"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestFromIdentifier(t *testing.T) {
	id, err := smitten.Parse("hg38:chr1:10-20_+:2-5_-")
	require.NoError(t, err)
	f, err := FromIdentifier(id, "f1", 7)
	require.NoError(t, err)
	assert.Equal(t, Feature{ID: 7, Name: "f1", Chrom: "hg38:chr1", Strand: -1, Coords: [][]int{{10, 14}}}, f)
	assert.Equal(t, 4, f.Length())
	assert.Equal(t, "hg38:chr1:11-14_-", f.Identifier().String())

	_, err = FromIdentifier(smitten.Identifier{Sequence: "chr1"}, "f2", 0)
	assert.ErrorIs(t, err, ErrNoRange)
}

func TestOpenIDs(t *testing.T) {
	path := writeFile(t, "ids.tsv", "geneA\tchr1:10-20_+\n# comment\nchr2_1_5_R\n")
	features, err := OpenIDs(path, false)
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, Feature{ID: 0, Name: "geneA", Chrom: "chr1", Strand: 1, Coords: [][]int{{9, 20}}}, features[0])
	assert.Equal(t, Feature{ID: 1, Name: "chr2_1_5_R", Chrom: "chr2", Strand: -1, Coords: [][]int{{0, 5}}}, features[1])

	features, err = OpenIDs(path, true)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{10, 20}}, features[0].Coords)

	path = writeFile(t, "bad.tsv", "chr1:1-5_+\nchr3\n")
	_, err = OpenIDs(path, false)
	assert.ErrorIs(t, err, ErrNoRange)
	assert.Contains(t, err.Error(), ":2:")
}

func TestOverlaps(t *testing.T) {
	features := []Feature{
		{ID: 0, Name: "A", Chrom: "chr1", Strand: 1, Coords: [][]int{{10, 20}}},
		{ID: 1, Name: "B", Chrom: "chr1", Strand: -1, Coords: [][]int{{15, 30}}},
		{ID: 2, Name: "C", Chrom: "chr2", Strand: 1, Coords: [][]int{{0, 5}}},
	}
	trees, err := BuildFeatTrees(features)
	require.NoError(t, err)

	query := Feature{Chrom: "chr1", Coords: [][]int{{18, 25}}}
	ovs := trees.Overlaps(query, nil)
	require.Len(t, ovs, 2)
	assert.Equal(t, "A", ovs[0].Feature.Name)
	assert.Equal(t, 2, ovs[0].Length)
	assert.Equal(t, "B", ovs[1].Feature.Name)
	assert.Equal(t, 7, ovs[1].Length)

	same := []FeatureOverlap{
		{Feature: &Feature{ID: 3, Name: "X"}},
		{Feature: &Feature{ID: 1, Name: "X"}},
		{Feature: &Feature{ID: 2, Name: "W"}},
	}
	sort.Sort(ByName(same))
	assert.Equal(t, []uint32{2, 1, 3}, []uint32{same[0].Feature.ID, same[1].Feature.ID, same[2].Feature.ID})

	ovs = trees.Overlaps(query, []int8{1})
	require.Len(t, ovs, 1)
	assert.Equal(t, "A", ovs[0].Feature.Name)

	assert.Empty(t, trees.Overlaps(Feature{Chrom: "chr1", Coords: [][]int{{30, 40}}}, nil))
	assert.Empty(t, trees.Overlaps(Feature{Chrom: "chrX", Coords: [][]int{{0, 40}}}, nil))
}

func TestMapping(t *testing.T) {
	path := writeFile(t, "map.tsv", "chr1\t1\nhg38:chrM\thg38:MT\n")
	m, err := OpenMapping(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"chr1": "1", "hg38:chrM": "hg38:MT"}, m)

	id, err := smitten.Parse("chr1:1-5_+")
	require.NoError(t, err)
	assert.Equal(t, "1:1-5_+", MapIdentifier(id, m).String())

	id, err = smitten.Parse("hg38:chrM:1-5_+")
	require.NoError(t, err)
	assert.Equal(t, "hg38:MT:1-5_+", MapIdentifier(id, m).String())

	id, err = smitten.Parse("hg38:chr1:1-5_+")
	require.NoError(t, err)
	assert.Equal(t, "hg38:1:1-5_+", MapIdentifier(id, m).String())

	assert.Equal(t, "chr9", MapName("chr9", m))

	_, err = OpenMapping(writeFile(t, "bad.tsv", "chr1\t1\textra\n"))
	assert.Error(t, err)
}
