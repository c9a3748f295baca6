//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package esam

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/Smitten/lib/smitten"
)

const samText = "@HD\tVN:1.0\tSO:unsorted\n" +
	"@SQ\tSN:chr1_100_200_R\tLN:101\n" +
	"@SQ\tSN:hg38:chr2:1-50_+\tLN:50\n" +
	"@SQ\tSN:chr3_5_1\tLN:5\n" +
	"read1\t0\tchr1_100_200_R\t11\t60\t10M\t*\t0\t0\tACGTACGTAC\t*\n" +
	"read2\t16\thg38:chr2:1-50_+\t1\t60\t5M\t*\t0\t0\tACGTA\t*\n" +
	"read3\t4\t*\t0\t0\t*\t*\t0\t0\tACGTA\t*\n"

func TestNewPathSAM(t *testing.T) {
	assert.Equal(t, PathSAM{Path: "a.bam", Binary: true}, NewPathSAM("a.bam"))
	assert.Equal(t, PathSAM{Path: "a.sam.gz", Binary: false}, NewPathSAM("a.sam.gz"))
}

func TestOpenSAM_ReferencesAndLift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aln.sam")
	require.NoError(t, os.WriteFile(path, []byte(samText), 0666))

	rr, c, err := OpenSAM(NewPathSAM(path), 1)
	require.NoError(t, err)
	defer c.Close()

	refs := ReferenceIdentifiers(rr.Header(), false)
	require.Len(t, refs, 3)
	assert.Equal(t, "chr1:100-200_-", refs[0].ID.String())
	assert.Equal(t, smitten.FormatV0, refs[0].Format)
	assert.Equal(t, 101, refs[0].Len)
	assert.Equal(t, "hg38:chr2:1-50_+", refs[1].ID.String())
	assert.Equal(t, smitten.FormatV2, refs[1].Format)
	assert.ErrorIs(t, refs[2].Err, smitten.ErrDecreasingRange)

	byName := map[string]smitten.Identifier{}
	for _, ref := range refs {
		byName[ref.Name] = ref.ID
	}

	want := []string{"chr1:181-190_-", "hg38:chr2:1-5_-"}
	var got []string
	for {
		r, err := rr.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if r.Ref == nil {
			_, err := Lift(r, smitten.Identifier{})
			assert.ErrorIs(t, err, ErrUnmapped)
			continue
		}
		lifted, err := Lift(r, byName[r.Ref.Name()])
		require.NoError(t, err)
		got = append(got, lifted.String())
	}
	assert.Equal(t, want, got)
}

func TestLift_Bounds(t *testing.T) {
	ref, err := sam.NewReference("chr1_100_110", "", "", 11, nil, nil)
	require.NoError(t, err)
	_, err = sam.NewHeader(nil, []*sam.Reference{ref})
	require.NoError(t, err)
	r, err := sam.NewRecord("read", ref, nil, 5, -1, 0, 60, []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 10)}, []byte("ACGTACGTAC"), nil, nil)
	require.NoError(t, err)

	id, err := smitten.FromLegacyUnderscore(ref.Name())
	require.NoError(t, err)
	_, err = Lift(r, id)
	assert.ErrorIs(t, err, smitten.ErrOutOfBounds)

	r.Pos = 1
	lifted, err := Lift(r, id)
	require.NoError(t, err)
	assert.Equal(t, "chr1:101-110_+", lifted.String())
}
